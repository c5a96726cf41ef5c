package productcontroller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/cache"
	"github.com/batibatii/textilecom-sub000/models"
)

type ProductInput struct {
	Title        string           `json:"title" binding:"required"`
	Brand        string           `json:"brand"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Currency     string           `json:"currency" binding:"required,len=3"`
	DiscountRate *decimal.Decimal `json:"discountRate"`
	Sizes        []string         `json:"sizes"`
	Image        string           `json:"image" binding:"required"` // image URL; blob upload is handled elsewhere
	PriceRef     string           `json:"priceRef" binding:"required"`
	TaxRate      string           `json:"taxRate"`
	Stock        int              `json:"stock"`
	CategoryIDs  []uint           `json:"category_ids"`
}

// CreateProduct creates a new product attached to zero or more categories.
func CreateProduct(db *gorm.DB, pc cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}
		if !input.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "amount must be positive"})
			return
		}

		var discount *models.Discount
		if input.DiscountRate != nil {
			rate := *input.DiscountRate
			if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "discountRate must be between 0 and 100"})
				return
			}
			discount = &models.Discount{Rate: rate}
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Title:       input.Title,
			Brand:       input.Brand,
			Description: input.Description,
			Price:       models.Money{Amount: input.Amount, Currency: input.Currency},
			Discount:    discount,
			Sizes:       input.Sizes,
			Image:       input.Image,
			PriceRef:    input.PriceRef,
			TaxRate:     input.TaxRate,
			Stock:       input.Stock,
			Categories:  categories,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		invalidateListing(pc)
		c.JSON(http.StatusCreated, product)
	}
}

// invalidateListing drops the cached default listing after an admin write.
func invalidateListing(pc cache.ProductCache) {
	if pc == nil {
		return
	}
	if err := pc.Delete(context.Background(), cache.ListingKey); err != nil {
		log.Printf("product cache invalidate error: %v", err)
	}
}
