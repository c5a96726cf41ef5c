package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/cache"
	"github.com/batibatii/textilecom-sub000/models"
)

type ProductUpdateInput struct {
	Title        *string          `json:"title"`
	Brand        *string          `json:"brand"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Currency     *string          `json:"currency"`
	DiscountRate *decimal.Decimal `json:"discountRate"`
	Sizes        *[]string        `json:"sizes"`
	Image        *string          `json:"image"`
	PriceRef     *string          `json:"priceRef"`
	TaxRate      *string          `json:"taxRate"`
	Stock        *int             `json:"stock"`
	CategoryIDs  *[]uint          `json:"category_ids"`
}

// UpdateProduct applies a partial update; only the provided fields change.
func UpdateProduct(db *gorm.DB, pc cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		err := db.Preload("Categories").First(&product, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		if input.Title != nil {
			product.Title = *input.Title
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Amount != nil {
			if !input.Amount.IsPositive() {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "amount must be positive"})
				return
			}
			product.Price.Amount = *input.Amount
		}
		if input.Currency != nil {
			product.Price.Currency = *input.Currency
		}
		if input.DiscountRate != nil {
			rate := *input.DiscountRate
			if rate.IsZero() {
				product.Discount = nil
			} else if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "discountRate must be between 0 and 100"})
				return
			} else {
				product.Discount = &models.Discount{Rate: rate}
			}
		}
		if input.Sizes != nil {
			product.Sizes = *input.Sizes
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.PriceRef != nil {
			product.PriceRef = *input.PriceRef
		}
		if input.TaxRate != nil {
			product.TaxRate = *input.TaxRate
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if input.CategoryIDs != nil {
			var categories []models.Category
			if err := db.Where("id IN ?", *input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
				return
			}
		}

		invalidateListing(pc)
		c.JSON(http.StatusOK, product)
	}
}
