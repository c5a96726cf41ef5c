package productcontroller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/cache"
	"github.com/batibatii/textilecom-sub000/models"
)

var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price_amount",
	"title":      "title",
}

func GetProducts(db *gorm.DB, pc cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Filtering & sorting params
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		column, ok := sortColumns[sortBy]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}

		// The unfiltered default listing is the hot path; serve it from
		// cache when possible.
		unfiltered := search == "" && categoryID == "" && minPriceStr == "" && maxPriceStr == "" &&
			column == "created_at" && sortOrder == "desc"

		if unfiltered && pc != nil {
			products, err := pc.Get(c.Request.Context(), cache.ListingKey)
			if err == nil {
				c.JSON(http.StatusOK, products)
				return
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("product cache get error: %v", err)
			}
		}

		query := db.Model(&models.Product{}).Preload("Categories")

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(`
				title ILIKE ? OR brand ILIKE ? OR description ILIKE ?
			`, likePattern, likePattern, likePattern)
		}

		if minPriceStr != "" {
			if mp, err := decimal.NewFromString(minPriceStr); err == nil {
				query = query.Where("price_amount >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := decimal.NewFromString(maxPriceStr); err == nil {
				query = query.Where("price_amount <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.
					Joins("JOIN product_categories pc ON pc.product_id = products.id").
					Where("pc.category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", column, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		if unfiltered && pc != nil {
			go func() {
				if err := pc.Set(context.Background(), cache.ListingKey, products); err != nil {
					log.Printf("product cache set error: %v", err)
				}
			}()
		}

		c.JSON(http.StatusOK, products)
	}
}
