package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/cache"
	"github.com/batibatii/textilecom-sub000/models"
)

// DeleteProduct soft-deletes a product. Existing cart lines keep their
// snapshot of it; order materialization rejects lines whose product is gone.
func DeleteProduct(db *gorm.DB, pc cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		invalidateListing(pc)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
