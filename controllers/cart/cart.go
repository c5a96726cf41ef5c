package cartControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batibatii/textilecom-sub000/models"
	"github.com/batibatii/textilecom-sub000/store"
)

type cartPayload struct {
	Items []models.CartItem `json:"items"`
}

// sanitize drops lines an item list must never persist with: a missing
// product id is a validation error, a non-positive quantity means the line
// was removed.
func sanitize(items []models.CartItem) ([]models.CartItem, error) {
	kept := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, errors.New("item without productId")
		}
		if it.Quantity <= 0 {
			continue
		}
		kept = append(kept, it)
	}
	return kept, nil
}

// GET /cart
func GetUserCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		items, err := carts.Get(c.Request.Context(), userID)
		if errors.Is(err, store.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if err != nil {
			log.Printf("❌ Failed to fetch cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// PUT /cart
//
// Full replace of the cart document. The client pushes its complete current
// item list on every mutation, so a save carries no delta semantics.
func SaveUserCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var payload cartPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid cart payload"})
			return
		}

		items, err := sanitize(payload.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := carts.Save(c.Request.Context(), userID, items); err != nil {
			log.Printf("❌ Failed to save cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save cart, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
	}
}

// POST /cart/merge
//
// Login reconciliation: the body carries the anonymous local cart, the
// response carries the merged list that is now also the persisted cart.
func MergeUserCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var payload cartPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid cart payload"})
			return
		}

		incoming, err := sanitize(payload.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		merged, err := carts.Merge(c.Request.Context(), userID, incoming)
		if err != nil {
			log.Printf("❌ Failed to merge cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to merge cart, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "items": merged})
	}
}

// DELETE /cart
func ClearUserCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := carts.Delete(c.Request.Context(), userID); err != nil {
			log.Printf("❌ Failed to clear cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart, please try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		items, err := carts.Get(c.Request.Context(), userID)
		if errors.Is(err, store.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
