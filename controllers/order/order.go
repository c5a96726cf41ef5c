package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/batibatii/textilecom-sub000/models"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// -------- Core Logic --------

// MaterializeOrder turns the paying user's saved cart into an order for the
// given payment session. Called from the gateway webhook only; the checkout
// call never creates the order itself. Safe to call twice for the same
// session: the second call finds the existing order and does nothing.
func MaterializeOrder(db *gorm.DB, hub *Hub, sessionRef string) error {
	var existing models.Order
	if err := db.Where("session_id = ?", sessionRef).First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var cs models.CheckoutSession
	if err := db.Where("session_id = ?", sessionRef).First(&cs).Error; err != nil {
		return errors.New("unknown checkout session: " + sessionRef)
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", cs.UserID).First(&cart).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return errors.New("cart is empty")
		}

		var orderItems []models.OrderItem
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return errors.New("product no longer available: " + item.Title)
			}

			if product.Stock < item.Quantity {
				return errors.New("insufficient stock for product: " + item.Title)
			}

			// Deduct stock
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Title:     item.Title,
				Brand:     item.Brand,
				Size:      item.Size,
				Image:     item.Image,
				UnitPrice: item.UnitPrice(),
				Quantity:  item.Quantity,
				PriceRef:  item.PriceRef,
				TaxRate:   item.TaxRate,
			})
		}

		subtotal := models.Subtotal(cart.Items)
		currency := cart.Items[0].Price.Currency

		order = models.Order{
			SessionID:     sessionRef,
			UserID:        cs.UserID,
			Items:         orderItems,
			Subtotal:      subtotal,
			Total:         subtotal,
			Currency:      currency,
			Status:        models.OrderStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The cart is consumed by the order.
		if err := tx.Where("user_id = ?", cs.UserID).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cs).Error
	})
	if err != nil {
		return err
	}

	hub.Broadcast(order)
	return nil
}

// -------- Handlers --------

// POST /payment/webhook
func PaymentWebhookHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form"})
			return
		}

		sessionRef := c.PostForm("session_ref")
		status := c.PostForm("status") // "A" = approved

		if sessionRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_ref"})
			return
		}

		if status != "A" {
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		if err := MaterializeOrder(db, hub, sessionRef); err != nil {
			log.Printf("❌ Failed to place order for session %s: %v", sessionRef, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully"})
	}
}

// GET /orders/session/:session_id
//
// Polled by the storefront after redirect-back from the gateway. Answers 404
// until the webhook has materialized the order; the client treats that as
// "still materializing", never as a failed payment.
func GetOrderBySessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		sessionRef := c.Param("session_id")

		var order models.Order
		err := db.Preload("Items").
			Where("session_id = ? AND user_id = ?", sessionRef, userID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("User").
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "status is required"})
			return
		}

		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment_status is required"})
			return
		}

		status, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("payment_status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		result := db.Delete(&models.Order{}, "id = ?", orderID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
