package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Confirmed by seller
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

// Order is created asynchronously by the payment webhook, never by the
// checkout call itself. SessionID is the hosted payment session reference the
// storefront polls with after redirect-back.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SessionID     string          `gorm:"uniqueIndex;not null" json:"sessionId"`
	UserID        string          `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Currency      string          `gorm:"size:3" json:"currency"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uint            `gorm:"index" json:"-"`
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Brand     string          `json:"brand"`
	Size      string          `json:"size,omitempty"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"unitPrice"` // discounted
	Quantity  int             `json:"quantity"`
	PriceRef  string          `json:"priceRef"`
	TaxRate   string          `json:"taxRate"`
}

// CheckoutSession links a hosted payment session to the user that started it,
// so the webhook can materialize the order from that user's cart.
type CheckoutSession struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"uniqueIndex;not null"`
	UserID    string    `gorm:"index;not null"`
	CreatedAt time.Time
}
