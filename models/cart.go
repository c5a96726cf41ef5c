package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is a price amount plus its ISO currency code.
type Money struct {
	Amount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`
	Currency string          `gorm:"size:3" json:"currency"`
}

// Discount is a percentage off the unit price. Nil means no discount.
type Discount struct {
	Rate decimal.Decimal `json:"rate"` // 0-100
}

// CartItem is one (product, size) line in a cart. Two lines with the same
// product but different sizes are distinct; size "" means the product has no
// size variant.
type CartItem struct {
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	Brand     string    `json:"brand"`
	Price     Money     `json:"price"`
	Discount  *Discount `json:"discount"`
	Size      string    `json:"size,omitempty"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	PriceRef  string    `json:"priceRef"` // payment-processor price reference
	TaxRate   string    `json:"taxRate"`
}

// CartKey is the identity of a cart line.
type CartKey struct {
	ProductID string
	Size      string
}

func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ProductID, Size: i.Size}
}

var percentBase = decimal.NewFromInt(100)

// UnitPrice is the discounted unit price: amount * (1 - rate/100) when a
// positive discount is present, the plain amount otherwise.
func (i CartItem) UnitPrice() decimal.Decimal {
	if i.Discount != nil && i.Discount.Rate.IsPositive() {
		return i.Price.Amount.Mul(percentBase.Sub(i.Discount.Rate)).Div(percentBase)
	}
	return i.Price.Amount
}

// Subtotal sums discounted unit price times quantity over all items.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Cart is the server-persisted cart, one per user. Items are stored as a
// single JSONB document so every save is a whole-document replace.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"-"`
	UserID    string     `gorm:"uniqueIndex" json:"userId"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"serializer:json;type:jsonb" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
