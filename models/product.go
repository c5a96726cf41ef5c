package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Brand       string         `json:"brand"`
	Description string         `json:"description"`
	Price       Money          `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Discount    *Discount      `gorm:"serializer:json;type:jsonb" json:"discount"`
	Sizes       []string       `gorm:"serializer:json;type:jsonb" json:"sizes"`
	Image       string         `gorm:"not null" json:"image"`
	PriceRef    string         `gorm:"column:price_ref" json:"priceRef"` // pre-registered with the payment processor
	TaxRate     string         `json:"taxRate"`
	Stock       int            `json:"stock"`
	Categories  []Category     `gorm:"many2many:product_categories;" json:"categories"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CartLine snapshots the product into a cart line for the given size and
// quantity. The snapshot keeps displaying correctly even if the product is
// later edited or removed.
func (p Product) CartLine(size string, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Brand:     p.Brand,
		Price:     p.Price,
		Discount:  p.Discount,
		Size:      size,
		Quantity:  quantity,
		Image:     p.Image,
		PriceRef:  p.PriceRef,
		TaxRate:   p.TaxRate,
	}
}
