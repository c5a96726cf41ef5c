package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/batibatii/textilecom-sub000/models"
)

// ErrCartNotFound means no cart document exists for the user. Distinct from
// an empty item list, which means the cart was intentionally emptied.
var ErrCartNotFound = errors.New("cart not found")

// CartStore persists one cart document per user. Every write replaces the
// whole items document, so the worst concurrent-write outcome is
// last-writer-wins, never a torn cart.
type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

func (s *CartStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// Save upserts the cart document, replacing the items field entirely.
func (s *CartStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	cart := models.Cart{
		UserID:    userID,
		Items:     items,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&cart).Error
}

func (s *CartStore) Delete(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}

// Merge reconciles incoming items (the client's anonymous cart) with the
// user's saved cart and persists the result.
//
// An empty incoming list never erases a saved cart: the user simply had
// nothing in the anonymous session. Conversely no document is created when
// both sides are empty.
func (s *CartStore) Merge(ctx context.Context, userID string, incoming []models.CartItem) ([]models.CartItem, error) {
	existing, err := s.Get(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		if len(incoming) == 0 {
			return incoming, nil
		}
		if err := s.Save(ctx, userID, incoming); err != nil {
			return nil, err
		}
		return incoming, nil
	}
	if err != nil {
		return nil, err
	}

	if len(incoming) == 0 {
		return existing, nil
	}

	merged := models.MergeCartItems(existing, incoming)
	if err := s.Save(ctx, userID, merged); err != nil {
		return nil, err
	}
	return merged, nil
}
