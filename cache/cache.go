package cache

import (
	"context"
	"errors"

	"github.com/batibatii/textilecom-sub000/models"
)

// ProductCache caches product listings. A cache fault never fails a request;
// callers log and fall through to the database.
type ProductCache interface {
	Get(ctx context.Context, key string) ([]models.Product, error)
	Set(ctx context.Context, key string, products []models.Product) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")

// ListingKey is the cache key for the unfiltered product listing. Filtered
// queries go straight to the database.
const ListingKey = "all"
