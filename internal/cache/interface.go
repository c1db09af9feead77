package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix = "product"
	// ProductListKey holds the whole catalog listing.
	ProductListKey = "catalog:list"
)

// ProductKeys returns every key that must be dropped when product id changes.
func ProductKeys(id string) []string {
	return []string{Key(ProductKeyPrefix, id), ProductListKey}
}
