package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const productListKey = "products:active"

// InitRedis connects to Redis for the catalog read cache. The cache is an
// optimization only; callers treat a nil client as "cache disabled".
func InitRedis(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rdb, nil
}

// GetProductList returns the cached active-product listing, or redis.Nil when
// the key is absent. A nil client always misses.
func GetProductList(ctx context.Context, rdb *redis.Client) ([]byte, error) {
	if rdb == nil {
		return nil, redis.Nil
	}
	return rdb.Get(ctx, productListKey).Bytes()
}

// SetProductList stores the active-product listing for ttl.
func SetProductList(ctx context.Context, rdb *redis.Client, products interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, productListKey, data, ttl).Err()
}

// InvalidateProductList drops the cached listing after a catalog mutation.
func InvalidateProductList(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, productListKey).Err()
}
