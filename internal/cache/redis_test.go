package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestProductListCacheRoundTrip(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	products := []map[string]interface{}{
		{"id": float64(1), "name": "Silk Saree"},
		{"id": float64(2), "name": "Kurta Set"},
	}

	if err := SetProductList(ctx, rdb, products, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := GetProductList(ctx, rdb)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["name"] != "Silk Saree" {
		t.Fatalf("cache round trip changed payload: %v", decoded)
	}
}

func TestProductListCacheMiss(t *testing.T) {
	rdb := setupRedis(t)

	if _, err := GetProductList(context.Background(), rdb); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil on empty cache, got %v", err)
	}
}

func TestInvalidateProductList(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	if err := SetProductList(ctx, rdb, []string{"x"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := InvalidateProductList(ctx, rdb); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := GetProductList(ctx, rdb); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected miss after invalidation, got %v", err)
	}
}

func TestNilClientDisablesCache(t *testing.T) {
	ctx := context.Background()

	if _, err := GetProductList(ctx, nil); !errors.Is(err, redis.Nil) {
		t.Fatalf("nil client should miss, got %v", err)
	}
	if err := SetProductList(ctx, nil, []string{"x"}, time.Minute); err != nil {
		t.Fatalf("nil client set should be a no-op, got %v", err)
	}
	if err := InvalidateProductList(ctx, nil); err != nil {
		t.Fatalf("nil client invalidate should be a no-op, got %v", err)
	}
}
