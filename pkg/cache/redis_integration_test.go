//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: CRAWLVIZ_TEST_REDIS=localhost:6379 go test -tags integration ./pkg/cache/
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("CRAWLVIZ_TEST_REDIS")
	if addr == "" {
		t.Skip("CRAWLVIZ_TEST_REDIS not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "crawlviz:test:" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry still present after Delete")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisOptions{URL: "://bad"}); err == nil {
		t.Error("NewRedisCache should reject a malformed URL")
	}
}
