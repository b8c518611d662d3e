package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestSetIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, idempotencyKeyPrefix+"test-key")

	ok, err := adapter.SetIdempotency(ctx, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first claim to succeed")
	}

	// second claim must fail
	ok, err = adapter.SetIdempotency(ctx, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second claim to fail")
	}

	client.Del(ctx, idempotencyKeyPrefix+"test-key")
}

func TestReleaseIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, idempotencyKeyPrefix+"release-key")

	if _, err := adapter.SetIdempotency(ctx, "release-key"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := adapter.ReleaseIdempotency(ctx, "release-key"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	// released key can be claimed again
	ok, err := adapter.SetIdempotency(ctx, "release-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected claim after release to succeed")
	}

	client.Del(ctx, idempotencyKeyPrefix+"release-key")
}
