package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Error("third request in window should be denied")
	}
	if ok, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Error("other clients keep their own budget")
	}

	current = current.Add(time.Minute + time.Second)
	if ok, _ := l.Allow(ctx, "10.0.0.1"); !ok {
		t.Error("new window should allow requests again")
	}
}

func TestMemoryLimiter_DropsExpiredBuckets(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, _ = l.Allow(ctx, fmt.Sprintf("198.51.100.%d", i))
	}
	if got := l.size(); got != 100 {
		t.Fatalf("expected 100 buckets, got %d", got)
	}

	current = current.Add(2 * time.Minute)
	if ok, _ := l.Allow(ctx, "203.0.113.1"); !ok {
		t.Fatal("fresh key should be allowed")
	}
	if got := l.size(); got != 1 {
		t.Errorf("expired buckets should be dropped, %d left", got)
	}

	current = current.Add(10 * time.Second)
	if ok, _ := l.Allow(ctx, "203.0.113.1"); ok {
		t.Error("live bucket must survive the sweep")
	}
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		t.Fatalf("failed to connect redis: %v", err)
	}
	defer client.Close()

	prefix := fmt.Sprintf("test_rate_limit_%s", uuid.NewString())
	l := NewRedisLimiter(client, prefix, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "client")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if ok, _ := l.Allow(ctx, "client"); ok {
		t.Error("fourth request should be denied")
	}

	ttl, err := client.Do(ctx, client.B().Ttl().Key(prefix+":client").Build()).AsInt64()
	if err != nil {
		t.Fatalf("ttl error = %v", err)
	}
	if ttl <= 0 || ttl > 60 {
		t.Errorf("expected window expiry to be set, ttl=%d", ttl)
	}
}

func TestRedisLimiter_RestoresMissingTTL(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		t.Fatalf("failed to connect redis: %v", err)
	}
	defer client.Close()

	prefix := fmt.Sprintf("test_rate_limit_%s", uuid.NewString())
	redisKey := prefix + ":client"
	ctx := context.Background()

	// a counter left behind without a TTL, already over the limit
	if err := client.Do(ctx, client.B().Set().Key(redisKey).Value("5").Build()).Error(); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	l := NewRedisLimiter(client, prefix, 3, time.Minute)
	if ok, err := l.Allow(ctx, "client"); err != nil || ok {
		t.Fatalf("Allow() = %v, %v; expected denial", ok, err)
	}

	ttl, err := client.Do(ctx, client.B().Ttl().Key(redisKey).Build()).AsInt64()
	if err != nil {
		t.Fatalf("ttl error = %v", err)
	}
	if ttl <= 0 || ttl > 60 {
		t.Errorf("expected TTL to be restored, ttl=%d", ttl)
	}

	if err := client.Do(ctx, client.B().Expire().Key(redisKey).Seconds(30).Build()).Error(); err != nil {
		t.Fatalf("expire error = %v", err)
	}
	_, _ = l.Allow(ctx, "client")
	ttl, _ = client.Do(ctx, client.B().Ttl().Key(redisKey).Build()).AsInt64()
	if ttl > 30 {
		t.Errorf("an existing window must not be extended, ttl=%d", ttl)
	}
}
