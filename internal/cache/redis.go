package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	feeSummaryKeyFmt = "fees:summary:%d"
	reviewListKey    = "reviews:list"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client is left
// nil and every helper degrades to a cache miss.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetFeeSummary returns a cached fee summary payload for a student.
func GetFeeSummary(ctx context.Context, studentID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(feeSummaryKeyFmt, studentID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheFeeSummary caches a student's fee summary for 10 minutes.
func CacheFeeSummary(ctx context.Context, studentID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(feeSummaryKeyFmt, studentID), data, 10*time.Minute)
}

// InvalidateFeeSummary drops the cached summary after a ledger mutation.
func InvalidateFeeSummary(ctx context.Context, studentID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(feeSummaryKeyFmt, studentID))
}

// GetReviewList returns the cached public review list.
func GetReviewList(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, reviewListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheReviewList caches the public review list for 5 minutes.
func CacheReviewList(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, reviewListKey, data, 5*time.Minute)
}

// InvalidateReviewList drops the cached review list when one is added.
func InvalidateReviewList(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, reviewListKey)
}
