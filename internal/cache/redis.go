package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	merchantSetKey = "eligibility:merchants"
	merchantSetTTL = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when cache is unavailable)
func GetClient() *redis.Client {
	return client
}

// GetCachedMerchantSet returns the cached eligible-merchant set if available
func GetCachedMerchantSet(ctx context.Context) (map[string]bool, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, merchantSetKey).Bytes()
	if err != nil {
		return nil, false
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, true
}

// CacheMerchantSet caches the eligible-merchant names
func CacheMerchantSet(ctx context.Context, names []string) {
	if client == nil {
		return
	}
	data, err := json.Marshal(names)
	if err != nil {
		return
	}
	client.Set(ctx, merchantSetKey, data, merchantSetTTL)
}

// InvalidateMerchantSet drops the cached set after an admin change
func InvalidateMerchantSet(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, merchantSetKey)
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}
