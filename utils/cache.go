// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"tidymove/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// DocQueueClient is the dedicated client for the document-retry queue DB,
	// used for health checks alongside the asynq worker.
	DocQueueClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitDocQueueCache initializes the Redis client pointed at the document-retry queue DB.
func InitDocQueueCache() {
	DocQueueClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDocQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DocQueueClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Doc Queue): %v", err)
	}
}

// GetDocQueueClient returns the Redis client for the document-retry queue DB.
func GetDocQueueClient() *redis.Client {
	if DocQueueClient == nil {
		InitDocQueueCache()
	}
	return DocQueueClient
}
