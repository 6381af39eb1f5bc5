package cachestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	snapshotClient     *redis.Client
	snapshotClientOnce sync.Once
)

// RedisConfig mirrors the pack's env-driven Redis configuration shape.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	MutexTTL time.Duration
}

func loadRedisConfigFromEnv() RedisConfig {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl := 30 * time.Second
	if v := os.Getenv("REDIS_SNAPSHOT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ttl = time.Duration(n) * time.Second
		}
	}
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		TTL:      ttl,
		MutexTTL: 5 * time.Second,
	}
}

// LoadRedisConfigFromEnv exposes the env-driven Redis configuration so
// callers building their own SnapshotStore (rather than going through
// GetSnapshotClient) share the same TTL/lock defaults.
func LoadRedisConfigFromEnv() RedisConfig {
	return loadRedisConfigFromEnv()
}

// GetSnapshotClient returns the process-wide Redis client used to share a
// mobility snapshot across worker processes, constructed once via
// sync.Once the way the pack's cache singleton is constructed.
func GetSnapshotClient() *redis.Client {
	snapshotClientOnce.Do(func() {
		cfg := loadRedisConfigFromEnv()
		snapshotClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	})
	return snapshotClient
}

// SnapshotStore caches a serialized mobility snapshot in Redis so multiple
// API processes behind a load balancer observe a consistent inventory
// without each one polling the upstream GBFS-style feed independently.
type SnapshotStore struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewSnapshotStore wraps client with the given TTL/lock configuration.
func NewSnapshotStore(client *redis.Client, cfg RedisConfig) *SnapshotStore {
	return &SnapshotStore{client: client, cfg: cfg}
}

func snapshotCacheKey(region string) string {
	sum := sha256.Sum256([]byte("mobility_snapshot:" + region))
	return "snapshot:" + hex.EncodeToString(sum[:8])
}

// Get fetches and JSON-decodes the cached snapshot into dst. Returns
// (false, nil) on a cache miss.
func (s *SnapshotStore) Get(ctx context.Context, region string, dst any) (bool, error) {
	raw, err := s.client.Get(ctx, snapshotCacheKey(region)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("snapshot cache decode: %w", err)
	}
	return true, nil
}

// Set JSON-encodes src and stores it with the configured TTL.
func (s *SnapshotStore) Set(ctx context.Context, region string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("snapshot cache encode: %w", err)
	}
	if err := s.client.Set(ctx, snapshotCacheKey(region), raw, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("snapshot cache set: %w", err)
	}
	return nil
}

// AcquireLock attempts to take the per-region refresh lock so only one
// process refreshes the snapshot from upstream at a time; others wait on
// WaitForLock and then read the refreshed value, the same thundering-herd
// avoidance pattern the pack's cache layer uses for route computation.
func (s *SnapshotStore) AcquireLock(ctx context.Context, region string) (bool, error) {
	key := "lock:" + snapshotCacheKey(region)
	ok, err := s.client.SetNX(ctx, key, "1", s.cfg.MutexTTL).Result()
	if err != nil {
		return false, fmt.Errorf("snapshot lock acquire: %w", err)
	}
	return ok, nil
}

// ReleaseLock releases the refresh lock.
func (s *SnapshotStore) ReleaseLock(ctx context.Context, region string) error {
	key := "lock:" + snapshotCacheKey(region)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("snapshot lock release: %w", err)
	}
	return nil
}

// WaitForLock polls until the refresh lock is released or ctx is done,
// used by a process that lost the AcquireLock race.
func (s *SnapshotStore) WaitForLock(ctx context.Context, region string) error {
	key := "lock:" + snapshotCacheKey(region)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			exists, err := s.client.Exists(ctx, key).Result()
			if err != nil {
				return fmt.Errorf("snapshot lock poll: %w", err)
			}
			if exists == 0 {
				return nil
			}
		}
	}
}

// HealthCheck pings Redis, surfacing an UnavailableDependency-class error.
func (s *SnapshotStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}
	return nil
}
