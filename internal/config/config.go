// Package config loads process configuration via viper, mirroring the
// pack's env+mapstructure configuration pattern.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
)

// Config is the fully-resolved process configuration.
type Config struct {
	ServerAddr string `mapstructure:"server_addr"`

	PostgresDSN string `mapstructure:"postgres_dsn"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SnapshotTTL   time.Duration `mapstructure:"snapshot_ttl"`

	RoadDistanceCacheCapacity     int `mapstructure:"road_distance_cache_capacity"`
	MobilityReachableCacheCapacity int `mapstructure:"mobility_reachable_cache_capacity"`
	NearestNodeCacheCapacity      int `mapstructure:"nearest_node_cache_capacity"`

	ZoneGridRows int `mapstructure:"zone_grid_rows"`
	ZoneGridCols int `mapstructure:"zone_grid_cols"`

	MobilityRegion string `mapstructure:"mobility_region"`

	ModeParams modeparams.Table `mapstructure:"-"`
}

// Load reads configuration from environment variables (prefixed
// GANGNAM_) and an optional config.yaml in the working directory,
// matching the pack's viper usage pattern.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GANGNAM")
	v.AutomaticEnv()

	v.SetDefault("server_addr", ":8080")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("snapshot_ttl", 30*time.Second)
	v.SetDefault("road_distance_cache_capacity", 5000)
	v.SetDefault("mobility_reachable_cache_capacity", 5000)
	v.SetDefault("nearest_node_cache_capacity", 5000)
	v.SetDefault("zone_grid_rows", 30)
	v.SetDefault("zone_grid_cols", 30)
	v.SetDefault("mobility_region", "gangnam")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ModeParams = modeparams.Default()

	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("config: GANGNAM_POSTGRES_DSN is required")
	}
	return &cfg, nil
}
