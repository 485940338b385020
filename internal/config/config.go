package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // TRACEVIZ_DATABASE_URL (required)
	HTTPAddr    string // TRACEVIZ_HTTP_ADDR (default ":8080")
	NATSURL     string // TRACEVIZ_NATS_URL (optional, empty = no events)
	AuthToken   string // TRACEVIZ_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot export settings
	SyncInterval   time.Duration // TRACEVIZ_SYNC_INTERVAL (default 5m; 0 = disabled)
	SyncS3Bucket   string        // TRACEVIZ_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // TRACEVIZ_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // TRACEVIZ_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // TRACEVIZ_SYNC_S3_KEY (default "traceviz/graph.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("TRACEVIZ_DATABASE_URL"),
		HTTPAddr:       envOrDefault("TRACEVIZ_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("TRACEVIZ_NATS_URL"),
		AuthToken:      os.Getenv("TRACEVIZ_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("TRACEVIZ_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("TRACEVIZ_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("TRACEVIZ_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("TRACEVIZ_SYNC_S3_KEY", "traceviz/graph.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TRACEVIZ_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("TRACEVIZ_SYNC_INTERVAL", "5m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TRACEVIZ_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
