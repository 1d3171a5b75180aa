package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	StorageMode      string
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaTopicPrefix string
	CommitTimeout    time.Duration
	SessionTTL       time.Duration
	TrendingTTL      time.Duration
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3UseSSL         bool
}

// Load parses configuration from the current environment. StorageMode
// "memory" runs the whole stack in process, which is how the test and dev
// loops run; "mongo" requires MONGO_URI.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "dreamstay"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "dreamstay."),
		S3Endpoint:       getEnv("S3_ENDPOINT", "localhost:9000"),
		S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:      getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:         getEnv("S3_BUCKET", "dreamstay-photos"),
	}
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}

	commitTimeout, err := parseDurationEnv("COMMIT_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.CommitTimeout = commitTimeout

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	trendingTTL, err := parseDurationEnv("TRENDING_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.TrendingTTL = trendingTTL

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL
	if cfg.S3PublicEndpoint == "" {
		cfg.S3PublicEndpoint = cfg.S3Endpoint
	}

	switch cfg.StorageMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_MODE: %q", cfg.StorageMode)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
