package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	FileUploadPath string
	MaxFileUpload  int64
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	GeocoderURL    string
	GeocoderAPIKey string
	GeocoderRPS    float64

	RedisAddr     string
	RedisPassword string
	RedisGeoKey   string

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel  string
	LogFormat string

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins       []string
	ReconcileSchedule string
}

// LoadConfig reads .env when present, then the environment. Every malformed
// value is reported at once.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	cfg := &Config{
		Port:    getEnv("PORT", "5000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "foodtruck.db"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 30*24*time.Hour, &errs),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		FileUploadPath: getEnv("FILE_UPLOAD_PATH", "./public/uploads"),
		MaxFileUpload:  getInt64("MAX_FILE_UPLOAD", 1000000, &errs),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),

		GeocoderURL:    getEnv("GEOCODER_URL", ""),
		GeocoderAPIKey: getEnv("GEOCODER_API_KEY", ""),
		GeocoderRPS:    getFloat("GEOCODER_RPS", 5, &errs),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisGeoKey:   getEnv("REDIS_GEO_KEY", "foodtrucks:geo"),

		KafkaBrokers: getList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "foodtruck-events"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10, &errs),
		RateLimitBurst: int(getInt64("RATE_LIMIT_BURST", 20, &errs)),

		CORSOrigins:       getList("CORS_ORIGINS"),
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "@every 1h"),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET: must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getInt64(key string, fallback int64, errs *[]error) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
