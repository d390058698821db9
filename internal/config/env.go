package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Port           string
	DatabaseURL    string
	DBMaxOpenConns int

	AIAPIKey   string
	GenModel   string
	LLMTimeout time.Duration

	StorageBackend string
	UploadDir      string
	AwsAccessKey   string
	AwsSecretKey   string
	AwsRegion      string
	BucketName     string

	MaxUploadMB      int
	SummaryChars     int
	PreviewChars     int
	CleanupOnFailure bool

	AllowedOrigins []string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadConfig loads the environment variables (and a .env file when present) and returns config.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),

		AIAPIKey:   getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		GenModel:   getEnv("GEN_MODEL", "gemini-1.5-flash"),
		LLMTimeout: getEnvDuration("LLM_TIMEOUT", 60*time.Second),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		AwsAccessKey:   getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:   getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:      getEnv("AWS_REGION", "us-east-2"),
		BucketName:     getEnv("BUCKET_NAME", "docsum-uploads"),

		MaxUploadMB:      getEnvInt("MAX_UPLOAD_MB", 32),
		SummaryChars:     getEnvInt("SUMMARY_CHARS", 3000),
		PreviewChars:     getEnvInt("PREVIEW_CHARS", 500),
		CleanupOnFailure: getEnvBool("CLEANUP_ON_FAILURE", true),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 120*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL not set"))
	}
	if c.AIAPIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY not set"))
	}
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR not set"))
		}
	case StorageS3:
		if c.BucketName == "" {
			errs = append(errs, errors.New("BUCKET_NAME not set"))
		}
		if c.AwsRegion == "" {
			errs = append(errs, errors.New("AWS_REGION not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q is not one of %q, %q", c.StorageBackend, StorageLocal, StorageS3))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB))
	}
	if c.SummaryChars <= 0 || c.PreviewChars <= 0 {
		errs = append(errs, errors.New("SUMMARY_CHARS and PREVIEW_CHARS must be positive"))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a bool, using default %t", key, v, def)
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a duration, using default %s", key, v, def)
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
