package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Blob backends.
const (
	BlobGCS    = "gcs"
	BlobS3     = "s3"
	BlobMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string

	// Store configuration
	StoreBackend        string
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	DBMaxConns          int32
	DBMinConns          int32
	DBMaxConnLifetime   time.Duration
	DBMaxConnIdleTime   time.Duration
	DBHealthCheckPeriod time.Duration
	DBAutoMigrate       bool
	MigrationsDir       string
	GCPProjectID        string

	// Blob storage configuration
	BlobBackend    string
	BlobBucket     string
	BlobTimeout    time.Duration
	PublicImageURL string

	// Generative model configuration
	VertexRegion   string
	VertexModel    string
	ModelTimeout   time.Duration
	ModelRateLimit float64

	// Master list cache configuration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MasterCacheTTL time.Duration

	// Batch configuration
	EnrichBatchSize  int
	MatchBatchSize   int
	ProcessBatchSize int
	MaxBatchSize     int
	InvocationBudget time.Duration
	BatchHeadroom    time.Duration

	// Matching and image configuration
	MatchThreshold   float64
	ImageMaxWidth    int
	ImageQuality     int
	WatermarkKey     string
	WatermarkOpacity float64

	// Background runner configuration
	AutoAdvance    bool
	WorkerPoolSize int

	// Logging configuration
	LogLevel string
}

// Load loads configuration from environment variables, reading a .env file first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		ReadTimeout:         getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        getEnvDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
		IdleTimeout:         getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		CORSOrigins:         getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		StoreBackend:        getEnv("STORE_BACKEND", StorePostgres),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "catalog_import"),
		DBSSLMode:           getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:          int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:          int32(getEnvInt("DB_MIN_CONNS", 1)),
		DBMaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		DBHealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		DBAutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", false),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "migrations"),
		GCPProjectID:        getEnv("PROJECT_ID", ""),
		BlobBackend:         getEnv("BLOB_BACKEND", BlobGCS),
		BlobBucket:          getEnv("BLOB_BUCKET", ""),
		BlobTimeout:         getEnvDuration("BLOB_TIMEOUT", 15*time.Second),
		PublicImageURL:      strings.TrimSuffix(getEnv("PUBLIC_IMAGE_BASE_URL", ""), "/"),
		VertexRegion:        getEnv("VERTEX_AI_REGION", "us-central1"),
		VertexModel:         getEnv("VERTEX_AI_MODEL", "gemini-1.5-pro"),
		ModelTimeout:        getEnvDuration("MODEL_TIMEOUT", 35*time.Second),
		ModelRateLimit:      getEnvFloat("MODEL_RATE_LIMIT", 1),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		MasterCacheTTL:      getEnvDuration("MASTER_CACHE_TTL", 5*time.Minute),
		EnrichBatchSize:     getEnvInt("ENRICH_BATCH_SIZE", 50),
		MatchBatchSize:      getEnvInt("MATCH_BATCH_SIZE", 500),
		ProcessBatchSize:    getEnvInt("PROCESS_BATCH_SIZE", 50),
		MaxBatchSize:        getEnvInt("MAX_BATCH_SIZE", 500),
		InvocationBudget:    getEnvDuration("INVOCATION_BUDGET", 50*time.Second),
		BatchHeadroom:       getEnvDuration("BATCH_HEADROOM", 5*time.Second),
		MatchThreshold:      getEnvFloat("MATCH_THRESHOLD", 0.7),
		ImageMaxWidth:       getEnvInt("IMAGE_MAX_WIDTH", 1024),
		ImageQuality:        getEnvInt("IMAGE_QUALITY", 80),
		WatermarkKey:        getEnv("WATERMARK_KEY", ""),
		WatermarkOpacity:    getEnvFloat("WATERMARK_OPACITY", 0.35),
		AutoAdvance:         getEnvBool("AUTO_ADVANCE", false),
		WorkerPoolSize:      getEnvInt("WORKER_POOL_SIZE", 2),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	switch c.StoreBackend {
	case StorePostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case StoreFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("PROJECT_ID is required for the firestore store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: postgres, firestore, memory")
	}
	switch c.BlobBackend {
	case BlobGCS, BlobS3:
		if c.BlobBucket == "" {
			return fmt.Errorf("BLOB_BUCKET is required")
		}
	case BlobMemory:
	default:
		return fmt.Errorf("BLOB_BACKEND must be one of: gcs, s3, memory")
	}
	if c.EnrichBatchSize < 1 || c.MatchBatchSize < 1 || c.ProcessBatchSize < 1 {
		return fmt.Errorf("batch sizes must be at least 1")
	}
	if c.MaxBatchSize < c.EnrichBatchSize || c.MaxBatchSize < c.MatchBatchSize || c.MaxBatchSize < c.ProcessBatchSize {
		return fmt.Errorf("MAX_BATCH_SIZE must not be below a stage batch size")
	}
	if c.InvocationBudget <= c.BatchHeadroom {
		return fmt.Errorf("INVOCATION_BUDGET must exceed BATCH_HEADROOM")
	}
	if c.ModelTimeout >= c.InvocationBudget || c.BlobTimeout >= c.InvocationBudget {
		return fmt.Errorf("MODEL_TIMEOUT and BLOB_TIMEOUT must be shorter than INVOCATION_BUDGET")
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in (0, 1]")
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be between 1 and 100")
	}
	if c.ImageMaxWidth < 1 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be at least 1")
	}
	if c.WorkerPoolSize < 1 {
		return fmt.Errorf("WORKER_POOL_SIZE must be at least 1")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets an environment variable as float64 with a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as bool with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
