package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Recommender RecommenderConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
}

// RecommenderConfig tunes the matrix-factorization trainer and the
// recommendation serving path. The rating scale is part of the config so the
// same code path works for datasets rated on other scales.
type RecommenderConfig struct {
	Factors          int
	Epochs           int
	LearningRate     float64
	Regularization   float64
	RandomSeed       int64
	ScaleMin         float64
	ScaleMax         float64
	HistoryThreshold int
	RankingTimeout   time.Duration
	RankingWorkers   int
	ModelLocalPath   string
	ModelObjectKey   string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8010"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:          getEnvOrDefault("DB_NAME", "flixfinder_db"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			QueryTimeout:    getDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("AWS_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnvOrDefault("AWS_BUCKET", "flixfinder-models"),
			Region:          getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
			UseSSL:          getBoolOrDefault("AWS_USE_SSL", false),
		},
		Recommender: RecommenderConfig{
			Factors:          getIntOrDefault("RECOMMENDER_FACTORS", 50),
			Epochs:           getIntOrDefault("RECOMMENDER_EPOCHS", 20),
			LearningRate:     getFloatOrDefault("RECOMMENDER_LEARNING_RATE", 0.005),
			Regularization:   getFloatOrDefault("RECOMMENDER_REGULARIZATION", 0.02),
			RandomSeed:       int64(getIntOrDefault("RECOMMENDER_RANDOM_SEED", 42)),
			ScaleMin:         getFloatOrDefault("RECOMMENDER_SCALE_MIN", 0.0),
			ScaleMax:         getFloatOrDefault("RECOMMENDER_SCALE_MAX", 5.0),
			HistoryThreshold: getIntOrDefault("RECOMMENDER_HISTORY_THRESHOLD", 5),
			RankingTimeout:   getDurationOrDefault("RECOMMENDER_RANKING_TIMEOUT", 5*time.Second),
			RankingWorkers:   getIntOrDefault("RECOMMENDER_RANKING_WORKERS", 4),
			ModelLocalPath:   getEnvOrDefault("RECOMMENDER_MODEL_PATH", "data/models/svd_model.json"),
			ModelObjectKey:   getEnvOrDefault("RECOMMENDER_MODEL_OBJECT_KEY", "recommendations/models/svd_model.json"),
		},
	}
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.MinIO.AccessKeyID == "" {
		return fmt.Errorf("AWS_ACCESS_KEY_ID is required for MinIO")
	}
	if c.MinIO.SecretAccessKey == "" {
		return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required for MinIO")
	}
	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("AWS_ENDPOINT is required for MinIO")
	}
	if c.Recommender.Factors <= 0 {
		return fmt.Errorf("RECOMMENDER_FACTORS must be positive")
	}
	if c.Recommender.ScaleMax <= c.Recommender.ScaleMin {
		return fmt.Errorf("RECOMMENDER_SCALE_MAX must be greater than RECOMMENDER_SCALE_MIN")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
