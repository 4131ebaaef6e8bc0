package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// RateLimit is the request budget per client IP, e.g. "100-M".
	RateLimit string

	// GenerationHorizonMonths bounds how far ahead the recurrence generator
	// projects schedule entries.
	GenerationHorizonMonths int

	// WriteBatchSize caps the number of statements issued per schedule
	// write transaction.
	WriteBatchSize int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("GENERATION_HORIZON_MONTHS", 6)
	viper.SetDefault("WRITE_BATCH_SIZE", 400)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.GenerationHorizonMonths = viper.GetInt("GENERATION_HORIZON_MONTHS")
	if cfg.GenerationHorizonMonths <= 0 {
		log.Println("Warning: Invalid GENERATION_HORIZON_MONTHS. Defaulting to 6.")
		cfg.GenerationHorizonMonths = 6
	}

	cfg.WriteBatchSize = viper.GetInt("WRITE_BATCH_SIZE")
	if cfg.WriteBatchSize <= 0 {
		log.Println("Warning: Invalid WRITE_BATCH_SIZE. Defaulting to 400.")
		cfg.WriteBatchSize = 400
	}

	return cfg, nil
}
