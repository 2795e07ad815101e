package config

import (
	"fmt"
	"os"
	"strconv"

	"clinic-management-server/internal/models"
)

// Config holds all configuration for our application
type Config struct {
	Port            string
	Origin          string
	Environment     string
	SessionSecret   string
	SessionTTLHours int
	ConsultationFee float64
	SeedCatalog     bool
	Database        DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	sessionTTLHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	consultationFee, err := strconv.ParseFloat(getEnv("CONSULTATION_FEE", fmt.Sprint(models.DefaultConsultationFee)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CONSULTATION_FEE: %w", err)
	}

	seedCatalog, err := strconv.ParseBool(getEnv("SEED_CATALOG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_CATALOG: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:            getEnv("PORT", "5050"),
		Origin:          getEnv("ORIGIN", "http://localhost:4200"),
		Environment:     getEnv("APP_ENV", "development"),
		SessionSecret:   getEnv("SESSION_SECRET", "fallback_secret"),
		SessionTTLHours: sessionTTLHours,
		ConsultationFee: consultationFee,
		SeedCatalog:     seedCatalog,
		Database:        dbConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
