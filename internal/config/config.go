package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Dataset
	DataBackend   string
	DatasetCSV    string
	SQLiteDBPath  string
	SpreadsheetID string
	SheetRange    string
	MinBaseYear   int

	// Comparison target
	ReferenceOccupation string
	ReferenceLabel      string
	DefaultRegion       string

	// AMQP (optional dataset-refresh notifications)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Query response cache
	CacheSize int
	CacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend:   getEnv("DATA_BACKEND", "csv"),
		DatasetCSV:    getEnv("DATASET_CSV_PATH", "./data/base_dashboard_irpf_2020_2023.csv"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/comparador.db"),
		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetRange:    getEnv("GOOGLE_SHEET_RANGE", "A:K"),
		MinBaseYear:   getEnvInt("MIN_BASE_YEAR", 2021),

		ReferenceOccupation: getEnv("REFERENCE_OCCUPATION", "Membro do Poder Judiciário e de Tribunal de Contas"),
		ReferenceLabel:      getEnv("REFERENCE_LABEL", "Judiciário"),
		DefaultRegion:       getEnv("DEFAULT_REGION", "São Paulo"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "comparador"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "dataset_refresh"),

		CacheSize: getEnvInt("QUERY_CACHE_SIZE", 256),
		CacheTTL:  getEnvDuration("QUERY_CACHE_TTL", 10*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"csv", "sqlite", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "csv":
		if c.DatasetCSV == "" {
			errors = append(errors, "dataset CSV path cannot be empty when using csv backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "sheets":
		if c.SpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
	}

	if c.ReferenceOccupation == "" {
		errors = append(errors, "reference occupation cannot be empty")
	}

	if c.MinBaseYear < 1900 || c.MinBaseYear > 2200 {
		errors = append(errors, fmt.Sprintf("invalid minimum base year %d", c.MinBaseYear))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid query cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid query cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
