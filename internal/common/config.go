package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. Everything that used to be a
// process-wide constant (endpoint, retry count, free-use ceiling) lives here
// and is passed into the pipeline at construction.
type Config struct {
	Generation GenerationConfig
	Extract    ExtractConfig
	Usage      UsageConfig
}

// GenerationConfig configures the generation endpoint call.
type GenerationConfig struct {
	Endpoint    string        // full URL of the generateContent endpoint
	APIKey      string        // appended by the caller; transport is auth-agnostic
	MaxAttempts int           // total attempts including the first
	BackoffBase time.Duration // wait before retry i is BackoffBase * 2^i
	Timeout     time.Duration // per-attempt HTTP timeout
}

// ExtractConfig configures the external text-extraction helpers.
type ExtractConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pandoc    string // binary name or absolute path; if empty -> "pandoc"
}

// UsageConfig holds the caller-owned free-tier policy inputs.
type UsageConfig struct {
	MaxFreeUses int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Endpoint:    getEnv("GENERATION_ENDPOINT", ""),
			APIKey:      getEnv("GENERATION_API_KEY", ""),
			MaxAttempts: getEnvAsInt("GENERATION_MAX_ATTEMPTS", 3),
			BackoffBase: getEnvAsDuration("GENERATION_BACKOFF_BASE", time.Second),
			Timeout:     getEnvAsDuration("GENERATION_TIMEOUT", 45*time.Second),
		},
		Extract: ExtractConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pandoc:    getEnv("PANDOC_BIN", "pandoc"),
		},
		Usage: UsageConfig{
			MaxFreeUses: getEnvAsInt("MAX_FREE_USES", 2),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Generation.Endpoint == "" {
		return Errorf(KindMissingInput, "GENERATION_ENDPOINT is required")
	}
	if c.Generation.MaxAttempts < 1 {
		return Errorf(KindMissingInput, "GENERATION_MAX_ATTEMPTS must be >= 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
