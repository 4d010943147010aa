package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultFeedURL is the published CSV export of the locations spreadsheet.
const DefaultFeedURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTwF-CF0mHIcyE8o9BeWFeyq0HgCEe16HhM3fOYI60qZI8dHmhXeq0HE-MRm5KkOKW43-Z0GsHBKhFl/pub?output=csv"

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string
	Feed        FeedConfig
	Query       QueryConfig
	Position    string
}

// FeedConfig describes where the dataset comes from and how it is parsed
type FeedConfig struct {
	URL         string
	Format      string // "", "csv" or "xlsx"; empty means detect from URL
	Parser      string // "split" or "csv"
	Strict      bool
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// QueryConfig holds the deployment tunables of the query engine
type QueryConfig struct {
	RadiusMeters        float64
	PageSize            int
	WalkMetersPerMinute float64
	RideMetersPerMinute float64
}

// LoadDotEnv reads a .env file into the environment when one exists.
// It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	cfg := Config{
		Environment: Get("APP_ENV", "production"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		Feed: FeedConfig{
			URL:         Get("FEED_URL", DefaultFeedURL),
			Format:      strings.ToLower(Get("FEED_FORMAT", "")),
			Parser:      strings.ToLower(Get("FEED_PARSER", "split")),
			Strict:      getEnvAsBool("FEED_STRICT", false),
			Timeout:     getEnvAsDuration("FEED_TIMEOUT", 10*time.Second),
			MaxAttempts: getEnvAsInt("FEED_MAX_ATTEMPTS", 3),
			Backoff:     getEnvAsDuration("FEED_RETRY_BACKOFF", 200*time.Millisecond),
		},
		Query: QueryConfig{
			RadiusMeters:        getEnvAsFloat("QUERY_RADIUS_METERS", 7500),
			PageSize:            getEnvAsInt("QUERY_PAGE_SIZE", 5),
			WalkMetersPerMinute: getEnvAsFloat("TRAVEL_WALK_METERS_PER_MINUTE", 80),
			RideMetersPerMinute: getEnvAsFloat("TRAVEL_RIDE_METERS_PER_MINUTE", 250),
		},
		Position: Get("LOCATOR_POSITION", ""),
	}

	return cfg, cfg.Validate()
}

// Validate checks if config is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.Feed.URL) == "" {
		return fmt.Errorf("config: feed url is required")
	}
	switch c.Feed.Format {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("config: unknown feed format %q", c.Feed.Format)
	}
	switch c.Feed.Parser {
	case "split", "csv":
	default:
		return fmt.Errorf("config: unknown feed parser %q", c.Feed.Parser)
	}
	if c.Feed.MaxAttempts < 1 {
		return fmt.Errorf("config: feed max attempts must be at least 1, got %d", c.Feed.MaxAttempts)
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("config: feed timeout must be positive, got %s", c.Feed.Timeout)
	}
	if c.Query.RadiusMeters <= 0 {
		return fmt.Errorf("config: radius must be positive, got %v", c.Query.RadiusMeters)
	}
	if c.Query.PageSize < 1 {
		return fmt.Errorf("config: page size must be at least 1, got %d", c.Query.PageSize)
	}
	if c.Query.WalkMetersPerMinute <= 0 || c.Query.RideMetersPerMinute <= 0 {
		return fmt.Errorf("config: travel speeds must be positive")
	}
	return nil
}

// Get returns the environment variable key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := Get(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := Get(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := Get(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := Get(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
