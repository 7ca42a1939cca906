package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/eventfinder-ai/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	Search      SearchConfig
	Calendar    CalendarConfig
	Routes      RoutesConfig
	Geolocation GeolocationConfig
	Workflow    WorkflowConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration for workflow analytics
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration for the verified-event index
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// SearchProviderKind identifies a search provider implementation. Resolution
// happens once at startup; unknown names fail construction, not requests.
type SearchProviderKind string

const (
	SearchProviderBrave SearchProviderKind = "brave"
	SearchProviderMock  SearchProviderKind = "mock"
)

// SearchConfig holds search provider configuration
type SearchConfig struct {
	Provider       SearchProviderKind
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
	ResultCount    int
}

// Validate checks that the selected search provider is usable. Missing
// credentials disable discovery entirely, so they are a startup failure
// rather than an empty-but-successful run.
func (c *SearchConfig) Validate() error {
	switch c.Provider {
	case SearchProviderMock:
		return nil
	case SearchProviderBrave:
		if strings.TrimSpace(c.APIKey) == "" {
			return apperrors.NewConfigurationError("SEARCH_API_KEY is required for the brave search provider")
		}
		return nil
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown search provider %q", c.Provider))
	}
}

// CalendarConfig holds calendar availability provider configuration
type CalendarConfig struct {
	APIKey       string
	APIURI       string
	GrantID      string
	Participants []string
}

// RoutesConfig holds travel-time provider configuration
type RoutesConfig struct {
	APIKey  string
	BaseURL string
}

// GeolocationConfig holds reverse-geocoding provider configuration
type GeolocationConfig struct {
	Provider string
	APIKey   string
}

// WorkflowConfig holds orchestrator policy defaults
type WorkflowConfig struct {
	MaxRelaxationAttempts int
	MaxRadiusMiles        int
	DefaultRadiusMiles    int
	DefaultTransitMinutes int
	DefaultTimeWindowDays int
	DefaultHomeCity       string
	DefaultGenres         []string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "eventfinder"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Search: SearchConfig{
			Provider:       SearchProviderKind(strings.ToLower(getEnv("SEARCH_PROVIDER", "brave"))),
			APIKey:         getEnv("SEARCH_API_KEY", ""),
			BaseURL:        getEnv("SEARCH_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("SEARCH_TIMEOUT_SECONDS", 15),
			ResultCount:    getEnvAsInt("SEARCH_RESULT_COUNT", 10),
		},
		Calendar: CalendarConfig{
			APIKey:       getEnv("NYLAS_API_KEY", ""),
			APIURI:       getEnv("NYLAS_API_URI", "https://api.us.nylas.com"),
			GrantID:      getEnv("NYLAS_GRANT_ID", ""),
			Participants: getEnvAsSlice("CALENDAR_PARTICIPANTS", nil),
		},
		Routes: RoutesConfig{
			APIKey:  getEnv("OPENROUTE_SERVICE_API_KEY", ""),
			BaseURL: getEnv("OPENROUTE_SERVICE_BASE_URL", "https://api.openrouteservice.org"),
		},
		Geolocation: GeolocationConfig{
			Provider: getEnv("GEOLOCATION_PROVIDER", "mock"),
			APIKey:   getEnv("GEOLOCATION_API_KEY", ""),
		},
		Workflow: WorkflowConfig{
			MaxRelaxationAttempts: getEnvAsInt("WORKFLOW_MAX_RELAXATION_ATTEMPTS", 3),
			MaxRadiusMiles:        getEnvAsInt("WORKFLOW_MAX_RADIUS_MILES", 50),
			DefaultRadiusMiles:    getEnvAsInt("WORKFLOW_DEFAULT_RADIUS_MILES", 5),
			DefaultTransitMinutes: getEnvAsInt("WORKFLOW_DEFAULT_TRANSIT_MINUTES", 30),
			DefaultTimeWindowDays: getEnvAsInt("WORKFLOW_DEFAULT_TIME_WINDOW_DAYS", 7),
			DefaultHomeCity:       getEnv("WORKFLOW_DEFAULT_HOME_CITY", "San Francisco"),
			DefaultGenres:         getEnvAsSlice("WORKFLOW_DEFAULT_GENRES", []string{"music", "arts", "tech"}),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "eventfinder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
