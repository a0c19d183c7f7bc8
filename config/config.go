package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the API and the operator CLI read from the environment.
type Config struct {
	AppPort string

	// Control-plane database (tenants + users).
	ControlDSN string
	// fmt template receiving the tenant database name, e.g.
	// "root:@tcp(127.0.0.1:3306)/%s?charset=utf8mb4&parseTime=True&loc=Local".
	TenantDSNTemplate string
	// Maximum number of tenant handles kept open by the router.
	TenantCacheSize int

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration

	LogLevel  string
	LogFormat string

	LoginRatePerMinute int
}

func Load() *Config {
	return &Config{
		AppPort:            GetEnv("APP_PORT", "3000"),
		ControlDSN:         GetEnv("CONTROL_DB_DSN", "root:@tcp(127.0.0.1:3306)/payroll_control?charset=utf8mb4&parseTime=True&loc=Local"),
		TenantDSNTemplate:  GetEnv("TENANT_DSN_TEMPLATE", "root:@tcp(127.0.0.1:3306)/%s?charset=utf8mb4&parseTime=True&loc=Local"),
		TenantCacheSize:    GetEnvAsInt("TENANT_CACHE_SIZE", 64),
		JWTSecret:          GetEnv("JWT_SECRET", "change-me"),
		AccessTokenTTL:     GetEnvAsDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:    GetEnvAsDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		RedisAddr:          GetEnv("REDIS_ADDR", ""),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		RedisDB:            GetEnvAsInt("REDIS_DB", 0),
		DashboardCacheTTL:  GetEnvAsDuration("DASHBOARD_CACHE_TTL", 30*time.Second),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		LogFormat:          GetEnv("LOG_FORMAT", "json"),
		LoginRatePerMinute: GetEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration accepts Go duration strings ("90s", "1h").
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
