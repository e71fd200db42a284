package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppURL                 string
	ShutdownTimeoutSeconds int
	RateLimit              int
	RedisAddr              string
	RedisRateLimitKey      string
	TrustedProxies         []*net.IPNet
	Database               DatabaseConfig
}

type DatabaseConfig struct {
	URL             string
	DriverName      string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	AutoMigrate     bool
}

var requiredDatabaseKeys = []string{
	"DATABASE_URL",
	"DATABASE_DRIVER_NAME",
	"DATABASE_USER",
	"DATABASE_PASSWORD",
}

// Load reads the process environment. Missing database keys and malformed
// numbers are reported together so a broken deployment fails on start.
func Load() (Config, error) {
	var errs []error

	for _, key := range requiredDatabaseKeys {
		if _, ok := os.LookupEnv(key); !ok {
			errs = append(errs, fmt.Errorf("missed environment variable %s, check the .env file or OS environment", key))
		}
	}

	appHost := getEnv("APP_HOST", "0.0.0.0")
	appPort := getEnv("APP_PORT", "8080")

	var redisAddr string
	if redisHost := getEnv("REDIS_HOST", ""); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 5, &errs),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 0, &errs),
		RedisAddr:              redisAddr,
		RedisRateLimitKey:      getEnv("REDIS_RATE_LIMIT_KEY", "task_service_rate_limit"),
		TrustedProxies:         getEnvAsCIDRs("TRUSTED_PROXIES", &errs),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			DriverName:      strings.ToLower(strings.TrimSpace(os.Getenv("DATABASE_DRIVER_NAME"))),
			User:            os.Getenv("DATABASE_USER"),
			Password:        os.Getenv("DATABASE_PASSWORD"),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME_SECONDS", 300, &errs)) * time.Second,
			LogLevel:        strings.ToLower(getEnv("DATABASE_LOG_LEVEL", "warn")),
			AutoMigrate:     getEnvAsBool("DATABASE_AUTO_MIGRATE", true, &errs),
		},
	}

	if len(errs) == 0 {
		errs = append(errs, validate(cfg)...)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

func validate(cfg Config) []error {
	var errs []error

	if cfg.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL must not be empty"))
	}
	if cfg.Database.DriverName == "" {
		errs = append(errs, errors.New("DATABASE_DRIVER_NAME must not be empty"))
	}
	if cfg.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("DATABASE_MAX_OPEN_CONNS must be greater than 0"))
	}
	if cfg.Database.MaxIdleConns <= 0 {
		errs = append(errs, errors.New("DATABASE_MAX_IDLE_CONNS must be greater than 0"))
	}
	if cfg.Database.ConnMaxLifetime <= 0 {
		errs = append(errs, errors.New("DATABASE_CONN_MAX_LIFETIME_SECONDS must be greater than 0"))
	}
	switch cfg.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_LOG_LEVEL %q is not one of silent, error, warn, info", cfg.Database.LogLevel))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}

	return errs
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]error) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}

// getEnvAsCIDRs parses a comma separated list of CIDRs or bare IPs.
func getEnvAsCIDRs(key string, errs *[]error) []*net.IPNet {
	var nets []*net.IPNet
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "/") {
			if ip := net.ParseIP(part); ip != nil && ip.To4() != nil {
				part += "/32"
			} else {
				part += "/128"
			}
		}
		_, ipNet, err := net.ParseCIDR(part)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid CIDR %q in %s", part, key))
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets
}
