package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	config "task-service.com/task-service/internal/configs"
	model "task-service.com/task-service/internal/models"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Handle is the process-wide database pool. Every unit of work goes through
// Run so it executes inside its own transaction.
type Handle struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Handle {
	return &Handle{db: db}
}

// Open connects using cfg, verifies the connection and, when enabled,
// migrates the schema. There is no retry: a failure here is fatal.
func Open(cfg config.DatabaseConfig) (*Handle, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db pool unavailable: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	h := New(db)
	if cfg.AutoMigrate {
		if err := h.Migrate(context.Background()); err != nil {
			_ = h.Close()
			return nil, err
		}
	}

	return h, nil
}

// Run executes fn in a transaction, committing when fn returns nil and
// rolling back on error or panic.
func (h *Handle) Run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return h.db.WithContext(ctx).Transaction(fn)
}

func (h *Handle) Migrate(ctx context.Context) error {
	if err := h.db.WithContext(ctx).AutoMigrate(&model.Task{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (h *Handle) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.DriverName {
	case "sqlite", "sqlite3":
		return sqlite.Open(cfg.URL), nil
	case "postgres", "postgresql", "pgx":
		dsn, err := PostgresDSN(cfg.URL, cfg.User, cfg.Password)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn, err := MySQLDSN(cfg.URL, cfg.User, cfg.Password)
		if err != nil {
			return nil, err
		}
		return gormmysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DriverName)
	}
}

// PostgresDSN injects credentials into either a URL DSN
// (postgres://host/db) or a keyword/value DSN (host=... dbname=...).
func PostgresDSN(rawURL, user, password string) (string, error) {
	if strings.HasPrefix(rawURL, "postgres://") || strings.HasPrefix(rawURL, "postgresql://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("invalid postgres url: %w", err)
		}
		if user != "" {
			u.User = url.UserPassword(user, password)
		}
		return u.String(), nil
	}

	dsn := strings.TrimSpace(rawURL)
	if user != "" {
		dsn += " user=" + quoteKeyword(user)
	}
	if password != "" {
		dsn += " password=" + quoteKeyword(password)
	}
	return strings.TrimSpace(dsn), nil
}

func MySQLDSN(rawURL, user, password string) (string, error) {
	c, err := mysqldriver.ParseDSN(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if user != "" {
		c.User = user
		c.Passwd = password
	}
	c.ParseTime = true
	// count matched rows, not changed ones, like sqlite and postgres do
	c.ClientFoundRows = true
	return c.FormatDSN(), nil
}

func quoteKeyword(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
