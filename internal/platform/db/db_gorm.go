// Package db opens the gorm connection selected by DATABASE_URL.
package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// retryInterval is the wait between connection attempts.
const retryInterval = 3 * time.Second

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// Dialector picks the gorm driver for a database URL.
// "postgres://" and "postgresql://" select postgres; "sqlite:///path" (or a bare path) selects sqlite.
func Dialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		// sqlite:///blog.db is relative, sqlite:////abs/blog.db is absolute
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return nil, fmt.Errorf("sqlite url %q has no path", url)
		}
		return sqlite.Open(withForeignKeys(path)), nil
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("unsupported database url scheme: %q", url)
	default:
		return sqlite.Open(withForeignKeys(url)), nil
	}
}

// withForeignKeys enables foreign key enforcement, which sqlite leaves off by default.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// GormConfig is the gorm configuration shared by the server, the seeder and tests.
// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey.
// Queries are logged through the global zerolog logger.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log.Logger, gormlogger.Warn),
	}
}

// Open connects to url, retrying until wait elapses.
func Open(url string, wait time.Duration) (*gorm.DB, error) {
	dialector, err := Dialector(url)
	if err != nil {
		return nil, err
	}
	opener := func(string) (*gorm.DB, error) {
		conn, err := gorm.Open(dialector, GormConfig())
		if err != nil {
			return nil, err
		}
		if dialector.Name() == "sqlite" {
			// sqlite serializes writers; a single connection also keeps ":memory:" on one database.
			sqlDB, err := conn.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return conn, nil
	}
	return ConnectWithRetry(url, wait, opener)
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Warn().Err(err).Msg("DB connect failed, retrying")
		time.Sleep(retryInterval)
	}
}

// Migrate creates or updates the tables for models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint failure from any supported driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
