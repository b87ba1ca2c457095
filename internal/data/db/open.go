package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Config struct {
	URL             string
	MaxConnections  int
	MaxConnLifetime time.Duration
}

// Open connects lazily: no ping is issued, so a server with an unreachable database still starts.
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	dbLog := log.With("service", "Database", "dialect", dialect)

	gormCfg := &gorm.Config{
		Logger:               newGormLogger(dbLog),
		TranslateError:       true,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}

	var gdb *gorm.DB
	switch dialect {
	case DialectPostgres:
		pgCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres url: %w", err)
		}
		sqlDB := stdlib.OpenDB(*pgCfg)
		if cfg.MaxConnections > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxConnections)
			sqlDB.SetMaxIdleConns(cfg.MaxConnections / 2)
		}
		if cfg.MaxConnLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
		}
		gdb, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		dbLog.Info("Postgres pool configured", "host", pgCfg.Host, "database", pgCfg.Database)
	case DialectSQLite:
		gdb, err = gorm.Open(sqlite.Open(sqliteDSN(dsn)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if dsn == ":memory:" {
			// every pooled connection would otherwise get its own empty database
			sqlDB, err := gdb.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		dbLog.Info("SQLite database opened", "path", dsn)
	}
	return gdb, nil
}

// ParseURL maps a DATABASE_URL onto a gorm dialect and driver DSN.
// sqlite:///./app.db is a relative path, sqlite:////var/app.db absolute and sqlite:// in-memory.
func ParseURL(raw string) (dialect, dsn string, err error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "", "", fmt.Errorf("database url %q has no scheme", raw)
	}
	scheme = strings.ToLower(scheme)
	if base, _, found := strings.Cut(scheme, "+"); found {
		scheme = base
	}
	switch scheme {
	case "postgres", "postgresql":
		return DialectPostgres, "postgres://" + rest, nil
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" || path == ":memory:" {
			path = ":memory:"
		}
		return DialectSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Ping checks connectivity within ctx.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	if gdb == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(log *logger.Logger) gormLogger.Interface {
	return gormLogger.New(gormWriter{log: log}, gormLogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
