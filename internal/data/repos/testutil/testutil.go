package testutil

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/db"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a migrated database private to the test. It is SQLite in a temp dir
// unless TEST_POSTGRES_DSN is set, in which case each test gets its own schema.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	var gdb *gorm.DB
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		gdb = postgresSchema(tb, dsn)
	} else {
		path := filepath.Join(tb.TempDir(), "skillbridge_test.db")
		var err error
		gdb, err = db.Open(db.Config{URL: "sqlite:///" + path}, Logger(tb))
		if err != nil {
			tb.Fatalf("open test db: %v", err)
		}
		tb.Cleanup(func() { _ = db.Close(gdb) })
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

func postgresSchema(tb testing.TB, dsn string) *gorm.DB {
	tb.Helper()
	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := db.Open(db.Config{URL: dsn, MaxConnections: 2}, Logger(tb))
	if err != nil {
		tb.Fatalf("open postgres: %v", err)
	}
	if err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", schema)).Error; err != nil {
		_ = db.Close(admin)
		tb.Fatalf("create schema: %v", err)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		tb.Fatalf("parse TEST_POSTGRES_DSN: %v", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	gdb, err := db.Open(db.Config{URL: u.String(), MaxConnections: 4}, Logger(tb))
	if err != nil {
		tb.Fatalf("open postgres schema: %v", err)
	}
	tb.Cleanup(func() {
		_ = db.Close(gdb)
		_ = admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)).Error
		_ = db.Close(admin)
	})
	return gdb
}

// Tx begins a transaction rolled back when the test ends.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
