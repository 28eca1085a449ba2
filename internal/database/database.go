package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adityarahman/celengan/internal"
)

// DB bundles the two views over one sqlite connection: gorm for
// write-side CRUD and sqlx for raw-SQL projections and migrations.
// It is constructed once by the composition root and injected; nothing
// in the engine reaches for a package-level handle.
type DB struct {
	Gorm *gorm.DB
	SQLx *sqlx.DB
	SQL  *sql.DB
}

// Open creates the sqlite database connection with basic tuning.
func Open(cfg internal.DatabaseConfig) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gormLogger := gormlogger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(gormlogger.Silent)
	}

	gdb, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	// SQLite reliability tuning; single-writer model, see PRAGMAs
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	return &DB{
		Gorm: gdb,
		SQLx: sqlx.NewDb(sqlDB, "sqlite3"),
		SQL:  sqlDB,
	}, nil
}

func (db *DB) Close() error {
	return db.SQL.Close()
}

// Handle memoizes a single DB per process. The first successful Open
// wins; later calls return the same handle. A failed open is not
// cached so startup can be retried.
type Handle struct {
	mu  sync.Mutex
	db  *DB
	cfg internal.DatabaseConfig
}

func NewHandle(cfg internal.DatabaseConfig) *Handle {
	return &Handle{cfg: cfg}
}

func (h *Handle) Get() (*DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	db, err := Open(h.cfg)
	if err != nil {
		return nil, err
	}
	h.db = db
	return h.db, nil
}
