package postgres

import (
	"fmt"
	"strings"
	"time"

	"makanapa/internal/adapters/out/postgres/customerrepo"
	"makanapa/internal/adapters/out/postgres/orderrepo"
	"makanapa/internal/adapters/out/postgres/runnerrepo"
	"makanapa/internal/adapters/out/postgres/sequencerepo"

	"github.com/glebarez/sqlite"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig tunes the database/sql connection pool. Zero values keep the driver defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config selects the database engine.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	DSN    string
	Pool   PoolConfig
}

// Open connects to the configured database. SQLite connections are limited to a
// single open connection, which is how SQLite serializes writers anyway and
// avoids "database is locked" errors under concurrent handlers.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	pool := cfg.Pool

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres", "postgresql":
		dialector = gormpostgres.Open(cfg.DSN)
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
		pool.MaxOpenConns = 1
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	return db, nil
}

// Migrate creates or updates the schema. Parents are listed before the tables
// referencing them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&runnerrepo.RunnerDTO{},
		&orderrepo.OrderDTO{},
		&sequencerepo.SequenceDTO{},
	)
}
