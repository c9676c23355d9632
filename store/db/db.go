package db

import (
	"fmt"
	"sync"

	"github.com/jinzhu/gorm"
	// registered dialects
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Config database connection
type Config struct {
	Dialect string `json:"dialect" yaml:"dialect" valid:"in(sqlite3|postgres)"`
	DSN     string `json:"dsn" yaml:"dsn" valid:"required"`
	Debug   bool   `json:"debug" yaml:"debug"`
}

var (
	mux        sync.Mutex
	migrations []func(db *gorm.DB) error
)

// RegisterMigrate registers a schema migration run by Migrate
func RegisterMigrate(fn func(db *gorm.DB) error) {
	mux.Lock()
	defer mux.Unlock()

	migrations = append(migrations, fn)
}

// Open opens the database described by cfg
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.Dialect, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}

	db.LogMode(cfg.Debug)
	if cfg.Dialect == "sqlite3" {
		// one connection keeps an in-memory database alive and shared
		db.DB().SetMaxOpenConns(1)
	}

	return db, nil
}

// MustOpen Open, panicking on error
func MustOpen(cfg Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		panic(err)
	}

	return db
}

// Migrate runs every registered migration
func Migrate(db *gorm.DB) error {
	mux.Lock()
	defer mux.Unlock()

	for _, fn := range migrations {
		if err := fn(db); err != nil {
			return err
		}
	}

	return nil
}
