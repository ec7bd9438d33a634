package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/audit"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
)

// Database wraps the gorm connection and its pool.
type Database struct {
	DB *gorm.DB
}

// NewDatabase connects with SQL logging off.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithGormLogger(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithGormLogger connects using the given GORM logger, typically
// the zap bridge from the logger package. The pool is sized from config and
// the connection is verified with a ping before returning.
func NewDatabaseWithGormLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := &Database{DB: db}
	pool, err := d.sqlDB()
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

func (d *Database) sqlDB() (*sql.DB, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	return pool, nil
}

func (d *Database) Close() error {
	pool, err := d.sqlDB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Ping verifies the connection is alive.
func (d *Database) Ping() error {
	pool, err := d.sqlDB()
	if err != nil {
		return err
	}
	return pool.Ping()
}

// Stats snapshots the connection pool, for the readiness endpoint.
func (d *Database) Stats() (ConnectionStats, error) {
	pool, err := d.sqlDB()
	if err != nil {
		return ConnectionStats{}, err
	}
	s := pool.Stats()
	return ConnectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
		MaxIdleClosed:      s.MaxIdleClosed,
		MaxIdleTimeClosed:  s.MaxIdleTimeClosed,
		MaxLifetimeClosed:  s.MaxLifetimeClosed,
	}, nil
}

// ConnectionStats mirrors sql.DBStats.
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxIdleTimeClosed  int64
	MaxLifetimeClosed  int64
}

// Transaction runs fn inside a database transaction.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// Migrate creates or updates the schema for every domain model.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&catalog.Branch{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Discount{},
		&identity.User{},
		&inventory.BranchStock{},
		&inventory.StockEntry{},
		&sales.Sale{},
		&sales.SaleItem{},
		&audit.Log{},
	)
}
