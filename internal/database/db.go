package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crm/internal/config"
	"crm/internal/model"
)

// InMemoryPath keeps a sqlite database inside the process.
const InMemoryPath = ":memory:"

// NewConnection opens the configured database, migrates the CRM tables and returns
// the handle. The caller owns the handle and must Close it on shutdown.
func NewConnection(cfg config.DatabaseCfg, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite && cfg.Path == InMemoryPath {
		// Every new connection to ":memory:" is a fresh empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseCfg) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		if cfg.Path == InMemoryPath {
			return sqlite.Open(InMemoryPath), nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		return sqlite.Open(cfg.Path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the customers and activities tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Customer{}, &model.Activity{}); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return backfillNameSearch(db)
}

// backfillNameSearch fills the folded name for rows written before the column existed.
func backfillNameSearch(db *gorm.DB) error {
	var rows []struct {
		ID          string
		CompanyName string
	}
	err := db.Model(&model.Customer{}).
		Select("id", "company_name").
		Where("company_name_search = ?", "").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load customers for name backfill: %w", err)
	}

	for _, row := range rows {
		err := db.Model(&model.Customer{}).
			Where("id = ?", row.ID).
			UpdateColumn("company_name_search", model.FoldSearch(row.CompanyName)).Error
		if err != nil {
			return fmt.Errorf("failed to backfill customer %s: %w", row.ID, err)
		}
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
