package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"felmel/internal/models"
)

// ErrNoExports is returned by Last when nothing has been exported yet.
var ErrNoExports = errors.New("no exports recorded")

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string, debug bool) (*Database, error) {
	var db *gorm.DB
	var err error

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development and the default in-memory history
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), cfg)
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.ExportRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate export history: %w", err)
	}

	return &Database{DB: db}, nil
}

// RecordExport stores one produced document.
func (d *Database) RecordExport(ctx context.Context, record *models.ExportRecord) error {
	if err := d.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// LastExport returns the most recent export.
func (d *Database) LastExport(ctx context.Context) (*models.ExportRecord, error) {
	var record models.ExportRecord
	err := d.DB.WithContext(ctx).Order("created_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoExports
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last export: %w", err)
	}
	return &record, nil
}

// ListExports returns up to limit exports, newest first.
func (d *Database) ListExports(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.ExportRecord
	if err := d.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return records, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
