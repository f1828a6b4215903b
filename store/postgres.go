package store

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockdash/stockdash/config"
	"github.com/stockdash/stockdash/models"
)

// Postgres persists the current dataset so it survives restarts. It keeps
// the same replace-wholesale semantics as the memory store: Save drops every
// previous row inside one transaction.
type Postgres struct {
	db *gorm.DB
}

// OpenPostgres connects to the configured database and migrates the schema.
func OpenPostgres(cfg config.Database) (*Postgres, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&models.DatasetRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return &Postgres{db: db}, nil
}

// Save replaces the persisted dataset with the given bars.
func (p *Postgres) Save(name string, bars []models.Bar) (Dataset, error) {
	rows := make([]models.DatasetRow, len(bars))
	for i, b := range bars {
		rows[i] = models.NewDatasetRow(name, b)
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DatasetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous dataset: %w", err)
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{Name: name, Bars: copyBars(bars), UploadedAt: time.Now()}, nil
}

// Current loads the persisted dataset ordered by date.
func (p *Postgres) Current() (Dataset, error) {
	var rows []models.DatasetRow
	if err := p.db.Order("date asc").Find(&rows).Error; err != nil {
		return Dataset{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(rows) == 0 {
		return Dataset{}, ErrNoDataset
	}

	ds := Dataset{
		Name:       rows[0].Dataset,
		Bars:       make([]models.Bar, len(rows)),
		UploadedAt: rows[0].CreatedAt,
	}
	for i, r := range rows {
		ds.Bars[i] = r.Bar()
	}
	return ds, nil
}
