package database

import (
	"fmt"

	"slotfinder-backend/internal/config"
	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. TranslateError lets the
// store recognize unique-index violations as duplicate-location errors.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.MoveHistory{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return nil, err
	}
	return db, nil
}

// seedCategories installs the default categories into an empty table so the
// name-based inference has its fixed targets from the first request on.
func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	cats := storage.DefaultCategories()
	if err := db.Create(&cats).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
