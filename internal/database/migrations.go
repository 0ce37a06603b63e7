package database

import (
	"fmt"

	"gorm.io/gorm"

	"imovelhub/server/internal/models"
)

// MigrateSchema creates or updates every table
func MigrateSchema(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Agent{},
		&models.Property{},
		&models.Development{},
		&models.Unit{},
		&models.NotifierConfig{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Unit lists are read per development in insertion order
	if !db.Migrator().HasIndex(&models.Unit{}, "idx_units_development_order") {
		if err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_units_development_order
			ON units(development_id, id);
		`).Error; err != nil {
			return fmt.Errorf("failed to create unit order index: %w", err)
		}
	}

	return nil
}

func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}
