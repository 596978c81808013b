package database

import (
	"collabhub-be/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every CollabHub table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
