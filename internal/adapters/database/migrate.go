package database

import (
	"fmt"

	"gorm.io/gorm"

	"match-service/internal/models"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	// Members first: likes, messages and photos all reference them.
	modelsToMigrate := []interface{}{
		&models.Member{},
		&models.Photo{},
		&models.MemberLike{},
		&models.Message{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
