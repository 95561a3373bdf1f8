package database

import (
	"fmt"

	"github.com/sustainaByte/orghub/internal/models"
)

// Migrate creates or updates the schema for every domain model.
func (db *DB) Migrate() error {
	err := db.DB.AutoMigrate(
		&models.Organization{},
		&models.Role{},
		&models.User{},
		&models.Department{},
		&models.Project{},
		&models.Position{},
		&models.Post{},
		&models.Event{},
		&models.Statistics{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
