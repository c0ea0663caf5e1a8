// Package migrations keeps the database schema up to date.
package migrations

import (
	"fmt"

	"github.com/refpin/refpin/internal/model"
	"gorm.io/gorm"
)

// Migrate runs the schema migrations for all refpin models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.PracticeSession{},
		&model.SessionImage{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
