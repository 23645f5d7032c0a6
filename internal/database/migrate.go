package database

import (
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/models"
)

// Migrate brings the schema up to date. The same model set drives both the
// sqlite test path and the postgres runtime path; the composite unique index
// on saved_recipes comes from the model tags.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.RecipeStep{},
		&models.RecipeTag{},
		&models.SavedRecipe{},
	)
}
