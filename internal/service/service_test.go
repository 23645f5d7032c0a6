package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testCandidate() *types.RecipeCandidate {
	return &types.RecipeCandidate{
		Title:       "Garlic Butter Chicken",
		Description: "Pan-seared chicken in a garlic butter sauce",
		Ingredients: []types.CandidateIngredient{
			{Name: "chicken breast", Quantity: "2", Unit: "pieces"},
			{Name: "butter", Quantity: "3", Unit: "tbsp"},
			{Name: "garlic", Quantity: "4", Unit: "cloves"},
		},
		Steps: []string{
			"Season the chicken on both sides",
			"Sear in butter until golden",
			"Add garlic and baste for two minutes",
		},
		CookTime:   25,
		Servings:   2,
		Difficulty: types.DifficultyEasy,
		Tags:       []string{"chicken", "quick"},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestProfile(t *testing.T, db *gorm.DB, user *models.User, displayName string) {
	require.NoError(t, db.Create(&models.Profile{ID: user.ID, DisplayName: displayName}).Error)
}
