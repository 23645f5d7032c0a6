package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrychef/backend/internal/models"
)

// SavedService flips the saved/unsaved relation for a (user, recipe) pair.
type SavedService struct {
	db *gorm.DB
}

func NewSavedService(db *gorm.DB) *SavedService {
	return &SavedService{db: db}
}

// ToggleSaved performs the transition implied by the caller's presumed
// current state and returns the new state. Two racing saves can both reach
// the insert; the unique index on (user_id, recipe_id) plus DO NOTHING turns
// the loser into a no-op instead of a duplicate row or an error. Callers
// must treat any previously fetched aggregate's saved flag as stale.
func (s *SavedService) ToggleSaved(ctx context.Context, userID, recipeID uuid.UUID, currentlySaved bool) (bool, error) {
	if userID == uuid.Nil {
		return currentlySaved, ErrUnauthenticated
	}

	if currentlySaved {
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.SavedRecipe{}).Error
		if err != nil {
			return currentlySaved, err
		}
		return false, nil
	}

	row := models.SavedRecipe{UserID: userID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return currentlySaved, err
	}
	return true, nil
}
