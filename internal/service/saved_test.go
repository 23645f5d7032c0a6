package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/models"
)

func TestToggleSavedInvolution(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	saved := NewSavedService(db)
	owner := createTestUser(t, db, "mia@example.com")
	user := createTestUser(t, db, "noah@example.com")

	recipeID, err := recipes.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	state, err := saved.ToggleSaved(context.Background(), user.ID, recipeID, false)
	require.NoError(t, err)
	assert.True(t, state)

	agg, err := recipes.Fetch(context.Background(), recipeID, &user.ID)
	require.NoError(t, err)
	assert.True(t, agg.IsSaved)

	state, err = saved.ToggleSaved(context.Background(), user.ID, recipeID, true)
	require.NoError(t, err)
	assert.False(t, state)

	agg, err = recipes.Fetch(context.Background(), recipeID, &user.ID)
	require.NoError(t, err)
	assert.False(t, agg.IsSaved)
}

func TestToggleSavedDuplicateInsertIsBenign(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	saved := NewSavedService(db)
	owner := createTestUser(t, db, "olga@example.com")
	user := createTestUser(t, db, "pete@example.com")

	recipeID, err := recipes.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	// Two toggles that both observed "unsaved", as in a double-click.
	for i := 0; i < 2; i++ {
		state, err := saved.ToggleSaved(context.Background(), user.ID, recipeID, false)
		require.NoError(t, err)
		assert.True(t, state)
	}

	var count int64
	require.NoError(t, db.Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestToggleSavedRequiresUser(t *testing.T) {
	db := setupTestDB(t)
	saved := NewSavedService(db)

	_, err := saved.ToggleSaved(context.Background(), uuid.Nil, uuid.New(), false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestToggleSavedUnsaveIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	saved := NewSavedService(db)
	owner := createTestUser(t, db, "quinn@example.com")
	user := createTestUser(t, db, "rosa@example.com")

	recipeID, err := recipes.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	// Unsave with nothing saved: no error, state is unsaved.
	state, err := saved.ToggleSaved(context.Background(), user.ID, recipeID, true)
	require.NoError(t, err)
	assert.False(t, state)
}
