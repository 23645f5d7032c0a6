package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/testhelpers"
	"github.com/pantrychef/backend/internal/types"
)

// Exercises the full commit/fetch/save path against real PostgreSQL,
// including the jsonb nutrition column the sqlite unit tests cannot cover.
func TestRecipeLifecycleOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	recipes := service.NewRecipeService(db)
	saved := service.NewSavedService(db)
	profiles := service.NewProfileService(db)

	author := models.User{Email: "author@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, profiles.Upsert(ctx, author.ID, "Author"))

	viewer := models.User{Email: "viewer@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&viewer).Error)

	calories := 450.0
	candidate := &types.RecipeCandidate{
		Title:       "Lentil Curry",
		Description: "Weeknight curry",
		Ingredients: []types.CandidateIngredient{
			{Name: "lentils", Quantity: "1", Unit: "cup"},
			{Name: "coconut milk", Quantity: "400", Unit: "ml"},
		},
		Steps:      []string{"simmer lentils", "add coconut milk"},
		CookTime:   35,
		Servings:   4,
		Difficulty: types.DifficultyEasy,
		Tags:       []string{"vegan"},
		NutritionInfo: &models.NutritionInfo{
			Calories: &calories,
			Protein:  "18g",
			Carbs:    "52g",
			Fats:     "14g",
		},
	}

	recipeID, err := recipes.Commit(ctx, candidate, author.ID)
	require.NoError(t, err)

	agg, err := recipes.Fetch(ctx, recipeID, &viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lentil Curry", agg.Title)
	assert.Equal(t, "Author", agg.AuthorName)
	assert.False(t, agg.IsSaved)
	require.NotNil(t, agg.NutritionInfo)
	require.NotNil(t, agg.NutritionInfo.Calories)
	assert.Equal(t, 450.0, *agg.NutritionInfo.Calories)
	require.Len(t, agg.Steps, 2)
	assert.Equal(t, 1, agg.Steps[0].StepNumber)

	nowSaved, err := saved.ToggleSaved(ctx, viewer.ID, recipeID, false)
	require.NoError(t, err)
	assert.True(t, nowSaved)

	agg, err = recipes.Fetch(ctx, recipeID, &viewer.ID)
	require.NoError(t, err)
	assert.True(t, agg.IsSaved)

	listed, err := recipes.ListSaved(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, recipeID, listed[0].ID)
}

// The composite unique index on saved_recipes must absorb concurrent
// duplicate inserts without surfacing an error.
func TestConcurrentSaveTogglesOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	recipes := service.NewRecipeService(db)
	saved := service.NewSavedService(db)

	author := models.User{Email: "author@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)

	recipeID, err := recipes.Commit(ctx, &types.RecipeCandidate{
		Title:       "Toast",
		Ingredients: []types.CandidateIngredient{{Name: "bread"}},
		Steps:       []string{"toast it"},
		CookTime:    5,
		Servings:    1,
		Difficulty:  types.DifficultyEasy,
		Tags:        []string{},
	}, author.ID)
	require.NoError(t, err)

	const racers = 8
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		go func() {
			_, err := saved.ToggleSaved(ctx, author.ID, recipeID, false)
			errs <- err
		}()
	}
	for i := 0; i < racers; i++ {
		require.NoError(t, <-errs)
	}

	var count int64
	require.NoError(t, db.Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", author.ID, recipeID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
