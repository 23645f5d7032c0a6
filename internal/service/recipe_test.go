package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

func TestCommitAndFetchRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "alice@example.com")
	createTestProfile(t, db, owner, "Alice")

	candidate := testCandidate()
	recipeID, err := svc.Commit(context.Background(), candidate, owner.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, recipeID)

	agg, err := svc.Fetch(context.Background(), recipeID, nil)
	require.NoError(t, err)

	assert.Equal(t, candidate.Title, agg.Title)
	assert.Equal(t, candidate.Description, agg.Description)
	assert.Equal(t, candidate.CookTime, agg.CookTime)
	assert.Equal(t, candidate.Servings, agg.Servings)
	assert.Equal(t, candidate.Difficulty, agg.Difficulty)
	assert.True(t, agg.IsAIGenerated)
	assert.Equal(t, "Alice", agg.AuthorName)
	assert.False(t, agg.IsSaved)

	require.Len(t, agg.Ingredients, len(candidate.Ingredients))
	for i, ing := range agg.Ingredients {
		assert.Equal(t, candidate.Ingredients[i].Name, ing.Name)
		assert.Equal(t, candidate.Ingredients[i].Quantity, ing.Quantity)
		assert.Equal(t, candidate.Ingredients[i].Unit, ing.Unit)
		assert.Equal(t, i, ing.OrderIndex)
	}

	require.Len(t, agg.Steps, len(candidate.Steps))
	for i, step := range agg.Steps {
		assert.Equal(t, i+1, step.StepNumber)
		assert.Equal(t, candidate.Steps[i], step.Instruction)
	}

	assert.ElementsMatch(t, candidate.Tags, agg.Tags)
}

func TestCommitRequiresOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.Commit(context.Background(), testCandidate(), uuid.Nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommitRejectsInvalidCandidate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "bob@example.com")

	candidate := testCandidate()
	candidate.Steps = nil

	_, err := svc.Commit(context.Background(), candidate, owner.ID)
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommitLeavesNoOrphanOnStageFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "carol@example.com")

	// Make the step stage fail after the recipe and ingredient stages
	// succeeded.
	require.NoError(t, db.Migrator().DropTable(&models.RecipeStep{}))

	_, err := svc.Commit(context.Background(), testCandidate(), owner.ID)
	require.Error(t, err)

	var recipes, ingredients int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	assert.Zero(t, recipes, "failed commit must not leave a recipe row behind")
	assert.Zero(t, ingredients)
}

func TestFetchNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.Fetch(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestFetchToleratesMissingProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "dave@example.com")

	recipeID, err := svc.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	agg, err := svc.Fetch(context.Background(), recipeID, nil)
	require.NoError(t, err)
	assert.Empty(t, agg.AuthorName)
}

func TestFetchSortsStepsByNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "erin@example.com")

	recipe := models.Recipe{
		UserID:     owner.ID,
		Title:      "Out of Order",
		CookTime:   10,
		Servings:   1,
		Difficulty: types.DifficultyEasy,
	}
	require.NoError(t, db.Create(&recipe).Error)

	// Inserted as [2, 1, 3]; retrieval must order by step number.
	for _, s := range []models.RecipeStep{
		{RecipeID: recipe.ID, StepNumber: 2, Instruction: "second"},
		{RecipeID: recipe.ID, StepNumber: 1, Instruction: "first"},
		{RecipeID: recipe.ID, StepNumber: 3, Instruction: "third"},
	} {
		step := s
		require.NoError(t, db.Create(&step).Error)
	}

	agg, err := svc.Fetch(context.Background(), recipe.ID, nil)
	require.NoError(t, err)
	require.Len(t, agg.Steps, 3)
	assert.Equal(t, "first", agg.Steps[0].Instruction)
	assert.Equal(t, "second", agg.Steps[1].Instruction)
	assert.Equal(t, "third", agg.Steps[2].Instruction)
}

func TestFetchToleratesDuplicateStepNumbers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "frank@example.com")

	recipe := models.Recipe{
		UserID:     owner.ID,
		Title:      "Duplicate Steps",
		CookTime:   10,
		Servings:   1,
		Difficulty: types.DifficultyMedium,
	}
	require.NoError(t, db.Create(&recipe).Error)

	for _, s := range []models.RecipeStep{
		{RecipeID: recipe.ID, StepNumber: 1, Instruction: "one-a"},
		{RecipeID: recipe.ID, StepNumber: 1, Instruction: "one-b"},
		{RecipeID: recipe.ID, StepNumber: 3, Instruction: "three"},
	} {
		step := s
		require.NoError(t, db.Create(&step).Error)
	}

	agg, err := svc.Fetch(context.Background(), recipe.ID, nil)
	require.NoError(t, err)
	require.Len(t, agg.Steps, 3)
	// Stable sort keeps the duplicates in stored order.
	assert.Equal(t, "one-a", agg.Steps[0].Instruction)
	assert.Equal(t, "one-b", agg.Steps[1].Instruction)
	assert.Equal(t, "three", agg.Steps[2].Instruction)
}

func TestFetchReportsViewerSavedFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	saved := NewSavedService(db)
	owner := createTestUser(t, db, "gina@example.com")
	viewer := createTestUser(t, db, "hank@example.com")

	recipeID, err := svc.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	_, err = saved.ToggleSaved(context.Background(), viewer.ID, recipeID, false)
	require.NoError(t, err)

	agg, err := svc.Fetch(context.Background(), recipeID, &viewer.ID)
	require.NoError(t, err)
	assert.True(t, agg.IsSaved)

	agg, err = svc.Fetch(context.Background(), recipeID, &owner.ID)
	require.NoError(t, err)
	assert.False(t, agg.IsSaved)

	agg, err = svc.Fetch(context.Background(), recipeID, nil)
	require.NoError(t, err)
	assert.False(t, agg.IsSaved)
}

func TestBrowseFilterAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "ivan@example.com")

	base := time.Now().Add(-time.Hour)
	titles := []string{"Garlic Rice", "Chicken Soup", "garlic Bread"}
	for i, title := range titles {
		recipe := models.Recipe{
			UserID:     owner.ID,
			Title:      title,
			CookTime:   15,
			Servings:   2,
			Difficulty: types.DifficultyEasy,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Tags:       []models.RecipeTag{{Tag: "test"}},
		}
		require.NoError(t, db.Create(&recipe).Error)
	}

	// Case-insensitive substring, newest first.
	got, err := svc.Browse(context.Background(), "garlic", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "garlic Bread", got[0].Title)
	assert.Equal(t, "Garlic Rice", got[1].Title)

	got, err = svc.Browse(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "garlic Bread", got[0].Title)
	assert.Equal(t, "Chicken Soup", got[1].Title)
	assert.Equal(t, "Garlic Rice", got[2].Title)

	got, err = svc.Browse(context.Background(), "pizza", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Browse(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBrowseIncludesTags(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "judy@example.com")

	recipeID, err := svc.Commit(context.Background(), testCandidate(), owner.ID)
	require.NoError(t, err)

	got, err := svc.Browse(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, recipeID, got[0].ID)
	assert.ElementsMatch(t, []string{"chicken", "quick"}, got[0].Tags)
}

func TestListByOwnerAndListSaved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	saved := NewSavedService(db)
	author := createTestUser(t, db, "kate@example.com")
	reader := createTestUser(t, db, "liam@example.com")

	recipeID, err := svc.Commit(context.Background(), testCandidate(), author.ID)
	require.NoError(t, err)

	mine, err := svc.ListByOwner(context.Background(), author.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, recipeID, mine[0].ID)

	mine, err = svc.ListByOwner(context.Background(), reader.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = saved.ToggleSaved(context.Background(), reader.ID, recipeID, false)
	require.NoError(t, err)

	bookmarks, err := svc.ListSaved(context.Background(), reader.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, recipeID, bookmarks[0].ID)

	bookmarks, err = svc.ListSaved(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}
