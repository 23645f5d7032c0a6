package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

// RecipeService owns the recipe aggregate: committing validated candidates,
// reconstructing aggregates for viewers and serving listings.
type RecipeService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db:       db,
		profiles: NewProfileService(db),
	}
}

// Commit persists a candidate as a recipe aggregate owned by ownerID and
// returns the minted recipe id. The four write stages (recipe, ingredients,
// steps, tags) run inside one transaction, so a failure at any stage leaves
// no orphaned recipe behind.
func (s *RecipeService) Commit(ctx context.Context, candidate *types.RecipeCandidate, ownerID uuid.UUID) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	if err := ValidateCandidate(candidate); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}

	recipe := models.Recipe{
		ID:            uuid.New(),
		UserID:        ownerID,
		Title:         candidate.Title,
		Description:   candidate.Description,
		CookTime:      candidate.CookTime,
		Servings:      candidate.Servings,
		Difficulty:    candidate.Difficulty,
		IsAIGenerated: true,
		NutritionInfo: candidate.NutritionInfo,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		ingredients := make([]models.Ingredient, len(candidate.Ingredients))
		for i, ing := range candidate.Ingredients {
			ingredients[i] = models.Ingredient{
				RecipeID:   recipe.ID,
				Name:       ing.Name,
				Quantity:   ing.Quantity,
				Unit:       ing.Unit,
				OrderIndex: i,
			}
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return fmt.Errorf("failed to create ingredients: %w", err)
		}

		steps := make([]models.RecipeStep, len(candidate.Steps))
		for i, instruction := range candidate.Steps {
			steps[i] = models.RecipeStep{
				RecipeID:    recipe.ID,
				StepNumber:  i + 1,
				Instruction: instruction,
			}
		}
		if err := tx.Create(&steps).Error; err != nil {
			return fmt.Errorf("failed to create steps: %w", err)
		}

		for _, tag := range candidate.Tags {
			row := models.RecipeTag{RecipeID: recipe.ID, Tag: tag}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.WithError(err).WithField("title", candidate.Title).Error("recipe commit rolled back")
		return uuid.Nil, err
	}

	return recipe.ID, nil
}

// Fetch reconstructs the full aggregate for a recipe. When viewerID is
// non-nil the saved flag reflects that viewer's saved relation; otherwise it
// is false. A missing author profile yields an empty author name.
func (s *RecipeService) Fetch(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (*types.RecipeAggregate, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Steps").
		Preload("Tags").
		First(&recipe, "id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	authorName, err := s.profiles.GetDisplayName(ctx, recipe.UserID)
	if err != nil {
		return nil, err
	}

	saved := false
	if viewerID != nil && *viewerID != uuid.Nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
			Where("user_id = ? AND recipe_id = ?", *viewerID, recipeID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		saved = count > 0
	}

	agg := &types.RecipeAggregate{
		ID:            recipe.ID,
		UserID:        recipe.UserID,
		Title:         recipe.Title,
		Description:   recipe.Description,
		ImageURL:      recipe.ImageURL,
		CookTime:      recipe.CookTime,
		Servings:      recipe.Servings,
		Difficulty:    recipe.Difficulty,
		IsAIGenerated: recipe.IsAIGenerated,
		NutritionInfo: recipe.NutritionInfo,
		CreatedAt:     recipe.CreatedAt,
		Ingredients:   make([]types.AggregateIngredient, 0, len(recipe.Ingredients)),
		Steps:         make([]types.AggregateStep, 0, len(recipe.Steps)),
		Tags:          make([]string, 0, len(recipe.Tags)),
		AuthorName:    authorName,
		IsSaved:       saved,
	}

	for _, ing := range recipe.Ingredients {
		agg.Ingredients = append(agg.Ingredients, types.AggregateIngredient{
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
			OrderIndex: ing.OrderIndex,
		})
	}

	for _, step := range recipe.Steps {
		agg.Steps = append(agg.Steps, types.AggregateStep{
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		})
	}
	// Stable sort: duplicate step numbers keep their stored relative order
	// instead of crashing or reshuffling.
	sort.SliceStable(agg.Steps, func(i, j int) bool {
		return agg.Steps[i].StepNumber < agg.Steps[j].StepNumber
	})

	for _, tag := range recipe.Tags {
		agg.Tags = append(agg.Tags, tag.Tag)
	}

	return agg, nil
}

// Browse lists recipe summaries ordered by creation time descending. A
// non-empty titleFilter restricts to titles containing it, case-insensitive.
// limit <= 0 means no limit.
func (s *RecipeService) Browse(ctx context.Context, titleFilter string, limit int) ([]types.RecipeSummary, error) {
	query := s.db.WithContext(ctx).
		Preload("Tags").
		Order("created_at DESC")

	if titleFilter = strings.TrimSpace(titleFilter); titleFilter != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(titleFilter)+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return toSummaries(recipes), nil
}

// ListByOwner returns the recipes a user has created, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, userID uuid.UUID) ([]types.RecipeSummary, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return toSummaries(recipes), nil
}

// ListSaved returns the recipes a user has bookmarked, most recently saved
// first.
func (s *RecipeService) ListSaved(ctx context.Context, userID uuid.UUID) ([]types.RecipeSummary, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return toSummaries(recipes), nil
}

func toSummaries(recipes []models.Recipe) []types.RecipeSummary {
	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		tags := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, t.Tag)
		}
		summaries = append(summaries, types.RecipeSummary{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			ImageURL:    r.ImageURL,
			CookTime:    r.CookTime,
			Servings:    r.Servings,
			Difficulty:  r.Difficulty,
			Tags:        tags,
			CreatedAt:   r.CreatedAt,
		})
	}
	return summaries
}
