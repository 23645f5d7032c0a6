package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/models"
)

// Difficulty levels a candidate may carry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// CandidateIngredient is one ingredient line of an unpersisted recipe.
// Quantity and unit are free text ("1/2", "cups").
type CandidateIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// RecipeCandidate is an externally generated or authored recipe awaiting
// validation and commit. Ingredient and step order is authoring order.
type RecipeCandidate struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Ingredients   []CandidateIngredient `json:"ingredients"`
	Steps         []string              `json:"steps"`
	CookTime      int                   `json:"cookTime"`
	Servings      int                   `json:"servings"`
	Difficulty    string                `json:"difficulty"`
	Tags          []string              `json:"tags"`
	NutritionInfo *models.NutritionInfo `json:"nutritionInfo,omitempty"`
}

// RecipeDraft is a generated candidate parked in the cache until the user
// decides to keep it.
type RecipeDraft struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UserID    string          `json:"user_id"`
	Candidate RecipeCandidate `json:"candidate"`
}

// AggregateIngredient is an ingredient as served to viewers.
type AggregateIngredient struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	OrderIndex int    `json:"order_index"`
}

// AggregateStep is a step as served to viewers, ordered by StepNumber.
type AggregateStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// RecipeAggregate is a recipe plus its ordered children and the
// viewer-specific derived fields. It is materialized fresh on every fetch.
type RecipeAggregate struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	ImageURL      string                `json:"image_url"`
	CookTime      int                   `json:"cook_time"`
	Servings      int                   `json:"servings"`
	Difficulty    string                `json:"difficulty"`
	IsAIGenerated bool                  `json:"is_ai_generated"`
	NutritionInfo *models.NutritionInfo `json:"nutrition_info,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	Ingredients   []AggregateIngredient `json:"ingredients"`
	Steps         []AggregateStep       `json:"steps"`
	Tags          []string              `json:"tags"`
	AuthorName    string                `json:"author_name"`
	IsSaved       bool                  `json:"is_saved"`
}

// RecipeSummary is the browse/listing projection: core fields plus tags,
// no ingredients or steps.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CookTime    int       `json:"cook_time"`
	Servings    int       `json:"servings"`
	Difficulty  string    `json:"difficulty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}
