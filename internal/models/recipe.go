package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionInfo is the optional per-serving nutrition summary attached to a
// recipe. Values arrive from the generation service as free-form strings or
// numbers, so everything except calories stays a string.
type NutritionInfo struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  string   `json:"protein,omitempty"`
	Carbs    string   `json:"carbs,omitempty"`
	Fats     string   `json:"fats,omitempty"`
}

// Value implements the driver.Valuer interface
func (n NutritionInfo) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements the sql.Scanner interface
func (n *NutritionInfo) Scan(value interface{}) error {
	if value == nil {
		*n = NutritionInfo{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, n)
}

type Recipe struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	ImageURL      string         `gorm:"size:255" json:"image_url"`
	CookTime      int            `gorm:"not null" json:"cook_time"`
	Servings      int            `gorm:"not null" json:"servings"`
	Difficulty    string         `gorm:"size:20;not null" json:"difficulty"`
	IsAIGenerated bool           `gorm:"not null;default:false" json:"is_ai_generated"`
	NutritionInfo *NutritionInfo `gorm:"type:jsonb" json:"nutrition_info,omitempty"`

	Ingredients []Ingredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Steps       []RecipeStep `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	Tags        []RecipeTag  `gorm:"foreignKey:RecipeID" json:"tags,omitempty"`
}

// BeforeCreate mints the recipe identity when the caller did not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Ingredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Quantity   string    `gorm:"size:100" json:"quantity"`
	Unit       string    `gorm:"size:100" json:"unit"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
}

func (RecipeStep) TableName() string {
	return "recipe_steps"
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Tag      string    `gorm:"size:100;not null" json:"tag"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

func (t *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
