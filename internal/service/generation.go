package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/internal/types"
)

const draftTTL = 24 * time.Hour

// GenerationService invokes the external recipe generation service and
// validates the shape of what comes back. It never touches the relational
// store; drafts are parked in Redis until the user commits them.
type GenerationService struct {
	apiURL string
	apiKey string
	client *http.Client
	redis  *redis.Client
}

// NewGenerationService creates a GenerationService. redisClient may be nil,
// in which case draft caching is disabled.
func NewGenerationService(apiURL, apiKey string, timeout time.Duration, redisClient *redis.Client) *GenerationService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GenerationService{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		redis:  redisClient,
	}
}

type generateRequest struct {
	Ingredients string `json:"ingredients"`
}

type generateResponse struct {
	Recipe *types.RecipeCandidate `json:"recipe"`
	Error  string                 `json:"error"`
}

// Generate asks the external service for a recipe built from the given
// ingredient text. The response is structurally validated; a candidate is
// accepted whole or not at all.
func (s *GenerationService) Generate(ctx context.Context, ingredientText string) (*types.RecipeCandidate, error) {
	ingredientText = strings.TrimSpace(ingredientText)
	if ingredientText == "" {
		return nil, ErrEmptyIngredients
	}

	body, err := json.Marshal(generateRequest{Ingredients: ingredientText})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("generation request failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrGenerationUnavailable)
	}

	var envelope generateResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrGenerationUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrGenerationUnavailable, envelope.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrGenerationUnavailable, resp.StatusCode)
	}

	if envelope.Recipe == nil {
		return nil, fmt.Errorf("%w: missing recipe", ErrMalformedResponse)
	}
	if err := ValidateCandidate(envelope.Recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return envelope.Recipe, nil
}

// ValidateCandidate checks that a candidate carries every required field.
// Tags may be empty; nutrition is optional.
func ValidateCandidate(c *types.RecipeCandidate) error {
	if c == nil {
		return fmt.Errorf("candidate is nil")
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(c.Ingredients) == 0 {
		return fmt.Errorf("missing ingredients")
	}
	for i, ing := range c.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredient %d missing name", i)
		}
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("missing steps")
	}
	if c.CookTime <= 0 {
		return fmt.Errorf("invalid cook time")
	}
	if c.Servings <= 0 {
		return fmt.Errorf("invalid servings")
	}
	switch c.Difficulty {
	case types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard:
	default:
		return fmt.Errorf("invalid difficulty %q", c.Difficulty)
	}
	if c.Tags == nil {
		return fmt.Errorf("missing tags")
	}
	return nil
}

// SaveDraft caches a generated candidate so the user can commit it later.
func (s *GenerationService) SaveDraft(ctx context.Context, userID uuid.UUID, candidate *types.RecipeCandidate) (*types.RecipeDraft, error) {
	if s.redis == nil {
		return nil, nil
	}

	draft := &types.RecipeDraft{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UserID:    userID.String(),
		Candidate: *candidate,
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := draftKey(draft.ID)
	if err := s.redis.Set(ctx, key, data, draftTTL).Err(); err != nil {
		// Caching is best effort; the candidate was still returned to the caller.
		log.WithError(err).Warn("failed to cache recipe draft")
		return nil, nil
	}

	return draft, nil
}

// GetDraft retrieves a cached draft.
func (s *GenerationService) GetDraft(ctx context.Context, id string) (*types.RecipeDraft, error) {
	if s.redis == nil {
		return nil, ErrDraftNotFound
	}

	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft types.RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a cached draft.
func (s *GenerationService) DeleteDraft(ctx context.Context, id string) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}
