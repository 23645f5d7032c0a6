package api

import "github.com/pantrychef/backend/internal/types"

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly minted session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// GenerateRequest carries the free-text ingredient list.
type GenerateRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

// GenerateResponse returns the candidate and, when draft caching is on, the
// draft id it was parked under.
type GenerateResponse struct {
	Recipe  *types.RecipeCandidate `json:"recipe"`
	DraftID string                 `json:"draft_id,omitempty"`
}

// CommitResponse returns the identity of a newly persisted recipe.
type CommitResponse struct {
	ID string `json:"id"`
}

// ToggleSavedResponse returns the saved state after a toggle.
type ToggleSavedResponse struct {
	Saved bool `json:"saved"`
}
