package service

import "errors"

var (
	// ErrEmptyIngredients is returned when the ingredient text is empty
	// after trimming; the generation service is never called.
	ErrEmptyIngredients = errors.New("ingredients must not be empty")

	// ErrMalformedResponse is returned when the generation service answers
	// with a candidate missing required fields.
	ErrMalformedResponse = errors.New("generation service returned a malformed recipe")

	// ErrGenerationUnavailable is returned when the generation service could
	// not be reached or answered with an error.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrInvalidCandidate is returned when a candidate fails structural
	// validation before commit.
	ErrInvalidCandidate = errors.New("invalid recipe candidate")

	// ErrUnauthenticated is returned when an operation that writes on behalf
	// of a user is invoked without a user identity.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrRecipeNotFound is returned when a recipe id does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrDraftNotFound is returned when a cached draft has expired or never
	// existed.
	ErrDraftNotFound = errors.New("draft not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
