package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/types"
)

// RecipeHandler serves the persisted side of the workflow: commit, browse,
// viewer-aware detail, saved toggling and the dashboard listings.
type RecipeHandler struct {
	recipes *service.RecipeService
	saved   *service.SavedService
}

func NewRecipeHandler(recipes *service.RecipeService, saved *service.SavedService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		saved:   saved,
	}
}

// ListRecipes serves browse: recency-ordered summaries, optionally filtered
// by a case-insensitive title substring (q) and capped (limit).
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	summaries, err := h.recipes.Browse(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": summaries})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var viewerID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		viewerID = &id
	}

	aggregate, err := h.recipes.Fetch(c.Request.Context(), recipeID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, aggregate)
}

// CreateRecipe commits a candidate supplied directly in the request body.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var candidate types.RecipeCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipeID, err := h.recipes.Commit(c.Request.Context(), &candidate, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidCandidate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		}
		return
	}

	c.JSON(http.StatusCreated, CommitResponse{ID: recipeID.String()})
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	h.toggleSaved(c, false)
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	h.toggleSaved(c, true)
}

func (h *RecipeHandler) toggleSaved(c *gin.Context, currentlySaved bool) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	newState, err := h.saved.ToggleSaved(c.Request.Context(), userID, recipeID, currentlySaved)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update saved status"})
		return
	}

	c.JSON(http.StatusOK, ToggleSavedResponse{Saved: newState})
}

// MyRecipes lists the current user's own recipes.
func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summaries, err := h.recipes.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": summaries})
}

// SavedRecipes lists the recipes the current user has bookmarked.
func (h *RecipeHandler) SavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summaries, err := h.recipes.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch saved recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": summaries})
}
