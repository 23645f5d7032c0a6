package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/service"
)

// GenerateHandler drives the generation workflow: ask the external service
// for a candidate, park it as a draft, and commit drafts the user keeps.
type GenerateHandler struct {
	generation *service.GenerationService
	recipes    *service.RecipeService
}

func NewGenerateHandler(generation *service.GenerationService, recipes *service.RecipeService) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		recipes:    recipes,
	}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	candidate, err := h.generation.Generate(c.Request.Context(), req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyIngredients):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMalformedResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	resp := GenerateResponse{Recipe: candidate}
	if draft, err := h.generation.SaveDraft(c.Request.Context(), userID, candidate); err == nil && draft != nil {
		resp.DraftID = draft.ID
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GenerateHandler) GetDraft(c *gin.Context) {
	draft, err := h.generation.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *GenerateHandler) DeleteDraft(c *gin.Context) {
	if err := h.generation.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft deleted"})
}

// SaveDraft commits a cached draft as a persisted recipe owned by the
// current user, then removes the draft.
func (h *GenerateHandler) SaveDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	draftID := c.Param("id")
	draft, err := h.generation.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get draft"})
		return
	}

	recipeID, err := h.recipes.Commit(c.Request.Context(), &draft.Candidate, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	// Best effort; an expired draft is gone either way.
	_ = h.generation.DeleteDraft(c.Request.Context(), draftID)

	c.JSON(http.StatusCreated, CommitResponse{ID: recipeID.String()})
}
