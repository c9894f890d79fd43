package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kitchenbuddy/backend/internal/importer"
	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/service"
)

// DraftStore abstracts the Redis draft store so tests can substitute an
// in-memory implementation.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *importer.RecipeDraft) (*service.ImportDraft, error)
	GetDraft(ctx context.Context, id string) (*service.ImportDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

type ImportHandler struct {
	importer    *importer.Importer
	drafts      DraftStore
	authService *service.AuthService
}

func NewImportHandler(imp *importer.Importer, drafts DraftStore, authService *service.AuthService) *ImportHandler {
	return &ImportHandler{
		importer:    imp,
		drafts:      drafts,
		authService: authService,
	}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/recipes/import", middleware.Auth(h.authService))
	{
		imports.POST("", h.ImportRecipe)
		imports.GET("/drafts/:id", h.GetDraft)
		imports.DELETE("/drafts/:id", h.DeleteDraft)
	}
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportRecipe fetches and extracts a recipe from an external URL. Nothing
// is persisted; the draft is held in the draft store until confirmed.
func (h *ImportHandler) ImportRecipe(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft store not configured"})
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.importer.ImportFromURL(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Fetch and parse failures get one generic message so the response
		// does not leak details about internal network probing.
		log.Printf("[ImportHandler] import failed for %s: %v", req.URL, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to import recipe from URL"})
		return
	}

	stored, err := h.drafts.SaveDraft(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": stored})
}

func (h *ImportHandler) GetDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft store not configured"})
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *ImportHandler) DeleteDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft store not configured"})
		return
	}

	if err := h.drafts.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}

	c.Status(http.StatusNoContent)
}
