package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kitchenbuddy/backend/internal/service"
)

type SuggestionHandler struct {
	suggestionService *service.SuggestionService
}

func NewSuggestionHandler(suggestionService *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suggestions", h.GetSuggestions)
}

// GetSuggestions ranks recipes by pantry coverage.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	minMatch, err := strconv.ParseFloat(c.DefaultQuery("min_match_percentage", "0.5"), 64)
	if err != nil || minMatch < 0 || minMatch > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_match_percentage must be between 0 and 1"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
		return
	}

	suggestions, err := h.suggestionService.Suggest(c.Request.Context(), minMatch, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
