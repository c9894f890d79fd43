package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

type FavoriteHandler struct {
	db          *gorm.DB
	authService *service.AuthService
}

func NewFavoriteHandler(db *gorm.DB, authService *service.AuthService) *FavoriteHandler {
	return &FavoriteHandler{db: db, authService: authService}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("/:recipeID", middleware.Auth(h.authService), h.AddFavorite)
		favorites.DELETE("/:recipeID", middleware.Auth(h.authService), h.RemoveFavorite)
	}
}

// ListFavorites returns the favorited recipes, most recently favorited
// first.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var favorites []model.Favorite
	err := h.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&favorites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	recipes := make([]model.Recipe, 0, len(favorites))
	for _, fav := range favorites {
		var recipe model.Recipe
		err := h.db.Preload("Images").Preload("Tags").First(&recipe, "id = ?", fav.RecipeID).Error
		if err != nil {
			// Soft-deleted recipe, skip it.
			continue
		}
		recipes = append(recipes, recipe)
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var existing model.Favorite
	if err := h.db.Where("recipe_id = ?", recipeID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	favorite := model.Favorite{RecipeID: recipeID}
	if err := h.db.Create(&favorite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to favorite recipe"})
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var favorite model.Favorite
	if err := h.db.Where("recipe_id = ?", recipeID).First(&favorite).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	if err := h.db.Delete(&favorite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}
