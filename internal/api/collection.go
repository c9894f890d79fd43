package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

type CollectionHandler struct {
	db          *gorm.DB
	authService *service.AuthService
}

func NewCollectionHandler(db *gorm.DB, authService *service.AuthService) *CollectionHandler {
	return &CollectionHandler{db: db, authService: authService}
}

func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	collections := router.Group("/collections")
	{
		collections.GET("", h.ListCollections)
		collections.GET("/:id", h.GetCollection)
		collections.POST("", middleware.Auth(h.authService), h.CreateCollection)
		collections.PUT("/:id", middleware.Auth(h.authService), h.UpdateCollection)
		collections.DELETE("/:id", middleware.Auth(h.authService), h.DeleteCollection)
		collections.POST("/:id/recipes/:recipeID", middleware.Auth(h.authService), h.AddRecipe)
		collections.DELETE("/:id/recipes/:recipeID", middleware.Auth(h.authService), h.RemoveRecipe)
	}
}

func (h *CollectionHandler) ListCollections(c *gin.Context) {
	var collections []model.Collection
	err := h.db.Preload("Recipes").Order("name").Find(&collections).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	summaries := make([]gin.H, 0, len(collections))
	for _, col := range collections {
		summaries = append(summaries, gin.H{
			"id":           col.ID,
			"name":         col.Name,
			"description":  col.Description,
			"recipe_count": len(col.Recipes),
			"created_at":   col.CreatedAt,
			"updated_at":   col.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"collections": summaries})
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	var collection model.Collection
	err = h.db.Preload("Recipes.Images").First(&collection, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var collection model.Collection
	if err := c.ShouldBindJSON(&collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if collection.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.db.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, collection)
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	var collection model.Collection
	if err := h.db.First(&collection, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		collection.Name = *req.Name
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}

	if err := h.db.Save(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	var collection model.Collection
	if err := h.db.First(&collection, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	if err := h.db.Select("Recipes").Delete(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CollectionHandler) AddRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var collection model.Collection
	if err := h.db.First(&collection, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var count int64
	h.db.Table("recipe_collections").
		Where("collection_id = ? AND recipe_id = ?", id, recipeID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Recipe already in collection"})
		return
	}

	if err := h.db.Model(&collection).Association("Recipes").Append(&recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add recipe to collection"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added to collection"})
}

func (h *CollectionHandler) RemoveRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var count int64
	h.db.Table("recipe_collections").
		Where("collection_id = ? AND recipe_id = ?", id, recipeID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not in collection"})
		return
	}

	var collection model.Collection
	if err := h.db.First(&collection, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	recipe := model.Recipe{ID: recipeID}
	if err := h.db.Model(&collection).Association("Recipes").Delete(&recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove recipe from collection"})
		return
	}

	c.Status(http.StatusNoContent)
}
