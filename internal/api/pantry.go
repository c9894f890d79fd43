package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

type PantryHandler struct {
	db          *gorm.DB
	authService *service.AuthService
}

func NewPantryHandler(db *gorm.DB, authService *service.AuthService) *PantryHandler {
	return &PantryHandler{db: db, authService: authService}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.ListItems)
		pantry.GET("/:id", h.GetItem)
		pantry.POST("", middleware.Auth(h.authService), h.CreateItem)
		pantry.PUT("/:id", middleware.Auth(h.authService), h.UpdateItem)
		pantry.DELETE("/:id", middleware.Auth(h.authService), h.DeleteItem)
		pantry.POST("/add-ingredient/:ingredientID", middleware.Auth(h.authService), h.AddIngredient)
	}
}

func (h *PantryHandler) ListItems(c *gin.Context) {
	query := h.db.Model(&model.PantryItem{}).Preload("Ingredient")

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("JOIN ingredients ON ingredients.id = pantry_items.ingredient_id").
			Where("LOWER(ingredients.name) LIKE ?", like)
	}
	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN ingredients ON ingredients.id = pantry_items.ingredient_id").
			Where("ingredients.category = ?", category)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var items []model.PantryItem
	if err := query.Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pantry items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PantryHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pantry item id"})
		return
	}

	var item model.PantryItem
	if err := h.db.Preload("Ingredient").First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pantry item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

type pantryItemRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
	Quantity     *string   `json:"quantity"`
	Unit         string    `json:"unit"`
	Notes        string    `json:"notes"`
	ExpiresAt    *string   `json:"expires_at"`
}

func (h *PantryHandler) CreateItem(c *gin.Context) {
	var req pantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ingredient model.Ingredient
	if err := h.db.First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient not found"})
		return
	}

	item := model.PantryItem{
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Notes:        req.Notes,
	}
	if item.Unit == "" {
		item.Unit = ingredient.DefaultUnit
	}
	if req.ExpiresAt != nil {
		expires, err := time.Parse(dateLayout, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expires_at, expected YYYY-MM-DD"})
			return
		}
		item.ExpiresAt = &expires
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pantry item"})
		return
	}

	item.Ingredient = ingredient
	c.JSON(http.StatusCreated, item)
}

func (h *PantryHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pantry item id"})
		return
	}

	var item model.PantryItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pantry item not found"})
		return
	}

	var req struct {
		Quantity  *string `json:"quantity"`
		Unit      *string `json:"unit"`
		Notes     *string `json:"notes"`
		ExpiresAt *string `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity != nil {
		item.Quantity = req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.ExpiresAt != nil {
		expires, err := time.Parse(dateLayout, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expires_at, expected YYYY-MM-DD"})
			return
		}
		item.ExpiresAt = &expires
	}

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pantry item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *PantryHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pantry item id"})
		return
	}

	var item model.PantryItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pantry item not found"})
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pantry item"})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddIngredient quick-adds an ingredient to the pantry; if it is already
// there the existing row is returned untouched.
func (h *PantryHandler) AddIngredient(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("ingredientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var ingredient model.Ingredient
	if err := h.db.First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient not found"})
		return
	}

	var existing model.PantryItem
	if err := h.db.Where("ingredient_id = ?", ingredientID).First(&existing).Error; err == nil {
		existing.Ingredient = ingredient
		c.JSON(http.StatusOK, existing)
		return
	}

	item := model.PantryItem{
		IngredientID: ingredientID,
		Unit:         ingredient.DefaultUnit,
	}
	if qty := c.Query("quantity"); qty != "" {
		item.Quantity = &qty
	}
	if unit := c.Query("unit"); unit != "" {
		item.Unit = unit
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add ingredient to pantry"})
		return
	}

	item.Ingredient = ingredient
	c.JSON(http.StatusCreated, item)
}
