package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

type ShoppingListHandler struct {
	db              *gorm.DB
	shoppingService *service.ShoppingService
	authService     *service.AuthService
}

func NewShoppingListHandler(db *gorm.DB, shoppingService *service.ShoppingService, authService *service.AuthService) *ShoppingListHandler {
	return &ShoppingListHandler{
		db:              db,
		shoppingService: shoppingService,
		authService:     authService,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListLists)
		lists.GET("/:id", h.GetList)
		lists.POST("", middleware.Auth(h.authService), h.CreateList)
		lists.DELETE("/:id", middleware.Auth(h.authService), h.DeleteList)
		lists.POST("/generate", middleware.Auth(h.authService), h.GenerateList)
		lists.POST("/:id/items", middleware.Auth(h.authService), h.AddItem)
		lists.POST("/:id/items/:itemID/toggle", middleware.Auth(h.authService), h.ToggleItem)
		lists.DELETE("/:id/items/:itemID", middleware.Auth(h.authService), h.DeleteItem)
	}
}

func (h *ShoppingListHandler) ListLists(c *gin.Context) {
	query := h.db.Model(&model.ShoppingList{}).Preload("Items.Ingredient")

	if c.DefaultQuery("active_only", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var lists []model.ShoppingList
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&lists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) GetList(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	list, err := h.shoppingService.GetList(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) CreateList(c *gin.Context) {
	var list model.ShoppingList
	if err := c.ShouldBindJSON(&list); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if list.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	list.IsActive = true

	if err := h.db.Create(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shopping list"})
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) DeleteList(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	var list model.ShoppingList
	if err := h.db.First(&list, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		return
	}

	if err := h.db.Select("Items").Delete(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shopping list"})
		return
	}

	c.Status(http.StatusNoContent)
}

type generateListRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// GenerateList builds a shopping list from the meal plans in a date range.
func (h *ShoppingListHandler) GenerateList(c *gin.Context) {
	var req generateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}

	list, err := h.shoppingService.Generate(c.Request.Context(), req.Name, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
		return
	}

	c.JSON(http.StatusCreated, list)
}

type shoppingItemRequest struct {
	IngredientID *uuid.UUID `json:"ingredient_id"`
	Name         string     `json:"name"`
	Quantity     *string    `json:"quantity"`
	Unit         string     `json:"unit"`
	Category     string     `json:"category"`
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	var list model.ShoppingList
	if err := h.db.First(&list, "id = ?", listID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		return
	}

	var req shoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.ShoppingListItem{
		ShoppingListID: listID,
		IngredientID:   req.IngredientID,
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		AddedManually:  true,
	}

	if req.IngredientID != nil {
		var ingredient model.Ingredient
		if err := h.db.First(&ingredient, "id = ?", *req.IngredientID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient not found"})
			return
		}
		if item.Name == "" {
			item.Name = ingredient.Name
		}
		if item.Category == "" {
			item.Category = ingredient.Category
		}
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name or ingredient_id is required"})
		return
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var item model.ShoppingListItem
	err = h.db.Where("id = ? AND shopping_list_id = ?", itemID, listID).First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	item.IsChecked = !item.IsChecked
	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var item model.ShoppingListItem
	err = h.db.Where("id = ? AND shopping_list_id = ?", itemID, listID).First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.Status(http.StatusNoContent)
}
