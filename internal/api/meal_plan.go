package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

const dateLayout = "2006-01-02"

type MealPlanHandler struct {
	db          *gorm.DB
	authService *service.AuthService
}

func NewMealPlanHandler(db *gorm.DB, authService *service.AuthService) *MealPlanHandler {
	return &MealPlanHandler{db: db, authService: authService}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.GET("/week/:date", h.GetWeek)
		plans.POST("", middleware.Auth(h.authService), h.CreateMealPlan)
		plans.PUT("/:id", middleware.Auth(h.authService), h.UpdateMealPlan)
		plans.DELETE("/:id", middleware.Auth(h.authService), h.DeleteMealPlan)
		plans.POST("/copy-week", middleware.Auth(h.authService), h.CopyWeek)
	}
}

// weekStart returns the Monday of the week containing d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// GetWeek returns every meal planned in the Monday-aligned week containing
// the given date.
func (h *MealPlanHandler) GetWeek(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	start := weekStart(date)
	end := start.AddDate(0, 0, 6)

	var meals []model.MealPlan
	err = h.db.Preload("Recipe.Images").
		Where("date >= ? AND date <= ?", start, end).
		Order("date, meal_type").
		Find(&meals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date": start.Format(dateLayout),
		"end_date":   end.Format(dateLayout),
		"meals":      meals,
	})
}

type mealPlanRequest struct {
	Date        string    `json:"date" binding:"required"`
	MealType    string    `json:"meal_type" binding:"required"`
	RecipeID    uuid.UUID `json:"recipe_id" binding:"required"`
	Servings    int       `json:"servings"`
	Notes       string    `json:"notes"`
	IsCompleted bool      `json:"is_completed"`
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	if !model.ValidMealType(req.MealType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	servings := req.Servings
	if servings < 1 {
		servings = 1
	}

	meal := model.MealPlan{
		Date:        date,
		MealType:    req.MealType,
		RecipeID:    req.RecipeID,
		Servings:    servings,
		Notes:       req.Notes,
		IsCompleted: req.IsCompleted,
	}
	if err := h.db.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal plan"})
		return
	}

	meal.Recipe = recipe
	c.JSON(http.StatusCreated, gin.H{"meal_plan": meal})
}

func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	var meal model.MealPlan
	if err := h.db.First(&meal, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	var req struct {
		Date        *string    `json:"date"`
		MealType    *string    `json:"meal_type"`
		RecipeID    *uuid.UUID `json:"recipe_id"`
		Servings    *int       `json:"servings"`
		Notes       *string    `json:"notes"`
		IsCompleted *bool      `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		meal.Date = date
	}
	if req.MealType != nil {
		if !model.ValidMealType(*req.MealType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
			return
		}
		meal.MealType = *req.MealType
	}
	if req.RecipeID != nil {
		var recipe model.Recipe
		if err := h.db.First(&recipe, "id = ?", *req.RecipeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		meal.RecipeID = *req.RecipeID
	}
	if req.Servings != nil && *req.Servings > 0 {
		meal.Servings = *req.Servings
	}
	if req.Notes != nil {
		meal.Notes = *req.Notes
	}
	if req.IsCompleted != nil {
		meal.IsCompleted = *req.IsCompleted
	}

	if err := h.db.Save(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plan": meal})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	var meal model.MealPlan
	if err := h.db.First(&meal, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	if err := h.db.Delete(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal plan"})
		return
	}

	c.Status(http.StatusNoContent)
}

type copyWeekRequest struct {
	SourceDate string `json:"source_date" binding:"required"`
	TargetDate string `json:"target_date" binding:"required"`
}

// CopyWeek duplicates every entry of the source week into the target week,
// preserving each entry's weekday offset.
func (h *MealPlanHandler) CopyWeek(c *gin.Context) {
	var req copyWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sourceDate, err := time.Parse(dateLayout, req.SourceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source_date, expected YYYY-MM-DD"})
		return
	}
	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, expected YYYY-MM-DD"})
		return
	}

	sourceStart := weekStart(sourceDate)
	sourceEnd := sourceStart.AddDate(0, 0, 6)
	targetStart := weekStart(targetDate)

	var sourceMeals []model.MealPlan
	err = h.db.Where("date >= ? AND date <= ?", sourceStart, sourceEnd).Find(&sourceMeals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}

	copied := 0
	for _, meal := range sourceMeals {
		dayOffset := int(meal.Date.Sub(sourceStart).Hours() / 24)
		newMeal := model.MealPlan{
			Date:     targetStart.AddDate(0, 0, dayOffset),
			MealType: meal.MealType,
			RecipeID: meal.RecipeID,
			Servings: meal.Servings,
			Notes:    meal.Notes,
		}
		if err := h.db.Create(&newMeal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to copy meal plans"})
			return
		}
		copied++
	}

	c.JSON(http.StatusOK, gin.H{"copied": copied})
}
