package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/model"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
)

type DashboardHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewDashboardHandler creates a dashboard handler. The Redis client is
// optional; without it every request recomputes the summary.
func NewDashboardHandler(db *gorm.DB, redisClient *redis.Client) *DashboardHandler {
	return &DashboardHandler{db: db, redis: redisClient}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

type dashboardSummary struct {
	TotalRecipes     int64            `json:"total_recipes"`
	TotalIngredients int64            `json:"total_ingredients"`
	TotalFavorites   int64            `json:"total_favorites"`
	TodaysMeals      []model.MealPlan `json:"todays_meals"`
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	if h.redis != nil {
		if cached, err := h.redis.Get(c.Request.Context(), dashboardCacheKey).Bytes(); err == nil {
			var summary dashboardSummary
			if json.Unmarshal(cached, &summary) == nil {
				c.JSON(http.StatusOK, summary)
				return
			}
		}
	}

	var summary dashboardSummary
	h.db.Model(&model.Recipe{}).Count(&summary.TotalRecipes)
	h.db.Model(&model.Ingredient{}).Count(&summary.TotalIngredients)
	h.db.Model(&model.Favorite{}).Count(&summary.TotalFavorites)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err := h.db.Preload("Recipe.Images").
		Where("date >= ? AND date < ?", today, today.AddDate(0, 0, 1)).
		Order("meal_type").
		Find(&summary.TodaysMeals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}
	if summary.TodaysMeals == nil {
		summary.TodaysMeals = []model.MealPlan{}
	}

	if h.redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			h.redis.Set(c.Request.Context(), dashboardCacheKey, data, dashboardCacheTTL)
		}
	}

	c.JSON(http.StatusOK, summary)
}
