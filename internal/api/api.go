package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/config"
	"github.com/kitchenbuddy/backend/internal/importer"
	"github.com/kitchenbuddy/backend/internal/service"
)

// SetupAPI wires services and handlers onto /api/v1. The Redis client and
// S3 config are optional; import drafts require Redis and image uploads
// require S3.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		recipeService := service.NewRecipeService(db)
		shoppingService := service.NewShoppingService(db)
		suggestionService := service.NewSuggestionService(db)

		var drafts DraftStore
		if redisClient != nil {
			drafts = service.NewDraftService(redisClient)
		}
		var uploader ImageUploader
		if s3cfg != nil {
			uploader = service.NewImageService(s3cfg)
		}

		NewAuthHandler(authService, db).RegisterRoutes(v1)
		NewRecipeHandler(db, recipeService, authService).RegisterRoutes(v1)
		NewImportHandler(importer.New(), drafts, authService).RegisterRoutes(v1)
		NewImageHandler(db, uploader, authService).RegisterRoutes(v1)
		NewIngredientHandler(db, authService).RegisterRoutes(v1)
		NewMealPlanHandler(db, authService).RegisterRoutes(v1)
		NewPantryHandler(db, authService).RegisterRoutes(v1)
		NewShoppingListHandler(db, shoppingService, authService).RegisterRoutes(v1)
		NewCollectionHandler(db, authService).RegisterRoutes(v1)
		NewFavoriteHandler(db, authService).RegisterRoutes(v1)
		NewTagHandler(db, authService).RegisterRoutes(v1)
		NewNoteHandler(db, authService).RegisterRoutes(v1)
		NewDashboardHandler(db, redisClient).RegisterRoutes(v1)
		NewSuggestionHandler(suggestionService).RegisterRoutes(v1)
	}
}
