package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/middleware"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageUploader abstracts S3 uploads so tests can substitute a fake.
type ImageUploader interface {
	UploadRecipeImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type ImageHandler struct {
	db          *gorm.DB
	uploader    ImageUploader
	authService *service.AuthService
}

func NewImageHandler(db *gorm.DB, uploader ImageUploader, authService *service.AuthService) *ImageHandler {
	return &ImageHandler{
		db:          db,
		uploader:    uploader,
		authService: authService,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/:id/images", middleware.Auth(h.authService), h.UploadImage)
	router.GET("/images/:id", h.GetImage)
	router.DELETE("/images/:id", middleware.Auth(h.authService), h.DeleteImage)
}

func (h *ImageHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large (max 5MB)"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || int64(len(data)) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large (max 5MB)"})
		return
	}

	url, err := h.uploader.UploadRecipeImage(c.Request.Context(), data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	var existing int64
	h.db.Model(&model.RecipeImage{}).Where("recipe_id = ?", recipeID).Count(&existing)

	image := model.RecipeImage{
		RecipeID:  recipeID,
		URL:       url,
		IsPrimary: existing == 0 || c.PostForm("is_primary") == "true",
	}

	if image.IsPrimary {
		h.db.Model(&model.RecipeImage{}).
			Where("recipe_id = ? AND is_primary = ?", recipeID, true).
			Update("is_primary", false)
	}

	if err := h.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// GetImage redirects to the stored object URL.
func (h *ImageHandler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	var image model.RecipeImage
	if err := h.db.First(&image, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.Redirect(http.StatusFound, image.URL)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	var image model.RecipeImage
	if err := h.db.First(&image, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := h.db.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.Status(http.StatusNoContent)
}
