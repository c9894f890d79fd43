package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/model"
)

// AutoMigrate creates or updates the schema for all application models.
// On PostgreSQL the pgvector extension is enabled first so the recipe
// embedding column can be created.
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return err
		}
	} else {
		log.Printf("Using GORM auto-migration without pgvector (%s)", db.Dialector.Name())
	}

	return db.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.RecipeImage{},
		&model.Tag{},
		&model.RecipeNote{},
		&model.Favorite{},
		&model.Collection{},
		&model.MealPlan{},
		&model.PantryItem{},
		&model.ShoppingList{},
		&model.ShoppingListItem{},
	)
}
