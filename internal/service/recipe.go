package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/scaling"
)

// RecipeFilter narrows ListRecipes results.
type RecipeFilter struct {
	Search        string
	Difficulty    string
	TagIDs        []uuid.UUID
	FavoritesOnly bool
	Skip          int
	Limit         int
}

// ScaledIngredient is one line of a scaled recipe view.
type ScaledIngredient struct {
	IngredientID     uuid.UUID `json:"ingredient_id"`
	IngredientName   string    `json:"ingredient_name"`
	OriginalQuantity *string   `json:"original_quantity"`
	ScaledQuantity   *string   `json:"scaled_quantity"`
	Unit             string    `json:"unit"`
	Notes            string    `json:"notes"`
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a new recipe with its ingredient rows.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Embedding = TextEmbedding(recipe.Title + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe with its ingredients, images, tags and notes.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Images").
		Preload("Tags").
		Preload("Notes").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces the recipe's own columns and, when ingredients are
// given, its ingredient rows.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Embedding = TextEmbedding(recipe.Title + " " + recipe.Description)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Recipe
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Omit("Ingredients", "Tags", "Images", "Notes").Updates(recipe).Error; err != nil {
			return err
		}
		if recipe.Ingredients != nil {
			if err := tx.Delete(&model.RecipeIngredient{}, "recipe_id = ?", id).Error; err != nil {
				return err
			}
			for i := range recipe.Ingredients {
				recipe.Ingredients[i].ID = uuid.Nil
				recipe.Ingredients[i].RecipeID = id
			}
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		if recipe.Tags != nil {
			if err := tx.Model(&existing).Association("Tags").Replace(recipe.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe soft-deletes a recipe.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// ListRecipes lists recipes matching the filter. On postgres, search
// results are ordered by embedding distance; elsewhere a LIKE match on
// title and description is used.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Preload("Images").
		Preload("Tags").
		Preload("Favorite")

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		if s.db.Dialector.Name() == "postgres" {
			vec := TextEmbedding(filter.Search)
			query = query.
				Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like).
				Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
				})
		} else {
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs).
			Distinct()
	}

	if filter.FavoritesOnly {
		query = query.Joins("JOIN favorites ON favorites.recipe_id = recipes.id")
	}

	if filter.Search == "" {
		query = query.Order("recipes.created_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var recipes []model.Recipe
	if err := query.Offset(filter.Skip).Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ScaleRecipe returns the recipe's ingredient lines with quantities
// rescaled from the stored serving count to targetServings.
func (s *RecipeService) ScaleRecipe(ctx context.Context, id uuid.UUID, targetServings int) ([]ScaledIngredient, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	scaled := make([]ScaledIngredient, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		line := ScaledIngredient{
			IngredientID:     ri.IngredientID,
			IngredientName:   ri.Ingredient.Name,
			OriginalQuantity: ri.Quantity,
			ScaledQuantity:   ri.Quantity,
			Unit:             ri.Unit,
			Notes:            ri.Notes,
		}
		if ri.Quantity != nil {
			q := scaling.ScaleQuantity(*ri.Quantity, recipe.Servings, targetServings)
			line.ScaledQuantity = &q
		}
		scaled = append(scaled, line)
	}
	return scaled, nil
}
