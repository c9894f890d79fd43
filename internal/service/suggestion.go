package service

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/model"
)

// MissingIngredient names an ingredient a recipe needs that the pantry
// does not hold.
type MissingIngredient struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       *string   `json:"quantity"`
	Unit           string    `json:"unit"`
}

// RecipeSuggestion scores a recipe against the current pantry contents.
type RecipeSuggestion struct {
	RecipeID             uuid.UUID           `json:"recipe_id"`
	RecipeTitle          string              `json:"recipe_title"`
	TotalIngredients     int                 `json:"total_ingredients"`
	AvailableIngredients int                 `json:"available_ingredients"`
	MissingIngredients   []MissingIngredient `json:"missing_ingredients"`
	MatchPercentage      float64             `json:"match_percentage"`
}

// SuggestionService ranks recipes by how much of their ingredient list the
// pantry already covers.
type SuggestionService struct {
	db *gorm.DB
}

func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{db: db}
}

// Suggest returns up to limit recipes whose pantry match ratio is at least
// minMatch (0..1), best matches first.
func (s *SuggestionService) Suggest(ctx context.Context, minMatch float64, limit int) ([]RecipeSuggestion, error) {
	var pantryItems []model.PantryItem
	if err := s.db.WithContext(ctx).Find(&pantryItems).Error; err != nil {
		return nil, err
	}
	pantry := make(map[uuid.UUID]struct{}, len(pantryItems))
	for _, item := range pantryItems {
		pantry[item.IngredientID] = struct{}{}
	}

	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Limit(500).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	suggestions := []RecipeSuggestion{}
	for _, recipe := range recipes {
		if len(recipe.Ingredients) == 0 {
			continue
		}

		available := 0
		missing := []MissingIngredient{}
		for _, ri := range recipe.Ingredients {
			if _, ok := pantry[ri.IngredientID]; ok {
				available++
				continue
			}
			missing = append(missing, MissingIngredient{
				IngredientID:   ri.IngredientID,
				IngredientName: ri.Ingredient.Name,
				Quantity:       ri.Quantity,
				Unit:           ri.Unit,
			})
		}

		ratio := float64(available) / float64(len(recipe.Ingredients))
		if ratio < minMatch {
			continue
		}

		suggestions = append(suggestions, RecipeSuggestion{
			RecipeID:             recipe.ID,
			RecipeTitle:          recipe.Title,
			TotalIngredients:     len(recipe.Ingredients),
			AvailableIngredients: available,
			MissingIngredients:   missing,
			MatchPercentage:      math.Round(ratio*1000) / 10,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MatchPercentage > suggestions[j].MatchPercentage
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
