package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenbuddy/backend/internal/model"
)

// ShoppingService builds shopping lists from planned meals.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

type ingredientTotal struct {
	ingredient model.Ingredient
	quantity   float64
	unit       string
}

// Generate creates a shopping list covering every meal planned between
// start and end inclusive. Ingredients already in the pantry are skipped.
// Quantities are scaled by each meal's serving count and summed where they
// parse as plain numbers; free-form quantities are carried as unquantified
// items.
func (s *ShoppingService) Generate(ctx context.Context, name string, start, end time.Time) (*model.ShoppingList, error) {
	var meals []model.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Recipe.Ingredients.Ingredient").
		Where("date >= ? AND date <= ?", start, end).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	var pantryItems []model.PantryItem
	if err := s.db.WithContext(ctx).Find(&pantryItems).Error; err != nil {
		return nil, err
	}
	pantry := make(map[uuid.UUID]struct{}, len(pantryItems))
	for _, item := range pantryItems {
		pantry[item.IngredientID] = struct{}{}
	}

	totals := map[uuid.UUID]*ingredientTotal{}
	var order []uuid.UUID

	for _, meal := range meals {
		scale := 1.0
		if meal.Recipe.Servings > 0 {
			scale = float64(meal.Servings) / float64(meal.Recipe.Servings)
		}
		for _, ri := range meal.Recipe.Ingredients {
			if _, inPantry := pantry[ri.IngredientID]; inPantry {
				continue
			}
			total, ok := totals[ri.IngredientID]
			if !ok {
				total = &ingredientTotal{ingredient: ri.Ingredient}
				totals[ri.IngredientID] = total
				order = append(order, ri.IngredientID)
			}
			if ri.Quantity != nil {
				if qty, err := strconv.ParseFloat(strings.TrimSpace(*ri.Quantity), 64); err == nil {
					total.quantity += qty * scale
				}
			}
			if total.unit == "" {
				total.unit = ri.Unit
			}
		}
	}

	list := &model.ShoppingList{
		Name:      name,
		StartDate: &start,
		EndDate:   &end,
		IsActive:  true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		for _, id := range order {
			total := totals[id]
			ingredientID := id
			item := model.ShoppingListItem{
				ShoppingListID: list.ID,
				IngredientID:   &ingredientID,
				Name:           total.ingredient.Name,
				Unit:           total.unit,
				Category:       total.ingredient.Category,
			}
			if total.quantity > 0 {
				q := formatQuantity(total.quantity)
				item.Quantity = &q
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetList(ctx, list.ID)
}

// GetList retrieves a shopping list with its items and their ingredients.
func (s *ShoppingService) GetList(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items.Ingredient").
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// formatQuantity renders a summed quantity rounded to two decimals, with
// trailing zeros dropped.
func formatQuantity(q float64) string {
	out := strconv.FormatFloat(q, 'f', 2, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimRight(out, ".")
}
