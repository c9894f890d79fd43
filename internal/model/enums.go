package model

// Meal plan slots.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Recipe difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Ingredient categories, used for pantry and shopping list grouping.
var IngredientCategories = []string{
	"produce", "dairy", "meat", "seafood", "pantry", "frozen",
	"bakery", "beverages", "condiments", "spices", "other",
}

func ValidMealType(s string) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func ValidIngredientCategory(s string) bool {
	for _, c := range IngredientCategories {
		if c == s {
			return true
		}
	}
	return false
}
