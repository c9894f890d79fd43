package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/model"
)

func TestGenerateShoppingList(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	flour := createTestIngredient(t, testDB, "flour")
	sugar := createTestIngredient(t, testDB, "sugar")
	salt := createTestIngredient(t, testDB, "salt")

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title":    "Cookies",
		"servings": 4,
		"ingredients": []map[string]interface{}{
			{"ingredient_id": flour.ID, "quantity": "2", "unit": "cups"},
			{"ingredient_id": sugar.ID, "quantity": "1", "unit": "cup"},
			{"ingredient_id": salt.ID, "quantity": "a pinch", "unit": ""},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Salt is already in the pantry, so generation must skip it.
	w = PerformRequest(router, "POST", "/api/v1/pantry/add-ingredient/"+salt.ID.String(), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Two dinners at 8 servings each: quantities double per meal.
	for _, day := range []string{"2026-02-02", "2026-02-03"} {
		w = PerformRequest(router, "POST", "/api/v1/meal-plans", token, map[string]interface{}{
			"date":      day,
			"meal_type": "dinner",
			"recipe_id": created.Recipe.ID,
			"servings":  8,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = PerformRequest(router, "POST", "/api/v1/shopping-lists/generate", token, map[string]interface{}{
		"name":       "Weekly shop",
		"start_date": "2026-02-02",
		"end_date":   "2026-02-08",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var list model.ShoppingList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "Weekly shop", list.Name)
	require.Len(t, list.Items, 2)

	quantities := map[string]string{}
	for _, item := range list.Items {
		if item.Quantity != nil {
			quantities[item.Name] = *item.Quantity
		} else {
			quantities[item.Name] = ""
		}
	}
	assert.Equal(t, "8", quantities["flour"])
	assert.Equal(t, "4", quantities["sugar"])
	assert.NotContains(t, quantities, "salt")
}

func TestShoppingListItemToggle(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/shopping-lists", token, map[string]interface{}{
		"name": "Errands",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var list model.ShoppingList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

	w = PerformRequest(router, "POST", "/api/v1/shopping-lists/"+list.ID.String()+"/items", token, map[string]interface{}{
		"name": "dish soap",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item model.ShoppingListItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.True(t, item.AddedManually)
	assert.False(t, item.IsChecked)

	togglePath := "/api/v1/shopping-lists/" + list.ID.String() + "/items/" + item.ID.String() + "/toggle"
	w = PerformRequest(router, "POST", togglePath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.True(t, item.IsChecked)

	w = PerformRequest(router, "DELETE", "/api/v1/shopping-lists/"+list.ID.String()+"/items/"+item.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
