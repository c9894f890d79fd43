package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/model"
)

func createTestIngredient(t *testing.T, testDB *TestDB, name string) model.Ingredient {
	t.Helper()
	ingredient := model.Ingredient{Name: name, Category: "pantry", DefaultUnit: "g"}
	require.NoError(t, testDB.DB.Create(&ingredient).Error)
	return ingredient
}

func TestCreateAndGetRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	flour := createTestIngredient(t, testDB, "flour")

	body := map[string]interface{}{
		"title":       "Pancakes",
		"description": "Fluffy breakfast pancakes",
		"servings":    4,
		"difficulty":  "easy",
		"ingredients": []map[string]interface{}{
			{"ingredient_id": flour.ID, "quantity": "2", "unit": "cups"},
		},
	}

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pancakes", created.Recipe.Title)
	require.Len(t, created.Recipe.Ingredients, 1)
	assert.Equal(t, "flour", created.Recipe.Ingredients[0].Ingredient.Name)

	w = PerformRequest(router, "GET", "/api/v1/recipes/"+created.Recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "POST", "/api/v1/recipes", "", map[string]interface{}{
		"title": "No auth",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeRejectsBadDifficulty(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title":      "Bad",
		"difficulty": "impossible",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	flour := createTestIngredient(t, testDB, "flour")
	sugar := createTestIngredient(t, testDB, "sugar")

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title": "Cake",
		"ingredients": []map[string]interface{}{
			{"ingredient_id": flour.ID, "quantity": "2", "unit": "cups"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = PerformRequest(router, "PUT", "/api/v1/recipes/"+created.Recipe.ID.String(), token, map[string]interface{}{
		"title": "Sugar Cake",
		"ingredients": []map[string]interface{}{
			{"ingredient_id": sugar.ID, "quantity": "1", "unit": "cup"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Sugar Cake", updated.Recipe.Title)
	require.Len(t, updated.Recipe.Ingredients, 1)
	assert.Equal(t, "sugar", updated.Recipe.Ingredients[0].Ingredient.Name)
}

func TestDeleteRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title": "Doomed",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Recipe.ID.String()

	w = PerformRequest(router, "DELETE", "/api/v1/recipes/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesFilters(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	for i, difficulty := range []string{"easy", "hard", "easy"} {
		w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
			"title":      fmt.Sprintf("Recipe %d", i),
			"difficulty": difficulty,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := PerformRequest(router, "GET", "/api/v1/recipes?difficulty=easy", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 2)
}

func TestListRecipesSearch(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	for _, title := range []string{"Chocolate Cake", "Tomato Soup"} {
		w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
			"title": title,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := PerformRequest(router, "GET", "/api/v1/recipes?q=chocolate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Chocolate Cake", resp.Recipes[0].Title)
}

func TestScaleRecipeEndpoint(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	flour := createTestIngredient(t, testDB, "flour")
	butter := createTestIngredient(t, testDB, "butter")

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title":    "Shortbread",
		"servings": 4,
		"ingredients": []map[string]interface{}{
			{"ingredient_id": flour.ID, "quantity": "2", "unit": "cups"},
			{"ingredient_id": butter.ID, "quantity": "1/2", "unit": "cup"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = PerformRequest(router, "GET", "/api/v1/recipes/"+created.Recipe.ID.String()+"/scale/8", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		TargetServings int `json:"target_servings"`
		Ingredients    []struct {
			IngredientName string  `json:"ingredient_name"`
			ScaledQuantity *string `json:"scaled_quantity"`
		} `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.TargetServings)
	require.Len(t, resp.Ingredients, 2)

	scaled := map[string]string{}
	for _, ing := range resp.Ingredients {
		require.NotNil(t, ing.ScaledQuantity)
		scaled[ing.IngredientName] = *ing.ScaledQuantity
	}
	assert.Equal(t, "4", scaled["flour"])
	assert.Equal(t, "1", scaled["butter"])
}

func TestScaleRecipeRejectsBadServings(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"title": "Anything",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = PerformRequest(router, "GET", "/api/v1/recipes/"+created.Recipe.ID.String()+"/scale/0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
