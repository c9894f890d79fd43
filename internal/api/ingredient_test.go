package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/model"
)

func TestCreateIngredientRejectsDuplicate(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	body := map[string]interface{}{"name": "paprika", "category": "spices"}

	w := PerformRequest(router, "POST", "/api/v1/ingredients", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = PerformRequest(router, "POST", "/api/v1/ingredients", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateIngredientRejectsBadCategory(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/ingredients", token, map[string]interface{}{
		"name":     "mystery",
		"category": "not-a-category",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIngredientsSearchAndCategory(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	for _, ing := range []map[string]interface{}{
		{"name": "red onion", "category": "produce"},
		{"name": "yellow onion", "category": "produce"},
		{"name": "onion powder", "category": "spices"},
	} {
		w := PerformRequest(router, "POST", "/api/v1/ingredients", token, ing)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := PerformRequest(router, "GET", "/api/v1/ingredients?search=onion&category=produce", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ingredients []model.Ingredient `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ingredients, 2)
	// Results come back ordered by name.
	assert.Equal(t, "red onion", resp.Ingredients[0].Name)
	assert.Equal(t, "yellow onion", resp.Ingredients[1].Name)
}

func TestDeleteIngredient(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createTestIngredient(t, testDB, "cumin")

	w := PerformRequest(router, "DELETE", "/api/v1/ingredients/"+ingredient.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/ingredients/"+ingredient.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
