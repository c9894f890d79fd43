package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/model"
)

func TestCollectionAddAndRemoveRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/collections", token, map[string]interface{}{
		"name":        "Weeknight dinners",
		"description": "Fast and easy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var collection model.Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))

	w = PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{"title": "Stir Fry"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	link := "/api/v1/collections/" + collection.ID.String() + "/recipes/" + created.Recipe.ID.String()

	w = PerformRequest(router, "POST", link, token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Linking twice is a conflict.
	w = PerformRequest(router, "POST", link, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/collections/"+collection.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Len(t, fetched.Recipes, 1)

	w = PerformRequest(router, "DELETE", link, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Unlinking a recipe that is not in the collection is a 404.
	w = PerformRequest(router, "DELETE", link, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCollectionsIncludesRecipeCount(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/collections", token, map[string]interface{}{
		"name": "Baking",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var collection model.Collection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))

	w = PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{"title": "Bread"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = PerformRequest(router, "POST", "/api/v1/collections/"+collection.ID.String()+"/recipes/"+created.Recipe.ID.String(), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/collections", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Collections []struct {
			Name        string `json:"name"`
			RecipeCount int    `json:"recipe_count"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Collections, 1)
	assert.Equal(t, "Baking", resp.Collections[0].Name)
	assert.Equal(t, 1, resp.Collections[0].RecipeCount)
}
