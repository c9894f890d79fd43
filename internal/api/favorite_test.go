package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/model"
)

func TestFavoriteRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{"title": "Ramen"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/v1/favorites/" + created.Recipe.ID.String()

	w = PerformRequest(router, "POST", path, token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Favoriting again is idempotent.
	w = PerformRequest(router, "POST", path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/favorites", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Ramen", resp.Recipes[0].Title)

	w = PerformRequest(router, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(router, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFavoritesSkipsDeletedRecipes(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{"title": "Gone Soon"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = PerformRequest(router, "POST", "/api/v1/favorites/"+created.Recipe.ID.String(), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, "DELETE", "/api/v1/recipes/"+created.Recipe.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/favorites", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)
}
