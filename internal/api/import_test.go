package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/backend/internal/importer"
	"github.com/kitchenbuddy/backend/internal/service"
)

const importTestPage = `<!DOCTYPE html>
<html>
<head>
<title>Chocolate Cake | Example</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Chocolate Cake",
  "description": "Rich and moist.",
  "prepTime": "PT20M",
  "cookTime": "PT1H",
  "recipeYield": "8 servings",
  "recipeIngredient": ["2 cups flour", "1 cup sugar"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Mix."},
    {"@type": "HowToStep", "text": "Bake."}
  ]
}
</script>
</head>
<body></body>
</html>`

// redirectTransport sends every request to the test server regardless of
// the requested host, so public-looking URLs can be exercised offline.
type redirectTransport struct {
	target *url.URL
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func setupImportTestRouter(t *testing.T, pageHandler http.Handler) (*gin.Engine, *TestDB, *memoryDraftStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(pageHandler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	client := &http.Client{
		Transport: &redirectTransport{target: target},
		Timeout:   5 * time.Second,
	}

	testDB := SetupTestDB(t)
	drafts := newMemoryDraftStore()

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewImportHandler(importer.NewWithClient(client), drafts, testDB.AuthService).RegisterRoutes(v1)

	return router, testDB, drafts
}

func TestImportRecipeStoresDraft(t *testing.T) {
	router, testDB, _ := setupImportTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(importTestPage))
	}))
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes/import", token, map[string]string{
		"url": "https://recipes.example.com/chocolate-cake",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Draft service.ImportDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Draft.ID)
	require.NotNil(t, resp.Draft.Title)
	assert.Equal(t, "Chocolate Cake", *resp.Draft.Title)
	require.NotNil(t, resp.Draft.Servings)
	assert.Equal(t, 8, *resp.Draft.Servings)
	assert.Equal(t, []string{"2 cups flour", "1 cup sugar"}, resp.Draft.Ingredients)
	assert.Equal(t, "https://recipes.example.com/chocolate-cake", resp.Draft.SourceURL)

	// Round-trip the stored draft through the drafts endpoints.
	w = PerformRequest(router, "GET", "/api/v1/recipes/import/drafts/"+resp.Draft.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, "DELETE", "/api/v1/recipes/import/drafts/"+resp.Draft.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/recipes/import/drafts/"+resp.Draft.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportRecipeRejectsBlockedURL(t *testing.T) {
	hit := false
	router, testDB, _ := setupImportTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	_, token := CreateTestUserAndToken(t, testDB)

	for _, raw := range []string{
		"http://localhost/admin",
		"http://127.0.0.1:8080/recipe",
		"http://169.254.169.254/latest/meta-data",
		"ftp://recipes.example.com/cake",
	} {
		w := PerformRequest(router, "POST", "/api/v1/recipes/import", token, map[string]string{"url": raw})
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}
	assert.False(t, hit, "blocked URLs must be rejected before any network call")
}

func TestImportRecipeFetchFailure(t *testing.T) {
	router, testDB, _ := setupImportTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes/import", token, map[string]string{
		"url": "https://recipes.example.com/missing",
	})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to import recipe from URL", resp["error"])
}

func TestImportRecipeRequiresAuth(t *testing.T) {
	router, _, _ := setupImportTestRouter(t, http.NotFoundHandler())

	w := PerformRequest(router, "POST", "/api/v1/recipes/import", "", map[string]string{
		"url": "https://recipes.example.com/cake",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
