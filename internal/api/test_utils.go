package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kitchenbuddy/backend/internal/database"
	"github.com/kitchenbuddy/backend/internal/importer"
	"github.com/kitchenbuddy/backend/internal/model"
	"github.com/kitchenbuddy/backend/internal/service"
)

var testDBCounter int64

// TestDB holds the test database and services
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB opens an isolated in-memory SQLite database with the full
// schema migrated.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
	}
}

// CreateTestUserAndToken creates a test user and returns their ID and a
// valid JWT token.
func CreateTestUserAndToken(t *testing.T, testDB *TestDB) (uuid.UUID, string) {
	t.Helper()

	password := "testpassword123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := model.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", uuid.New().String()),
		PasswordHash: string(hashed),
	}
	if err := testDB.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := testDB.AuthService.Login(user.Email, password)
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}

	return user.ID, token
}

// memoryDraftStore is an in-memory DraftStore used in place of Redis.
type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]*service.ImportDraft
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string]*service.ImportDraft)}
}

func (m *memoryDraftStore) SaveDraft(_ context.Context, draft *importer.RecipeDraft) (*service.ImportDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := &service.ImportDraft{
		ID:          uuid.New().String(),
		RecipeDraft: *draft,
	}
	m.drafts[stored.ID] = stored
	return stored, nil
}

func (m *memoryDraftStore) GetDraft(_ context.Context, id string) (*service.ImportDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	return draft, nil
}

func (m *memoryDraftStore) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

// fakeUploader records uploads and returns deterministic URLs.
type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) UploadRecipeImage(_ context.Context, data []byte, contentType string) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://images.example.com/upload-%d", f.uploads), nil
}

// SetupTestRouter builds a router with every handler registered against an
// in-memory database, plus in-memory stand-ins for Redis and S3.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")

	authService := testDB.AuthService
	recipeService := service.NewRecipeService(testDB.DB)
	shoppingService := service.NewShoppingService(testDB.DB)
	suggestionService := service.NewSuggestionService(testDB.DB)

	NewAuthHandler(authService, testDB.DB).RegisterRoutes(v1)
	NewRecipeHandler(testDB.DB, recipeService, authService).RegisterRoutes(v1)
	NewImportHandler(importer.New(), newMemoryDraftStore(), authService).RegisterRoutes(v1)
	NewImageHandler(testDB.DB, &fakeUploader{}, authService).RegisterRoutes(v1)
	NewIngredientHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewMealPlanHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewPantryHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewShoppingListHandler(testDB.DB, shoppingService, authService).RegisterRoutes(v1)
	NewCollectionHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewFavoriteHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewTagHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewNoteHandler(testDB.DB, authService).RegisterRoutes(v1)
	NewDashboardHandler(testDB.DB, nil).RegisterRoutes(v1)
	NewSuggestionHandler(suggestionService).RegisterRoutes(v1)

	return router, testDB
}

// PerformRequest makes an HTTP request against the router. A non-empty
// token is sent as a bearer credential.
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
