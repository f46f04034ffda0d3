package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/service"
	"github.com/receptar-app/backend/internal/store"
)

// TestEnv bundles the router and the services behind it so tests can
// seed data directly.
type TestEnv struct {
	Router   *gin.Engine
	Recipes  *service.RecipeService
	Users    *service.UserService
	Comments *service.CommentService
}

// SetupTestRouter builds a router over an in-memory store with the
// given auth policy. Redis and S3 stay disabled.
func SetupTestRouter(t *testing.T, policy string) *TestEnv {
	t.Helper()
	return SetupTestRouterWithImages(t, policy, nil)
}

// SetupTestRouterWithImages is SetupTestRouter with an image storage
// backend attached.
func SetupTestRouterWithImages(t *testing.T, policy string, images *config.S3Config) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := store.NewMemory()

	recipes, err := repo.NewRecipes(ctx, st)
	require.NoError(t, err)
	users, err := repo.NewUsers(ctx, st)
	require.NoError(t, err)
	comments, err := repo.NewComments(ctx, st)
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{AuthPolicy: policy, RateLimitPerHour: 30}
	deps := Deps{
		Config:   cfg,
		Recipes:  service.NewRecipeService(recipes, users, nil, log),
		Users:    service.NewUserService(users),
		Comments: service.NewCommentService(comments, recipes),
		UserRepo: users,
		S3:       images,
		Log:      log,
	}

	router := gin.New()
	SetupAPI(router, deps)

	return &TestEnv{
		Router:   router,
		Recipes:  deps.Recipes,
		Users:    deps.Users,
		Comments: deps.Comments,
	}
}

// PerformRequest makes an HTTP request against the test router. A
// non-nil body is marshalled as JSON; userID, when set, goes into the
// X-User-Id header.
func PerformRequest(router *gin.Engine, method, path string, body any, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// seedUser creates a user through the service and returns its id.
func seedUser(t *testing.T, env *TestEnv, name string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"name": name, "email": name + "@example.com"})
	require.NoError(t, err)
	user, err := env.Users.Create(context.Background(), payload)
	require.NoError(t, err)
	return user.ID
}

// seedRecipe creates a recipe through the service and returns its id.
func seedRecipe(t *testing.T, env *TestEnv, name string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"name":        name,
		"category":    "Polievky",
		"ingredients": []string{"water"},
		"steps":       []string{"boil"},
		"prepTime":    "15 min",
		"difficulty":  "Jednoduchá",
	})
	require.NoError(t, err)
	recipe, err := env.Recipes.Create(context.Background(), payload)
	require.NoError(t, err)
	return recipe.ID
}
