package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/config"
)

func TestCreateUser(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)

	w := PerformRequest(env.Router, http.MethodPost, "/users", map[string]any{
		"name":  "jana",
		"email": "jana@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "User successfully created", body["message"])
	user := body["user"].(map[string]any)
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, []any{}, user["favorites"])
}

func TestCreateUserInvalidEmail(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)

	w := PerformRequest(env.Router, http.MethodPost, "/users", map[string]any{
		"name":  "jana",
		"email": "not-an-email",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "validation_error", body["code"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].(map[string]any)["field"])
}

func TestUpdateUserUnionsFavorites(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyAnonymous)
	userID := seedUser(t, env, "jana")
	r1 := seedRecipe(t, env, "Polievka prvá")
	r2 := seedRecipe(t, env, "Polievka druhá")

	w := PerformRequest(env.Router, http.MethodPut, "/recipes/favorites/"+userID+"/"+r1, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(env.Router, http.MethodPut, "/users/"+userID, map[string]any{
		"favorites": []string{r2, r1},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["user"].(map[string]any)
	favorites := user["favorites"].([]any)
	assert.ElementsMatch(t, []any{r1, r2}, favorites)
}

func TestGetAndDeleteUser(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)
	userID := seedUser(t, env, "jana")

	w := PerformRequest(env.Router, http.MethodGet, "/users/"+userID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jana", decodeBody(t, w)["name"])

	w = PerformRequest(env.Router, http.MethodDelete, "/users/"+userID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/users/"+userID, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["code"])
}
