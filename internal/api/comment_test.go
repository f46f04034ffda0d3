package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/config"
)

func TestCreateComment(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)
	userID := seedUser(t, env, "jana")
	recipeID := seedRecipe(t, env, "Soup")

	w := PerformRequest(env.Router, http.MethodPost, "/comments", map[string]any{
		"userId":   userID,
		"recipeId": recipeID,
		"text":     "Výborná polievka!",
	}, userID)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Comment successfully created", body["message"])
	comment := body["comment"].(map[string]any)
	assert.NotEmpty(t, comment["id"])
	assert.NotEmpty(t, comment["createdAt"])
}

func TestCreateCommentUnknownRecipe(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)
	userID := seedUser(t, env, "jana")

	w := PerformRequest(env.Router, http.MethodPost, "/comments", map[string]any{
		"userId":   userID,
		"recipeId": "missing",
		"text":     "hmm",
	}, userID)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "recipe_not_found", decodeBody(t, w)["code"])
}

func TestCreateCommentRequiresActorUnderStrictPolicy(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyStrict)

	w := PerformRequest(env.Router, http.MethodPost, "/comments", map[string]any{
		"recipeId": "r1",
		"text":     "hmm",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, w)["code"])
}

func TestUpdateComment(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyAnonymous)
	userID := seedUser(t, env, "jana")
	recipeID := seedRecipe(t, env, "Soup")

	w := PerformRequest(env.Router, http.MethodPost, "/comments", map[string]any{
		"userId":   userID,
		"recipeId": recipeID,
		"text":     "prvý dojem",
	}, userID)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["comment"].(map[string]any)
	id := created["id"].(string)

	w = PerformRequest(env.Router, http.MethodPut, "/comments/"+id, map[string]any{
		"text": "po dochutení ešte lepšia",
	}, userID)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeBody(t, w)["comment"].(map[string]any)
	assert.Equal(t, "po dochutení ešte lepšia", updated["text"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
	assert.Equal(t, userID, updated["userId"])
}

func TestDeleteCommentNotFound(t *testing.T) {
	env := SetupTestRouter(t, config.PolicyAnonymous)

	w := PerformRequest(env.Router, http.MethodDelete, "/comments/missing", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["code"])
}
