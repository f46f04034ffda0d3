// Package middleware carries the request-scoped concerns: actor
// resolution, rate limiting, panic recovery and request logging.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/repo"
)

// ActorKey is the gin context key the resolved user is stored under.
const ActorKey = "actor"

// Actor resolves the acting user from the X-User-Id header or the
// userId field of a JSON body, looked up against the user collection.
// Under the strict policy a missing or unknown id aborts with 401;
// under the anonymous policy the request proceeds without an actor.
func Actor(users *repo.Users, policy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			userID = userIDFromBody(c)
		}

		if userID == "" {
			if policy == config.PolicyStrict {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    "unauthorized",
					"message": "user is not signed in",
				})
				return
			}
			c.Next()
			return
		}

		user, err := users.Get(userID)
		if err != nil {
			if policy == config.PolicyStrict {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    "unauthorized",
					"message": "invalid user",
				})
				return
			}
			c.Next()
			return
		}

		c.Set(ActorKey, user)
		c.Next()
	}
}

// CurrentActor returns the resolved user, if any.
func CurrentActor(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// userIDFromBody peeks at a JSON body for a userId field, restoring
// the body so handlers can still bind it.
func userIDFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.UserID
}
