// Package api exposes the HTTP boundary: gin handlers, route
// registration and the mapping from service errors to status codes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/middleware"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/service"
)

// Deps bundles everything the handlers need.
type Deps struct {
	Config   *config.Config
	Recipes  *service.RecipeService
	Users    *service.UserService
	Comments *service.CommentService
	UserRepo *repo.Users
	S3       *config.S3Config // nil disables image uploads
	Redis    *redis.Client    // nil disables rate limiting
	Log      logrus.FieldLogger
}

// SetupAPI wires the handlers onto the router.
func SetupAPI(router *gin.Engine, d Deps) {
	actor := middleware.Actor(d.UserRepo, d.Config.AuthPolicy)

	var limiter *middleware.RateLimiter
	if d.Redis != nil {
		limiter = middleware.NewRecipeCreationRateLimiter(d.Redis, d.Config.RateLimitPerHour)
	}

	recipeHandler := NewRecipeHandler(d.Recipes, d.S3, limiter, d.Log)
	userHandler := NewUserHandler(d.Users, d.Log)
	commentHandler := NewCommentHandler(d.Comments, d.Log)

	root := &router.RouterGroup
	recipeHandler.RegisterRoutes(root, actor)
	userHandler.RegisterRoutes(root)
	commentHandler.RegisterRoutes(root, actor)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
