package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/service"
)

// writeError maps service errors onto the response envelope:
// {code, errors} for validation failures, {code, message} otherwise.
func writeError(c *gin.Context, log logrus.FieldLogger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "errors": verr.Errors})
	case errors.Is(err, service.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_rating", "message": "Rating must be between 0 and 5."})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "recipe_not_found", "message": "Recipe not found"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "user_not_found", "message": "User not found"})
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "Resource not found"})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"code": "server_error", "message": "Something went wrong. Please try again later."})
	}
}
