package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/middleware"
	"github.com/receptar-app/backend/internal/query"
	"github.com/receptar-app/backend/internal/schema"
	"github.com/receptar-app/backend/internal/service"
)

// RecipeHandler serves the /recipes routes.
type RecipeHandler struct {
	svc     *service.RecipeService
	images  *config.S3Config
	limiter *middleware.RateLimiter
	log     logrus.FieldLogger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(svc *service.RecipeService, images *config.S3Config, limiter *middleware.RateLimiter, log logrus.FieldLogger) *RecipeHandler {
	return &RecipeHandler{svc: svc, images: images, limiter: limiter, log: log}
}

// RegisterRoutes registers the recipe routes. Mutating routes pass
// through the actor middleware.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, actor gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/filter", h.FilterRecipes)
		recipes.GET("/stats", h.GetStats)
		recipes.GET("/favorites/:userId", h.ListFavorites)
		recipes.PUT("/favorites/:userId/:recipeId", h.AddFavorite)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/rate/:recipeId", actor, h.RateRecipe)
		recipes.PUT("/:id", actor, h.UpdateRecipe)
		recipes.DELETE("/:id", actor, h.DeleteRecipe)
		recipes.GET("/:id/image", h.GetImage)
		recipes.POST("/:id/image", actor, h.UploadImage)

		create := []gin.HandlerFunc{actor}
		if h.limiter != nil {
			create = append(create, h.limiter.Middleware())
		}
		recipes.POST("", append(create, h.CreateRecipe)...)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "unable to read request body"})
		return
	}

	recipe, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe successfully created", "recipe": recipe})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "unable to read request body"})
		return
	}

	recipe, err := h.svc.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe successfully updated", "recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe successfully deleted"})
}

func (h *RecipeHandler) FilterRecipes(c *gin.Context) {
	params, errs := filterParams(c)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "errors": errs})
		return
	}
	c.JSON(http.StatusOK, h.svc.Filter(params))
}

// filterParams parses the optional query parameters; non-numeric
// values in numeric parameters are rejected rather than ignored.
func filterParams(c *gin.Context) (query.Params, []schema.FieldError) {
	params := query.Params{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Page:       1,
		Limit:      10,
	}
	var errs []schema.FieldError

	if raw := c.Query("ingredients"); raw != "" {
		params.Ingredients = strings.Split(raw, ",")
	}
	if raw := c.Query("popularity"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, schema.FieldError{Field: "popularity", Rule: "type", Message: "popularity must be a number"})
		} else {
			params.Popularity = &v
		}
	}
	if raw := c.Query("maxPrepTime"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, schema.FieldError{Field: "maxPrepTime", Rule: "type", Message: "maxPrepTime must be an integer"})
		} else {
			params.MaxPrepTime = &v
		}
	}
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errs = append(errs, schema.FieldError{Field: "page", Rule: "minimum", Message: "page must be a positive integer"})
		} else {
			params.Page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errs = append(errs, schema.FieldError{Field: "limit", Rule: "minimum", Message: "limit must be a positive integer"})
		} else {
			params.Limit = v
		}
	}

	return params, errs
}

// rateRequest is the body of a rating submission. The userId may also
// come from the resolved actor.
type rateRequest struct {
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "request body must be a JSON object"})
		return
	}
	if req.UserID == "" {
		if actor, ok := middleware.CurrentActor(c); ok {
			req.UserID = actor.ID
		}
	}

	recipe, err := h.svc.Rate(c.Request.Context(), c.Param("recipeId"), req.UserID, req.Rating)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating added.", "recipe": recipe})
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	err := h.svc.AddFavorite(c.Request.Context(), c.Param("userId"), c.Param("recipeId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe added to favorites."})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.svc.ListFavorites(c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *RecipeHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetStats(c.Request.Context()))
}

// GetImage resolves the recipe's image to a fetchable URL: bucket
// objects get a presigned GET link, external URLs pass through as-is.
func (h *RecipeHandler) GetImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "storage_unavailable", "message": "image storage is not configured"})
		return
	}

	recipe, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if recipe.Image == "" {
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "Recipe has no image"})
		return
	}

	key, ok := h.images.ObjectKey(recipe.Image)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"url": recipe.Image})
		return
	}

	url, err := h.images.GeneratePresignedURL(c.Request.Context(), key, 15*time.Minute)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadImage stores a multipart image in S3 and sets the recipe's
// image reference to the object URL.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "storage_unavailable", "message": "image storage is not configured"})
		return
	}

	id := c.Param("id")
	if _, err := h.svc.Get(id); err != nil {
		writeError(c, h.log, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "multipart field 'image' is required"})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("recipes/%s/%s%s", id, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := h.images.Upload(c.Request.Context(), key, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	patch, _ := json.Marshal(map[string]string{"image": url})
	recipe, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded.", "recipe": recipe})
}
