package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/internal/service"
)

// CommentHandler serves the /comments routes.
type CommentHandler struct {
	svc *service.CommentService
	log logrus.FieldLogger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc *service.CommentService, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, actor gin.HandlerFunc) {
	comments := router.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.GET("/:id", h.GetComment)
		comments.POST("", actor, h.CreateComment)
		comments.PUT("/:id", actor, h.UpdateComment)
		comments.DELETE("/:id", actor, h.DeleteComment)
	}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "unable to read request body"})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment successfully created", "comment": comment})
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation_error", "message": "unable to read request body"})
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment successfully updated", "comment": comment})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment successfully deleted"})
}
