package service

import (
	"context"
	"encoding/json"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/schema"
)

// CommentService handles comment operations. Creation verifies the
// referenced recipe exists.
type CommentService struct {
	comments *repo.Comments
	recipes  *repo.Recipes
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments *repo.Comments, recipes *repo.Recipes) *CommentService {
	return &CommentService{comments: comments, recipes: recipes}
}

// Create validates the payload against the full comment schema,
// verifies the recipe reference and stores a new comment.
func (s *CommentService) Create(ctx context.Context, payload []byte) (model.Comment, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.Comment{}, invalidPayload()
	}
	if errs := schema.Comment.Validate(fields); len(errs) > 0 {
		return model.Comment{}, &ValidationError{Errors: errs}
	}

	var comment model.Comment
	if err := json.Unmarshal(payload, &comment); err != nil {
		return model.Comment{}, invalidPayload()
	}
	if _, err := s.recipes.Get(comment.RecipeID); err != nil {
		return model.Comment{}, ErrRecipeNotFound
	}
	return s.comments.Create(ctx, comment)
}

// List returns all comments.
func (s *CommentService) List() []model.Comment {
	return s.comments.List()
}

// Get returns one comment by id.
func (s *CommentService) Get(id string) (model.Comment, error) {
	return s.comments.Get(id)
}

// Update validates the payload against the partial comment schema and
// shallow-merges it over the stored comment.
func (s *CommentService) Update(ctx context.Context, id string, payload []byte) (model.Comment, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.Comment{}, invalidPayload()
	}
	if errs := schema.CommentPartial.Validate(fields); len(errs) > 0 {
		return model.Comment{}, &ValidationError{Errors: errs}
	}
	return s.comments.Update(ctx, id, payload)
}

// Delete removes the comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.comments.Delete(ctx, id)
}
