package service

import (
	"context"
	"encoding/json"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/schema"
)

// UserService handles user operations.
type UserService struct {
	users *repo.Users
}

// NewUserService creates a new UserService instance.
func NewUserService(users *repo.Users) *UserService {
	return &UserService{users: users}
}

// Create validates the payload against the full user schema and stores
// a new user under a generated id.
func (s *UserService) Create(ctx context.Context, payload []byte) (model.User, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.User{}, invalidPayload()
	}
	if errs := schema.User.Validate(fields); len(errs) > 0 {
		return model.User{}, &ValidationError{Errors: errs}
	}

	var user model.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return model.User{}, invalidPayload()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	return s.users.Create(ctx, user)
}

// List returns all users.
func (s *UserService) List() []model.User {
	return s.users.List()
}

// Get returns one user by id.
func (s *UserService) Get(id string) (model.User, error) {
	return s.users.Get(id)
}

// Update validates the payload against the partial user schema and
// shallow-merges it; favorites in the payload are unioned into the
// existing set.
func (s *UserService) Update(ctx context.Context, id string, payload []byte) (model.User, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.User{}, invalidPayload()
	}
	if errs := schema.UserPartial.Validate(fields); len(errs) > 0 {
		return model.User{}, &ValidationError{Errors: errs}
	}
	return s.users.Update(ctx, id, payload)
}

// Delete removes the user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
