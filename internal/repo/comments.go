package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/store"
)

// Comments is the comment repository.
type Comments struct {
	mu    sync.Mutex
	store store.Store
	items []model.Comment
}

// NewComments loads the comment collection from the store.
func NewComments(ctx context.Context, st store.Store) (*Comments, error) {
	docs, err := st.Load(ctx, store.Comments)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Comment](docs)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return &Comments{store: st, items: items}, nil
}

// List returns a copy of the collection.
func (c *Comments) List() []model.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Comment, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the comment with the given id.
func (c *Comments) Get(id string) (model.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			return c.items[i], nil
		}
	}
	return model.Comment{}, fmt.Errorf("comment %s: %w", id, ErrNotFound)
}

// Create assigns a fresh id and creation timestamp, appends and
// persists.
func (c *Comments) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, comment)
	if err := c.persist(ctx); err != nil {
		c.items = c.items[:len(c.items)-1]
		return model.Comment{}, err
	}
	return comment, nil
}

// Update shallow-merges the patch over the stored comment and persists.
func (c *Comments) Update(ctx context.Context, id string, patch []byte) (model.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		merged, err := merge(c.items[i], patch)
		if err != nil {
			return model.Comment{}, err
		}
		merged.ID = id
		merged.CreatedAt = c.items[i].CreatedAt
		previous := c.items[i]
		c.items[i] = merged
		if err := c.persist(ctx); err != nil {
			c.items[i] = previous
			return model.Comment{}, err
		}
		return merged, nil
	}
	return model.Comment{}, fmt.Errorf("comment %s: %w", id, ErrNotFound)
}

// Delete removes the comment and persists.
func (c *Comments) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		previous := c.items
		c.items = append(append([]model.Comment{}, c.items[:i]...), c.items[i+1:]...)
		if err := c.persist(ctx); err != nil {
			c.items = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("comment %s: %w", id, ErrNotFound)
}

func (c *Comments) persist(ctx context.Context) error {
	docs, err := encodeAll(c.items)
	if err != nil {
		return err
	}
	return c.store.Save(ctx, store.Comments, docs)
}
