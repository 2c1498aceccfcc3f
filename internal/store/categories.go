package store

import (
	"context"
	"fmt"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddCategoryParams are the inputs for creating a category.
type AddCategoryParams struct {
	Name  string
	Type  core.TransactionType
	Icon  string
	Color string
}

// AddCategory creates a category, deduplicated on the (name, type) natural
// key: when a match already exists it is returned unchanged instead of
// creating a duplicate.
func (s *Store) AddCategory(ctx context.Context, p AddCategoryParams) (*core.Category, error) {
	name := core.NormalizeName(p.Name)
	if name == "" {
		return nil, fmt.Errorf("add category: %w", core.ErrEmptyName)
	}

	var category core.Category
	created := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		categories := readList[core.Category](b, keyCategories)
		for _, c := range categories {
			if c.Name == name && c.Type == p.Type {
				category = c
				return nil
			}
		}

		category = core.Category{
			ID:    newID(prefixCategory),
			Name:  name,
			Type:  p.Type,
			Icon:  p.Icon,
			Color: p.Color,
		}
		created = true
		return writeList(b, keyCategories, append(categories, category))
	})
	if err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}

	if created {
		slog.InfoContext(ctx, "Category created", "id", category.ID, "name", category.Name, "type", category.Type)
	}
	return &category, nil
}

// GetCategories returns all categories in stored order.
func (s *Store) GetCategories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		categories = readList[core.Category](s.bucket(tx), keyCategories)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}
