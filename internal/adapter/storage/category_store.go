package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

const categoryColumns = `c.id, c.name, c.slug, c.description, c.icon, c.color, c.is_active, c.sort_order`

// CategoryStore implements storage for categories
type CategoryStore struct {
	db *pgxpool.Pool
}

// NewCategoryStore creates a new category store
func NewCategoryStore(db *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListActive returns active categories in display order
func (s *CategoryStore) ListActive(ctx context.Context) ([]listing.Category, error) {
	return s.query(ctx, `SELECT `+categoryColumns+`
		FROM categories c
		WHERE c.is_active = TRUE
		ORDER BY c.sort_order, c.name`)
}

// FindBySlugs returns the active categories whose slug is in slugs. Unknown slugs are ignored.
func (s *CategoryStore) FindBySlugs(ctx context.Context, slugs []string) ([]listing.Category, error) {
	if len(slugs) == 0 {
		return []listing.Category{}, nil
	}
	return s.query(ctx, `SELECT `+categoryColumns+`
		FROM categories c
		WHERE c.is_active = TRUE AND c.slug = ANY($1)
		ORDER BY c.sort_order, c.name`, slugs)
}

func (s *CategoryStore) query(ctx context.Context, query string, args ...interface{}) ([]listing.Category, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	categories := []listing.Category{}
	for rows.Next() {
		var c listing.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
