package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// FavoriteStore implements storage for user favorites
type FavoriteStore struct {
	db       *pgxpool.Pool
	listings *ListingStore
}

// NewFavoriteStore creates a new favorite store
func NewFavoriteStore(db *pgxpool.Pool, listings *ListingStore) *FavoriteStore {
	return &FavoriteStore{db: db, listings: listings}
}

// AddFavorite records a favorite; adding twice is a no-op
func (s *FavoriteStore) AddFavorite(ctx context.Context, userID, saleID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_favorites (user_id, garage_sale_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, garage_sale_id) DO NOTHING
	`, userID, saleID)
	if err != nil {
		return fmt.Errorf("error adding favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a favorite if present
func (s *FavoriteStore) RemoveFavorite(ctx context.Context, userID, saleID int64) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_favorites WHERE user_id = $1 AND garage_sale_id = $2
	`, userID, saleID)
	if err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the user's favorited listings that are active and not over,
// most recently favorited first
func (s *FavoriteStore) ListFavorites(ctx context.Context, userID int64, today listing.Date) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM user_favorites uf
		JOIN garage_sales gs ON gs.id = uf.garage_sale_id
		WHERE uf.user_id = $1
		  AND gs.status = 'active'
		  AND gs.end_date >= $2
		ORDER BY uf.created_at DESC, gs.id`

	return s.listings.queryListings(ctx, query, userID, today.Time())
}

// FavoriteIDs returns which of saleIDs the user has favorited
func (s *FavoriteStore) FavoriteIDs(ctx context.Context, userID int64, saleIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(saleIDs))
	if len(saleIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT garage_sale_id FROM user_favorites
		WHERE user_id = $1 AND garage_sale_id = ANY($2)
	`, userID, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning favorite: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}
