// internal/adapter/storage/listing_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

const listingColumns = `
	gs.id, gs.user_id, gs.title, gs.description, gs.address,
	gs.latitude, gs.longitude, gs.city, gs.province, gs.postal_code,
	gs.start_date, gs.end_date,
	to_char(gs.start_time, 'HH24:MI'), to_char(gs.end_time, 'HH24:MI'),
	gs.status, gs.is_multi_family, gs.cash_only, gs.early_birds_welcome,
	gs.contact_phone, gs.contact_email, gs.contact_method,
	gs.views_count, gs.created_at, gs.updated_at`

// ListingStore implements storage for garage sales
type ListingStore struct {
	db *pgxpool.Pool
}

// NewListingStore creates a new listing store
func NewListingStore(db *pgxpool.Pool) *ListingStore {
	return &ListingStore{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row scanner) (*listing.Listing, error) {
	var l listing.Listing
	var start, end time.Time
	var status, contactMethod string

	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Title,
		&l.Description,
		&l.Address,
		&l.Latitude,
		&l.Longitude,
		&l.City,
		&l.Province,
		&l.PostalCode,
		&start,
		&end,
		&l.StartTime,
		&l.EndTime,
		&status,
		&l.IsMultiFamily,
		&l.CashOnly,
		&l.EarlyBirdsWelcome,
		&l.ContactPhone,
		&l.ContactEmail,
		&contactMethod,
		&l.ViewsCount,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.StartDate = listing.DateOf(start)
	l.EndDate = listing.DateOf(end)
	l.Status = listing.Status(status)
	l.ContactMethod = listing.ContactMethod(contactMethod)
	l.Categories = []listing.Category{}

	return &l, nil
}

// queryListings runs a listing query and attaches categories to every row
func (s *ListingStore) queryListings(ctx context.Context, query string, args ...interface{}) ([]listing.Listing, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	listings := []listing.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning garage sale: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating garage sales: %w", err)
	}

	if err := s.attachCategories(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ListingStore) attachCategories(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	ids := make([]int64, len(listings))
	index := make(map[int64]int, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
		index[l.ID] = i
	}

	rows, err := s.db.Query(ctx, `
		SELECT gsc.garage_sale_id, `+categoryColumns+`
		FROM garage_sale_categories gsc
		JOIN categories c ON c.id = gsc.category_id
		WHERE gsc.garage_sale_id = ANY($1)
		ORDER BY c.sort_order, c.name
	`, ids)
	if err != nil {
		return fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID int64
		var c listing.Category
		if err := rows.Scan(&saleID, &c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.SortOrder); err != nil {
			return fmt.Errorf("error scanning category: %w", err)
		}
		if i, ok := index[saleID]; ok {
			listings[i].Categories = append(listings[i].Categories, c)
		}
	}
	return rows.Err()
}

// FindCandidates returns non-draft, non-cancelled listings ending on or after today
func (s *ListingStore) FindCandidates(ctx context.Context, today listing.Date) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM garage_sales gs
		WHERE gs.status IN ('scheduled', 'active', 'completed')
		  AND gs.end_date >= $1
		ORDER BY gs.start_date, gs.start_time, gs.id`

	return s.queryListings(ctx, query, today.Time())
}

// FindAll returns every listing
func (s *ListingStore) FindAll(ctx context.Context) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM garage_sales gs
		ORDER BY gs.id`

	return s.queryListings(ctx, query)
}

// ListByOwner returns all listings of an owner, newest first
func (s *ListingStore) ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM garage_sales gs
		WHERE gs.user_id = $1
		ORDER BY gs.created_at DESC, gs.id DESC`

	return s.queryListings(ctx, query, ownerID)
}

// GetListing retrieves a listing by ID
func (s *ListingStore) GetListing(ctx context.Context, id int64) (*listing.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM garage_sales gs
		WHERE gs.id = $1`

	l, err := scanListing(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, listing.ErrNotFound
		}
		return nil, fmt.Errorf("error querying garage sale: %w", err)
	}

	single := []listing.Listing{*l}
	if err := s.attachCategories(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// CreateListing inserts a listing and its category links. ID and timestamps are set on l.
func (s *ListingStore) CreateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO garage_sales (
			user_id, title, description, address, latitude, longitude,
			city, province, postal_code, start_date, end_date,
			start_time, end_time, status,
			is_multi_family, cash_only, early_birds_welcome,
			contact_phone, contact_email, contact_method
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12::text::time, $13::text::time, $14,
			$15, $16, $17,
			$18, $19, $20
		)
		RETURNING id, created_at, updated_at
	`,
		l.OwnerID, l.Title, l.Description, l.Address, l.Latitude, l.Longitude,
		l.City, l.Province, l.PostalCode, l.StartDate.Time(), l.EndDate.Time(),
		l.StartTime, l.EndTime, string(l.Status),
		l.IsMultiFamily, l.CashOnly, l.EarlyBirdsWelcome,
		l.ContactPhone, l.ContactEmail, string(l.ContactMethod),
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting garage sale: %w", err)
	}

	if err := linkCategories(ctx, tx, l.ID, categoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing garage sale: %w", err)
	}
	return nil
}

// UpdateListing writes all mutable fields of l. When categoryIDs is non-nil the
// category links are replaced.
func (s *ListingStore) UpdateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE garage_sales SET
			title = $2, description = $3, address = $4, latitude = $5, longitude = $6,
			city = $7, province = $8, postal_code = $9, start_date = $10, end_date = $11,
			start_time = $12::text::time, end_time = $13::text::time, status = $14,
			is_multi_family = $15, cash_only = $16, early_birds_welcome = $17,
			contact_phone = $18, contact_email = $19, contact_method = $20,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`,
		l.ID, l.Title, l.Description, l.Address, l.Latitude, l.Longitude,
		l.City, l.Province, l.PostalCode, l.StartDate.Time(), l.EndDate.Time(),
		l.StartTime, l.EndTime, string(l.Status),
		l.IsMultiFamily, l.CashOnly, l.EarlyBirdsWelcome,
		l.ContactPhone, l.ContactEmail, string(l.ContactMethod),
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listing.ErrNotFound
		}
		return fmt.Errorf("error updating garage sale: %w", err)
	}

	if categoryIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM garage_sale_categories WHERE garage_sale_id = $1`, l.ID); err != nil {
			return fmt.Errorf("error clearing categories: %w", err)
		}
		if err := linkCategories(ctx, tx, l.ID, categoryIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing garage sale: %w", err)
	}
	return nil
}

func linkCategories(ctx context.Context, tx pgx.Tx, saleID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO garage_sale_categories (garage_sale_id, category_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, saleID, categoryIDs)
	if err != nil {
		return fmt.Errorf("error linking categories: %w", err)
	}
	return nil
}

// DeleteListing removes a listing; category links and favorites cascade
func (s *ListingStore) DeleteListing(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM garage_sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting garage sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}
	return nil
}

// IncrementViews atomically bumps the view counter and returns the new value
func (s *ListingStore) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := s.db.QueryRow(ctx, `
		UPDATE garage_sales SET views_count = views_count + 1
		WHERE id = $1
		RETURNING views_count
	`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, listing.ErrNotFound
		}
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}

// CompleteExpired marks active listings that ended before today as completed
func (s *ListingStore) CompleteExpired(ctx context.Context, today listing.Date) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE garage_sales SET status = 'completed', updated_at = now()
		WHERE status = 'active' AND end_date < $1
	`, today.Time())
	if err != nil {
		return 0, fmt.Errorf("error completing expired garage sales: %w", err)
	}
	return tag.RowsAffected(), nil
}
