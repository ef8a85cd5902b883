package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
)

// AccountStore implements storage for users and their monthly usage
type AccountStore struct {
	db *pgxpool.Pool
}

// NewAccountStore creates a new account store
func NewAccountStore(db *pgxpool.Pool) *AccountStore {
	return &AccountStore{db: db}
}

// GetUser retrieves a user by ID
func (s *AccountStore) GetUser(ctx context.Context, id int64) (*account.User, error) {
	var u account.User
	var tier string
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, subscription_tier, monthly_sales_limit
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &tier, &u.MonthlySalesLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	u.Tier = account.Tier(tier)
	return &u, nil
}

// UsedInMonth returns how many listings the user created in the month
func (s *AccountStore) UsedInMonth(ctx context.Context, userID int64, month string) (int, error) {
	var used int
	err := s.db.QueryRow(ctx, `
		SELECT sales_created FROM user_usage WHERE user_id = $1 AND month_year = $2
	`, userID, month).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error querying usage: %w", err)
	}
	return used, nil
}

// ReserveSlot increments the month's usage only while it is below limit.
// It returns the new count and false when the limit was already reached.
func (s *AccountStore) ReserveSlot(ctx context.Context, userID int64, month string, limit int) (int, bool, error) {
	var used int
	err := s.db.QueryRow(ctx, `
		INSERT INTO user_usage (user_id, month_year, sales_created)
		SELECT $1, $2, 1 WHERE $3 > 0
		ON CONFLICT (user_id, month_year) DO UPDATE
			SET sales_created = user_usage.sales_created + 1
			WHERE user_usage.sales_created < $3
		RETURNING sales_created
	`, userID, month, limit).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error reserving usage: %w", err)
	}
	return used, true, nil
}

// ReleaseSlot gives back a reserved slot when the listing could not be stored
func (s *AccountStore) ReleaseSlot(ctx context.Context, userID int64, month string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE user_usage SET sales_created = sales_created - 1
		WHERE user_id = $1 AND month_year = $2 AND sales_created > 0
	`, userID, month)
	if err != nil {
		return fmt.Errorf("error releasing usage: %w", err)
	}
	return nil
}
