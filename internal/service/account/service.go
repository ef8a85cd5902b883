// internal/service/account/service.go

package account

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
)

// Store defines the storage interface for users and usage
type Store interface {
	GetUser(ctx context.Context, id int64) (*account.User, error)
	UsedInMonth(ctx context.Context, userID int64, month string) (int, error)
	ReserveSlot(ctx context.Context, userID int64, month string, limit int) (int, bool, error)
	ReleaseSlot(ctx context.Context, userID int64, month string) error
}

// Service enforces monthly listing quotas
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new account service
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) month() string {
	return account.MonthKey(s.now().UTC())
}

// Usage returns the user's consumption for the current month
func (s *Service) Usage(ctx context.Context, userID int64) (*account.Usage, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	month := s.month()
	used, err := s.store.UsedInMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("error loading usage: %w", err)
	}

	usage := account.NewUsage(month, used, user.MonthlyLimit(), user.Tier)
	return &usage, nil
}

// Limits returns the tier allowances of the user
func (s *Service) Limits(ctx context.Context, userID int64) (account.Limits, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return account.Limits{}, fmt.Errorf("error loading user: %w", err)
	}
	limits := account.LimitsFor(user.Tier)
	limits.MonthlySales = user.MonthlyLimit()
	return limits, nil
}

// Reserve claims one listing slot for the current month. The check and the
// increment happen in a single statement so concurrent creates cannot overshoot.
func (s *Service) Reserve(ctx context.Context, userID int64) (*account.Reservation, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	month := s.month()
	limit := user.MonthlyLimit()
	used, ok, err := s.store.ReserveSlot(ctx, userID, month, limit)
	if err != nil {
		return nil, fmt.Errorf("error reserving slot: %w", err)
	}
	if !ok {
		s.logger.Info("monthly limit reached",
			zap.Int64("user_id", userID),
			zap.String("month", month),
			zap.Int("limit", limit),
		)
		return nil, account.ErrLimitReached
	}

	return &account.Reservation{UserID: userID, Month: month, Used: used}, nil
}

// Release returns a reserved slot
func (s *Service) Release(ctx context.Context, r *account.Reservation) error {
	if r == nil {
		return nil
	}
	if err := s.store.ReleaseSlot(ctx, r.UserID, r.Month); err != nil {
		return fmt.Errorf("error releasing slot: %w", err)
	}
	return nil
}
