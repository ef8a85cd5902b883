// internal/domain/account/model.go

package account

import (
	"errors"
	"time"
)

// Tier is a subscription level
type Tier string

const (
	TierRegistered Tier = "registered"
	TierPremium    Tier = "premium"
	TierBusiness   Tier = "business"
)

// Limits are the allowances granted by a tier
type Limits struct {
	MonthlySales    int  `json:"monthlySales"`
	MaxCategories   int  `json:"maxCategories"`
	ListingDuration int  `json:"listingDuration"` // days
	HasFavorites    bool `json:"hasFavorites"`
}

var tierLimits = map[Tier]Limits{
	TierRegistered: {MonthlySales: 2, MaxCategories: 5, ListingDuration: 14, HasFavorites: true},
	TierPremium:    {MonthlySales: 10, MaxCategories: 10, ListingDuration: 30, HasFavorites: true},
	TierBusiness:   {MonthlySales: 999, MaxCategories: 10, ListingDuration: 60, HasFavorites: true},
}

// LimitsFor returns the limits of a tier, falling back to registered
func LimitsFor(t Tier) Limits {
	if l, ok := tierLimits[t]; ok {
		return l
	}
	return tierLimits[TierRegistered]
}

// User is the subset of account data the service needs
type User struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Tier              Tier   `json:"subscriptionTier"`
	MonthlySalesLimit *int   `json:"monthlySalesLimit,omitempty"`
}

// MonthlyLimit is the user override when set, otherwise the tier limit
func (u User) MonthlyLimit() int {
	if u.MonthlySalesLimit != nil && *u.MonthlySalesLimit > 0 {
		return *u.MonthlySalesLimit
	}
	return LimitsFor(u.Tier).MonthlySales
}

// Usage is a user's listing consumption for one month
type Usage struct {
	Month     string `json:"month"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	CanCreate bool   `json:"canCreate"`
	Tier      Tier   `json:"tier"`
}

// NewUsage derives the remaining allowance
func NewUsage(month string, used, limit int, tier Tier) Usage {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Usage{
		Month:     month,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
		CanCreate: remaining > 0,
		Tier:      tier,
	}
}

// MonthKey formats the usage bucket of t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLimitReached = errors.New("monthly listing limit reached")
)

// Reservation is a claimed listing slot in a month's usage
type Reservation struct {
	UserID int64
	Month  string
	Used   int
}
