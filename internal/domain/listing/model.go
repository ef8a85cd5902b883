// internal/domain/listing/model.go

package listing

import (
	"strings"
	"time"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
)

// Status represents the lifecycle status of a garage sale
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Visible reports whether listings in this status may be shown to the public
func (s Status) Visible() bool {
	return s != StatusDraft && s != StatusCancelled
}

// ContactMethod is how buyers should reach the seller
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactBoth  ContactMethod = "both"
	ContactNone  ContactMethod = "none"
)

// Category is a classification label attached to listings
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// Listing is a single garage sale posting
type Listing struct {
	ID                int64         `json:"id"`
	OwnerID           int64         `json:"userId"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Address           string        `json:"address"`
	Latitude          *float64      `json:"latitude"`
	Longitude         *float64      `json:"longitude"`
	City              string        `json:"city"`
	Province          string        `json:"province"`
	PostalCode        string        `json:"postalCode"`
	StartDate         Date          `json:"startDate"`
	EndDate           Date          `json:"endDate"`
	StartTime         string        `json:"startTime"`
	EndTime           string        `json:"endTime"`
	Status            Status        `json:"status"`
	IsMultiFamily     bool          `json:"isMultiFamily"`
	CashOnly          bool          `json:"cashOnly"`
	EarlyBirdsWelcome bool          `json:"earlyBirdsWelcome"`
	ContactPhone      string        `json:"contactPhone,omitempty"`
	ContactEmail      string        `json:"contactEmail,omitempty"`
	ContactMethod     ContactMethod `json:"contactMethod"`
	ViewsCount        int64         `json:"viewsCount"`
	Categories        []Category    `json:"categories"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`

	// Set per request
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
	IsFavorited bool     `json:"isFavorited"`
}

// Point returns the listing coordinates, if both are set
func (l *Listing) Point() (geo.Point, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *l.Latitude, Lng: *l.Longitude}, true
}

// HasCategory reports whether the listing carries any of ids
func (l *Listing) HasCategory(ids map[int64]struct{}) bool {
	for _, c := range l.Categories {
		if _, ok := ids[c.ID]; ok {
			return true
		}
	}
	return false
}

// CategoryIDs returns the ids of the attached categories
func (l *Listing) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(l.Categories))
	for _, c := range l.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// NormalizeSlug lowercases and trims a category slug
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
