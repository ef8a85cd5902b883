package listing

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCity      = "Comox Valley"
	DefaultProvince  = "BC"
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

// CreateInput is the payload for a new garage sale
type CreateInput struct {
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
	IsMultiFamily     bool          `json:"isMultiFamily"`
	CashOnly          bool          `json:"cashOnly"`
	EarlyBirdsWelcome bool          `json:"earlyBirdsWelcome"`
	ContactPhone      string        `json:"contactPhone"`
	ContactEmail      string        `json:"contactEmail"`
	ContactMethod     ContactMethod `json:"contactMethod"`
	Categories        []string      `json:"categories"`
}

// Validate checks required fields and applies defaults in place
func (in *CreateInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)

	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidListing)
	}
	if in.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidListing)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidListing)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidListing)
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidListing)
	}

	if in.City == "" {
		in.City = DefaultCity
	}
	if in.Province == "" {
		in.Province = DefaultProvince
	}
	if in.StartTime == "" {
		in.StartTime = DefaultStartTime
	}
	if in.EndTime == "" {
		in.EndTime = DefaultEndTime
	}
	if err := validateClock(in.StartTime); err != nil {
		return err
	}
	if err := validateClock(in.EndTime); err != nil {
		return err
	}
	if in.ContactMethod == "" {
		in.ContactMethod = ContactEmail
	}
	return nil
}

// Listing builds the listing described by the input
func (in *CreateInput) Listing(ownerID int64) *Listing {
	return &Listing{
		OwnerID:           ownerID,
		Title:             in.Title,
		Description:       in.Description,
		Address:           in.Address,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		City:              in.City,
		Province:          in.Province,
		PostalCode:        in.PostalCode,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Status:            StatusActive,
		IsMultiFamily:     in.IsMultiFamily,
		CashOnly:          in.CashOnly,
		EarlyBirdsWelcome: in.EarlyBirdsWelcome,
		ContactPhone:      in.ContactPhone,
		ContactEmail:      in.ContactEmail,
		ContactMethod:     in.ContactMethod,
	}
}

// UpdateInput is a partial update; nil fields are left unchanged
type UpdateInput struct {
	Title             *string        `json:"title"`
	Description       *string        `json:"description"`
	Address           *string        `json:"address"`
	Latitude          *float64       `json:"latitude"`
	Longitude         *float64       `json:"longitude"`
	City              *string        `json:"city"`
	Province          *string        `json:"province"`
	PostalCode        *string        `json:"postalCode"`
	StartDate         *Date          `json:"startDate"`
	EndDate           *Date          `json:"endDate"`
	StartTime         *string        `json:"startTime"`
	EndTime           *string        `json:"endTime"`
	Status            *Status        `json:"status"`
	IsMultiFamily     *bool          `json:"isMultiFamily"`
	CashOnly          *bool          `json:"cashOnly"`
	EarlyBirdsWelcome *bool          `json:"earlyBirdsWelcome"`
	ContactPhone      *string        `json:"contactPhone"`
	ContactEmail      *string        `json:"contactEmail"`
	ContactMethod     *ContactMethod `json:"contactMethod"`
	Categories        []string       `json:"categories"`
}

// Apply merges the patch into l and validates the result
func (u *UpdateInput) Apply(l *Listing) error {
	if u.Title != nil {
		l.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Address != nil {
		l.Address = strings.TrimSpace(*u.Address)
	}
	if u.Latitude != nil {
		l.Latitude = u.Latitude
	}
	if u.Longitude != nil {
		l.Longitude = u.Longitude
	}
	if u.City != nil {
		l.City = *u.City
	}
	if u.Province != nil {
		l.Province = *u.Province
	}
	if u.PostalCode != nil {
		l.PostalCode = *u.PostalCode
	}
	if u.StartDate != nil {
		l.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		l.EndDate = *u.EndDate
	}
	if u.StartTime != nil {
		l.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		l.EndTime = *u.EndTime
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.IsMultiFamily != nil {
		l.IsMultiFamily = *u.IsMultiFamily
	}
	if u.CashOnly != nil {
		l.CashOnly = *u.CashOnly
	}
	if u.EarlyBirdsWelcome != nil {
		l.EarlyBirdsWelcome = *u.EarlyBirdsWelcome
	}
	if u.ContactPhone != nil {
		l.ContactPhone = *u.ContactPhone
	}
	if u.ContactEmail != nil {
		l.ContactEmail = *u.ContactEmail
	}
	if u.ContactMethod != nil {
		l.ContactMethod = *u.ContactMethod
	}

	switch {
	case l.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidListing)
	case l.Address == "":
		return fmt.Errorf("%w: address is required", ErrInvalidListing)
	case l.EndDate.Before(l.StartDate):
		return fmt.Errorf("%w: end date is before start date", ErrInvalidListing)
	case !l.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidListing, l.Status)
	}
	if err := validateClock(l.StartTime); err != nil {
		return err
	}
	return validateClock(l.EndTime)
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidListing, s)
	}
	return nil
}
