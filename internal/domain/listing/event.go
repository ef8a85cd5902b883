package listing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventsTopic is the subject prefix for garage sale events
const EventsTopic = "garagesales"

// EventType identifies what happened to a garage sale
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
	EventSwept   EventType = "swept"
)

// Event is published on the message bus when garage sales change
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	GarageSaleID int64     `json:"garageSaleId,omitempty"`
	OwnerID      int64     `json:"userId,omitempty"`
	Title        string    `json:"title,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	StartDate    Date      `json:"startDate"`
	Count        int64     `json:"count,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewEvent builds an event describing l
func NewEvent(t EventType, l *Listing) Event {
	e := Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
	}
	if l != nil {
		e.GarageSaleID = l.ID
		e.OwnerID = l.OwnerID
		e.Title = l.Title
		e.Latitude = l.Latitude
		e.Longitude = l.Longitude
		e.StartDate = l.StartDate
	}
	return e
}

// Subject returns the bus subject the event is published on
func (e Event) Subject() string {
	return fmt.Sprintf("%s.%s", EventsTopic, e.Type)
}
