package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an event does not exist or is not visible
// to the caller. Ownership misses are reported identically so that the
// existence of someone else's event never leaks.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned for validation failures on otherwise
// well-formed requests (bad enum value, date ordering, negative amounts).
var ErrInvalidInput = errors.New("invalid input")

// Ticket currencies accepted on event create and update.
const (
	CurrencyUSDollar = "usdollar"
	CurrencyEuro     = "euro"
	CurrencyBelRuble = "belruble"
)

// ValidCurrency reports whether currency is one of the accepted values.
func ValidCurrency(currency string) bool {
	switch currency {
	case CurrencyUSDollar, CurrencyEuro, CurrencyBelRuble:
		return true
	}
	return false
}

// Event represents an owned event with a time window, optional ticketing
// metadata, and its participant roster.
// swagger:model Event
type Event struct {
	ID                  string     `json:"id"`
	EventName           string     `json:"event_name"`
	Country             string     `json:"country"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             time.Time  `json:"end_date"`
	OwnerID             string     `json:"owner_id"`
	Description         *string    `json:"description,omitempty"`
	Capacity            *int       `json:"capacity,omitempty"`
	TicketStartSaleDate *time.Time `json:"ticket_start_sale_date,omitempty"`
	TicketEndSaleDate   *time.Time `json:"ticket_end_sale_date,omitempty"`
	TicketPrice         *float64   `json:"ticket_price,omitempty"`
	TicketCurrency      *string    `json:"ticket_currency,omitempty"`
	AgeMin              *int       `json:"age_min,omitempty"`
	AgeMax              *int       `json:"age_max,omitempty"`
	Logo                *string    `json:"logo,omitempty"`
	ExternalID          *int64     `json:"external_id,omitempty"`
	ParticipantIDs      []string   `json:"participant_ids"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// EventInput carries the attributes accepted when creating an event.
// Optional fields are nil when absent.
type EventInput struct {
	EventName           string
	Country             string
	StartDate           time.Time
	EndDate             time.Time
	Description         *string
	Capacity            *int
	TicketStartSaleDate *time.Time
	TicketEndSaleDate   *time.Time
	TicketPrice         *float64
	TicketCurrency      *string
	AgeMin              *int
	AgeMax              *int
	Logo                *string
	ExternalID          *int64
}

// EventUpdate carries the optional fields of a partial event update.
// Nil means "leave unchanged". The owner is deliberately absent: it is
// immutable after creation.
type EventUpdate struct {
	EventName           *string
	Country             *string
	StartDate           *time.Time
	EndDate             *time.Time
	Description         *string
	Capacity            *int
	TicketStartSaleDate *time.Time
	TicketEndSaleDate   *time.Time
	TicketPrice         *float64
	TicketCurrency      *string
	AgeMin              *int
	AgeMax              *int
}

// EventRepository defines the interface for event storage.
// The AndOwner variants carry the ownership filter down to the query, so
// "absent" and "not owned" are indistinguishable to callers.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, id, ownerID string, upd *EventUpdate) (*Event, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// EventService defines owner-facing event operations.
type EventService interface {
	Create(ctx context.Context, ownerID string, input EventInput) (*Event, error)
	Get(ctx context.Context, ownerID, eventID string) (*Event, error)
	List(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, ownerID, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, ownerID, eventID string) error
	Import(ctx context.Context, ownerID, url, country string) (*Event, error)
}
