package domain

import (
	"context"
	"errors"
)

// ErrUpstream is returned when the external event source cannot be fetched
// or its payload cannot be parsed.
var ErrUpstream = errors.New("external event source error")

// EventFetcher fetches an external event description from a URL
// (or a test double).
type EventFetcher interface {
	Fetch(ctx context.Context, url string) (*ExternalEvent, error)
}

// ExternalEvent is the payload shape of an external event source.
type ExternalEvent struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	LandingLogoImage string `json:"landingLogoImage"`
}
