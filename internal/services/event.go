package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chancebackend/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	fetcher        domain.EventFetcher
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository and
// external event fetcher.
func NewEventService(eventRepo domain.EventRepository, fetcher domain.EventFetcher, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		fetcher:        fetcher,
		contextTimeout: timeout,
	}
}

func validateEventInput(input *domain.EventInput) error {
	if input.EventName == "" || input.Country == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return fmt.Errorf("%w: all fields must be filled", domain.ErrInvalidInput)
	}
	if !input.StartDate.Before(input.EndDate) {
		return fmt.Errorf("%w: end date should be after start date", domain.ErrInvalidInput)
	}
	if input.TicketCurrency != nil && !domain.ValidCurrency(*input.TicketCurrency) {
		return fmt.Errorf("%w: wrong currency", domain.ErrInvalidInput)
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", domain.ErrInvalidInput)
	}
	if input.TicketPrice != nil && *input.TicketPrice < 0 {
		return fmt.Errorf("%w: ticket price must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, ownerID string, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		EventName:           input.EventName,
		Country:             input.Country,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		OwnerID:             ownerID,
		Description:         input.Description,
		Capacity:            input.Capacity,
		TicketStartSaleDate: input.TicketStartSaleDate,
		TicketEndSaleDate:   input.TicketEndSaleDate,
		TicketPrice:         input.TicketPrice,
		TicketCurrency:      input.TicketCurrency,
		AgeMin:              input.AgeMin,
		AgeMax:              input.AgeMax,
		Logo:                input.Logo,
		ExternalID:          input.ExternalID,
		ParticipantIDs:      []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, ownerID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	newStart := event.StartDate
	if upd.StartDate != nil {
		newStart = *upd.StartDate
	}
	newEnd := event.EndDate
	if upd.EndDate != nil {
		newEnd = *upd.EndDate
	}
	if !newStart.Before(newEnd) {
		return nil, fmt.Errorf("%w: end date should be after start date", domain.ErrInvalidInput)
	}
	if upd.TicketCurrency != nil && !domain.ValidCurrency(*upd.TicketCurrency) {
		return nil, fmt.Errorf("%w: wrong currency", domain.ErrInvalidInput)
	}
	if upd.Capacity != nil && *upd.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", domain.ErrInvalidInput)
	}
	if upd.TicketPrice != nil && *upd.TicketPrice < 0 {
		return nil, fmt.Errorf("%w: ticket price must not be negative", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.Update(ctx, eventID, ownerID, &upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, ownerID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Import fetches an external event description and creates an event from it.
// A single outbound request, no retries.
func (s *eventService) Import(ctx context.Context, ownerID, url, country string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if url == "" || country == "" {
		return nil, fmt.Errorf("%w: url and country are required", domain.ErrInvalidInput)
	}
	external, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, external.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", domain.ErrUpstream, external.StartDate)
	}
	end, err := time.Parse(time.RFC3339, external.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", domain.ErrUpstream, external.EndDate)
	}

	input := domain.EventInput{
		EventName: external.Name,
		Country:   country,
		StartDate: start,
		EndDate:   end,
	}
	if external.LandingLogoImage != "" {
		logo := external.LandingLogoImage
		input.Logo = &logo
	}
	if external.ID != 0 {
		id := external.ID
		input.ExternalID = &id
	}
	return s.Create(ctx, ownerID, input)
}
