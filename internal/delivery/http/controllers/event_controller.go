package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chancebackend/internal/delivery/http/helpers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/domain"
)

// CreateEventRequest is the request body for POST /api/event/create.
type CreateEventRequest struct {
	EventName           string     `json:"event_name"`
	Country             string     `json:"country"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             time.Time  `json:"end_date"`
	Description         *string    `json:"description"`
	Capacity            *int       `json:"capacity"`
	TicketStartSaleDate *time.Time `json:"ticket_start_sale_date"`
	TicketEndSaleDate   *time.Time `json:"ticket_end_sale_date"`
	TicketPrice         *float64   `json:"ticket_price"`
	TicketCurrency      *string    `json:"ticket_currency"`
	AgeMin              *int       `json:"age_min"`
	AgeMax              *int       `json:"age_max"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if c.Country == "" {
		errs = append(errs, "country is required")
	}
	if c.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if c.EndDate.IsZero() {
		errs = append(errs, "end_date is required")
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && !c.StartDate.Before(c.EndDate) {
		errs = append(errs, "end_date should be after start_date")
	}
	if c.TicketCurrency != nil && !domain.ValidCurrency(*c.TicketCurrency) {
		errs = append(errs, `ticket_currency must be "usdollar", "euro", or "belruble"`)
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if c.TicketPrice != nil && *c.TicketPrice < 0 {
		errs = append(errs, "ticket_price must not be negative")
	}
	return errs
}

func (c CreateEventRequest) input() domain.EventInput {
	return domain.EventInput{
		EventName:           c.EventName,
		Country:             c.Country,
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		Description:         c.Description,
		Capacity:            c.Capacity,
		TicketStartSaleDate: c.TicketStartSaleDate,
		TicketEndSaleDate:   c.TicketEndSaleDate,
		TicketPrice:         c.TicketPrice,
		TicketCurrency:      c.TicketCurrency,
		AgeMin:              c.AgeMin,
		AgeMax:              c.AgeMax,
	}
}

// UpdateEventRequest is the request body for PATCH /api/event/update/{id}.
// All fields optional; omitted fields are unchanged. The owner is not updatable.
type UpdateEventRequest struct {
	EventName           *string    `json:"event_name"`
	Country             *string    `json:"country"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	Description         *string    `json:"description"`
	Capacity            *int       `json:"capacity"`
	TicketStartSaleDate *time.Time `json:"ticket_start_sale_date"`
	TicketEndSaleDate   *time.Time `json:"ticket_end_sale_date"`
	TicketPrice         *float64   `json:"ticket_price"`
	TicketCurrency      *string    `json:"ticket_currency"`
	AgeMin              *int       `json:"age_min"`
	AgeMax              *int       `json:"age_max"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.TicketCurrency != nil && !domain.ValidCurrency(*u.TicketCurrency) {
		errs = append(errs, `ticket_currency must be "usdollar", "euro", or "belruble"`)
	}
	if u.Capacity != nil && *u.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if u.TicketPrice != nil && *u.TicketPrice < 0 {
		errs = append(errs, "ticket_price must not be negative")
	}
	return errs
}

func (u UpdateEventRequest) update() domain.EventUpdate {
	return domain.EventUpdate{
		EventName:           u.EventName,
		Country:             u.Country,
		StartDate:           u.StartDate,
		EndDate:             u.EndDate,
		Description:         u.Description,
		Capacity:            u.Capacity,
		TicketStartSaleDate: u.TicketStartSaleDate,
		TicketEndSaleDate:   u.TicketEndSaleDate,
		TicketPrice:         u.TicketPrice,
		TicketCurrency:      u.TicketCurrency,
		AgeMin:              u.AgeMin,
		AgeMax:              u.AgeMax,
	}
}

// ImportEventRequest is the request body for POST /api/event/import.
type ImportEventRequest struct {
	URL     string `json:"url"`
	Country string `json:"country"`
}

// Validate implements Validator.
func (i ImportEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(i.URL) == "" {
		errs = append(errs, "url is required")
	}
	if i.Country == "" {
		errs = append(errs, "country is required")
	}
	return errs
}

// ListEventsResponse is the data payload for GET /api/event.
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// DeleteEventResponse is the data payload for DELETE /api/event/delete/{id}.
type DeleteEventResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// ListEvents godoc
// @Summary List the caller's events
// @Description Returns all events owned by the authenticated user.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.List(r.Context(), ownerID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Events: events})
}

// GetEvent godoc
// @Summary Get one of the caller's events
// @Description Returns a single event. A non-owner gets 404 whether or not the event exists.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.Get(r.Context(), ownerID, eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event owned by the authenticated user. start_date must be strictly before end_date.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/create [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.Create(r.Context(), ownerID, req.input())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ImportEvent godoc
// @Summary Import an external event
// @Description Fetches an external event description from the given URL and creates an event from it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ImportEventRequest true "External event URL and country"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (including upstream fetch/parse failures)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/import [post]
func (c *EventController) ImportEvent(w http.ResponseWriter, r *http.Request) {
	var req ImportEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.Import(r.Context(), ownerID, req.URL, req.Country)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update of an owned event. Omitted fields are unchanged; the owner is never updatable.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/update/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.Update(r.Context(), ownerID, eventID, req.update())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an owned event and clears it from all participants' membership sets.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a deletion status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/delete/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), ownerID, eventID); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}
