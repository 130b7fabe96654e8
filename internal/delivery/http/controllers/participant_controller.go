package controllers

import (
	"log/slog"
	"net/http"

	"chancebackend/internal/delivery/http/helpers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/domain"
)

// ListParticipantsResponse is the data payload for GET /api/event/{id}/list.
type ListParticipantsResponse struct {
	Users []*domain.User `json:"users"`
}

// ParticipantController exposes the membership operations: subscribe toggle,
// roster add/remove, and roster listing.
type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewParticipantController(logger *slog.Logger, svc domain.MembershipService) *ParticipantController {
	return &ParticipantController{Logger: logger, Service: svc}
}

// ToggleSubscribe godoc
// @Summary Toggle subscription to an event
// @Description Subscribes the caller to the event, or unsubscribes if already subscribed. Returns the caller's updated record.
// @Tags membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/subscribe/{id} [patch]
func (c *ParticipantController) ToggleSubscribe(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.ToggleSubscription(r.Context(), userID, eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// AddParticipant godoc
// @Summary Add a new user to an event
// @Description Creates a new account from the given attributes and enrolls it in the owner's event. Returns the updated event.
// @Tags membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body SignUpRequest true "New participant's attributes"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/add-user [patch]
func (c *ParticipantController) AddParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.AddParticipant(r.Context(), ownerID, eventID, req.params())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListParticipants godoc
// @Summary List an event's participants
// @Description Returns all users enrolled in the owner's event. Credential material is never included.
// @Tags membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the users"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/list [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
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
	users, err := c.Service.ListParticipants(r.Context(), ownerID, eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListParticipantsResponse{Users: users})
}

// RemoveParticipant godoc
// @Summary Remove a user from an event
// @Description Removes the target user from the owner's event roster. Removing a non-participant is a no-op. Returns the updated event.
// @Tags membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param user_id path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/delete-user/{user_id} [delete]
func (c *ParticipantController) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	targetID := r.PathValue("user_id")
	if eventID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event or user id")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.RemoveParticipant(r.Context(), ownerID, eventID, targetID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
