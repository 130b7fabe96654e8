package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"chancebackend/internal/delivery/http/helpers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/domain"
)

// EditProfileRequest is the request body for PATCH /api/profile/edit.
// All fields optional; omitted fields are unchanged.
type EditProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	City      *string `json:"city"`
	Age       *int    `json:"age"`
	Sex       *string `json:"sex"`
	Email     *string `json:"email"`
}

// Validate implements Validator.
func (e EditProfileRequest) Validate() []string {
	var errs []string
	if e.Role != nil && !domain.ValidRole(*e.Role) {
		errs = append(errs, `role must be "leader" or "participant"`)
	}
	if e.Age != nil && *e.Age <= 0 {
		errs = append(errs, "age must be a positive number")
	}
	if e.Sex != nil && !domain.ValidSex(*e.Sex) {
		errs = append(errs, `sex must be "male" or "female"`)
	}
	if e.Email != nil && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(*e.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// ChangePasswordRequest is the request body for PATCH /api/profile/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate implements Validator.
func (c ChangePasswordRequest) Validate() []string {
	var errs []string
	if c.OldPassword == "" {
		errs = append(errs, "old_password is required")
	}
	if c.NewPassword == "" {
		errs = append(errs, "new_password is required")
	}
	return errs
}

// ChangePasswordResponse is the data payload for a successful password change.
type ChangePasswordResponse struct {
	Message string `json:"message"`
}

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{Logger: logger, Service: svc}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Description Returns the caller's own record. The credential hash is never included.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.Get(r.Context(), userID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// EditProfile godoc
// @Summary Edit the authenticated user's profile
// @Description Partial update of the caller's own record. Omitted fields are unchanged; the password is not editable here.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EditProfileRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/profile/edit [patch]
func (c *ProfileController) EditProfile(w http.ResponseWriter, r *http.Request) {
	var req EditProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		City:      req.City,
		Age:       req.Age,
		Sex:       req.Sex,
		Email:     req.Email,
	}
	user, err := c.Service.Edit(r.Context(), userID, upd)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Description Verifies the old password and stores the new one if it satisfies the strength policy.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (wrong old password)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/profile/change-password [patch]
func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ChangePasswordResponse{Message: "Your password has been successfully changed!"})
}
