package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"chancebackend/internal/delivery/http/helpers"
	"chancebackend/internal/domain"
)

// emailRegexp matches a simple email format (local@domain with a TLD).
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /api/user/signup
type SignUpRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	City      string `json:"city"`
	Age       int    `json:"age"`
	Sex       string `json:"sex"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if s.FirstName == "" {
		errs = append(errs, "first_name is required")
	}
	if s.LastName == "" {
		errs = append(errs, "last_name is required")
	}
	if s.Role == "" {
		errs = append(errs, "role is required")
	} else if !domain.ValidRole(s.Role) {
		errs = append(errs, `role must be "leader" or "participant"`)
	}
	if s.City == "" {
		errs = append(errs, "city is required")
	}
	if s.Age <= 0 {
		errs = append(errs, "age must be a positive number")
	}
	if s.Sex == "" {
		errs = append(errs, "sex is required")
	} else if !domain.ValidSex(s.Sex) {
		errs = append(errs, `sex must be "male" or "female"`)
	}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

func (s SignUpRequest) params() domain.SignUpParams {
	return domain.SignUpParams{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Role:      s.Role,
		City:      s.City,
		Age:       s.Age,
		Sex:       s.Sex,
		Email:     s.Email,
		Password:  s.Password,
	}
}

// SignInRequest is the request body for POST /api/user/signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l SignInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthResponse is the response body for signup and signin.
type AuthResponse struct {
	Email     string `json:"email"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a new account. All eight attributes are required; the password must satisfy the strength policy. Returns the email and a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains email and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/user/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.SignUp(r.Context(), req.params())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AuthResponse{Email: user.Email, Token: token, TokenType: "Bearer"})
}

// SignIn godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns the email and a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains email and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/user/signin [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthResponse{Email: email, Token: token, TokenType: "Bearer"})
}
