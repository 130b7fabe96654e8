package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"chancebackend/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo    domain.UserRepository
	hasher      domain.PasswordHasher
	policy      domain.PasswordPolicy
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, policy domain.PasswordPolicy, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		hasher:      hasher,
		policy:      policy,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) SignUp(ctx context.Context, params domain.SignUpParams) (*domain.User, string, error) {
	user, err := createAccount(ctx, s.userRepo, s.hasher, s.policy, params)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// validateSignUpParams normalizes the email in place and checks all signup
// rules except email uniqueness.
func validateSignUpParams(p *domain.SignUpParams, policy domain.PasswordPolicy) error {
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.FirstName == "" || p.LastName == "" || p.Role == "" || p.City == "" ||
		p.Age == 0 || p.Sex == "" || p.Email == "" || p.Password == "" {
		return fmt.Errorf("%w: all fields must be filled", domain.ErrInvalidInput)
	}
	if p.Age < 0 {
		return fmt.Errorf("%w: age must be positive", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(p.Email) {
		return fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
	}
	if err := policy.Validate(p.Password); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !domain.ValidRole(p.Role) {
		return fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleLeader, domain.RoleParticipant)
	}
	if !domain.ValidSex(p.Sex) {
		return fmt.Errorf("%w: sex must be %q or %q", domain.ErrInvalidInput, domain.SexMale, domain.SexFemale)
	}
	return nil
}

// createAccount runs full signup validation, the uniqueness pre-check, and
// the credential transform, then stores the new user. Shared between signup
// and the owner add-participant flow.
func createAccount(ctx context.Context, userRepo domain.UserRepository, hasher domain.PasswordHasher, policy domain.PasswordPolicy, params domain.SignUpParams) (*domain.User, error) {
	if err := validateSignUpParams(&params, policy); err != nil {
		return nil, err
	}
	if _, err := userRepo.GetByEmail(ctx, params.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	hash, err := hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	user := domain.NewUser(
		strings.TrimSpace(params.FirstName),
		strings.TrimSpace(params.LastName),
		params.Role,
		strings.TrimSpace(params.City),
		params.Age,
		params.Sex,
		params.Email,
		hash,
		now, now,
	)
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
