package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chancebackend/internal/domain"
)

type profileService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	policy   domain.PasswordPolicy
}

// NewProfileService creates a ProfileService for the authenticated user's own record.
func NewProfileService(userRepo domain.UserRepository, hasher domain.PasswordHasher, policy domain.PasswordPolicy) domain.ProfileService {
	return &profileService{userRepo: userRepo, hasher: hasher, policy: policy}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *profileService) Edit(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Role != nil {
		if !domain.ValidRole(*upd.Role) {
			return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleLeader, domain.RoleParticipant)
		}
		user.Role = *upd.Role
	}
	if upd.City != nil {
		user.City = strings.TrimSpace(*upd.City)
	}
	if upd.Age != nil {
		if *upd.Age <= 0 {
			return nil, fmt.Errorf("%w: age must be positive", domain.ErrInvalidInput)
		}
		user.Age = *upd.Age
	}
	if upd.Sex != nil {
		if !domain.ValidSex(*upd.Sex) {
			return nil, fmt.Errorf("%w: sex must be %q or %q", domain.ErrInvalidInput, domain.SexMale, domain.SexFemale)
		}
		user.Sex = *upd.Sex
	}
	if upd.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*upd.Email))
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *profileService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	if err := s.policy.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
