package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"chancebackend/internal/domain"
)

type membershipService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	hasher         domain.PasswordHasher
	policy         domain.PasswordPolicy
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewMembershipService creates the service that keeps event participant
// sets and user membership sets mutually consistent.
func NewMembershipService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	hasher domain.PasswordHasher,
	policy domain.PasswordPolicy,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.MembershipService {
	return &membershipService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		hasher:         hasher,
		policy:         policy,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *membershipService) ToggleSubscription(ctx context.Context, userID, eventID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	subscribed := slices.Contains(event.ParticipantIDs, userID) && slices.Contains(user.EventIDs, eventID)
	if subscribed {
		err = s.membershipRepo.Remove(ctx, eventID, userID)
	} else {
		err = s.membershipRepo.Add(ctx, eventID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle subscription: %w", err)
	}

	updated, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return updated, nil
}

func (s *membershipService) AddParticipant(ctx context.Context, ownerID, eventID string, params domain.SignUpParams) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	user, err := createAccount(ctx, s.userRepo, s.hasher, s.policy, params)
	if err != nil {
		return nil, err
	}
	if err := s.membershipRepo.Add(ctx, eventID, user.ID); err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{
			Email:     user.Email,
			FirstName: user.FirstName,
			EventName: event.EventName,
		}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[MEMBERSHIP] welcome email to %s failed: %v", user.Email, err)
		}
	}

	updated, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return updated, nil
}

func (s *membershipService) RemoveParticipant(ctx context.Context, ownerID, eventID, targetUserID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Removing an id that is not a participant is a no-op, not an error.
	if err := s.membershipRepo.Remove(ctx, eventID, targetUserID); err != nil {
		return nil, fmt.Errorf("remove participant: %w", err)
	}

	updated, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return updated, nil
}

func (s *membershipService) ListParticipants(ctx context.Context, ownerID, eventID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	users, err := s.userRepo.ListByIDs(ctx, event.ParticipantIDs)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
