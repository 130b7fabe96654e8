package domain

import "context"

// MembershipRepository mutates the user/event relationship. Both sides of a
// membership change are written in a single transaction so that the
// participant set and the user's event set never diverge.
type MembershipRepository interface {
	// Add records userID as a participant of eventID and eventID as a
	// membership of userID. Adding an existing pair is a no-op.
	Add(ctx context.Context, eventID, userID string) error
	// Remove deletes the pair from both sides. Removing an absent pair is a no-op.
	Remove(ctx context.Context, eventID, userID string) error
}

// MembershipService keeps the event participant set and the user membership
// set mutually consistent across subscribe, add, and remove operations.
type MembershipService interface {
	// ToggleSubscription subscribes the user to the event, or unsubscribes
	// if the pair is already mutually present. Returns the updated user.
	ToggleSubscription(ctx context.Context, userID, eventID string) (*User, error)
	// AddParticipant creates a new account from params and enrolls it in the
	// owner's event. Returns the updated event.
	AddParticipant(ctx context.Context, ownerID, eventID string, params SignUpParams) (*Event, error)
	// RemoveParticipant removes the target from the owner's event. Removing
	// a non-participant is a no-op. Returns the updated event.
	RemoveParticipant(ctx context.Context, ownerID, eventID, targetUserID string) (*Event, error)
	// ListParticipants returns the users enrolled in the owner's event.
	ListParticipants(ctx context.Context, ownerID, eventID string) ([]*User, error)
}
