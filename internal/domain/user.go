package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Roles a user can hold.
const (
	RoleLeader      = "leader"
	RoleParticipant = "participant"
)

// Sex values accepted on signup.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// ValidRole reports whether role is one of the accepted values.
func ValidRole(role string) bool {
	return role == RoleLeader || role == RoleParticipant
}

// ValidSex reports whether sex is one of the accepted values.
func ValidSex(sex string) bool {
	return sex == SexMale || sex == SexFemale
}

// User represents a registered user. PasswordHash is never serialized.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	City         string    `json:"city"`
	Age          int       `json:"age"`
	Sex          string    `json:"sex"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	EventIDs     []string  `json:"event_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(firstName, lastName, role, city string, age int, sex, email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		City:         city,
		Age:          age,
		Sex:          sex,
		Email:        email,
		PasswordHash: passwordHash,
		EventIDs:     []string{},
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PasswordHasher turns a plaintext password into a one-way digest and
// verifies candidates against it. Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// PasswordPolicy decides whether a plaintext password is acceptable.
type PasswordPolicy interface {
	Validate(password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SignUpParams carries the attributes required to create an account.
type SignUpParams struct {
	FirstName string
	LastName  string
	Role      string
	City      string
	Age       int
	Sex       string
	Email     string
	Password  string
}

// ProfileUpdate carries the optional fields of a profile edit.
// Nil means "leave unchanged". The password is not editable here.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Role      *string
	City      *string
	Age       *int
	Sex       *string
	Email     *string
}

// AuthService defines signup and login.
type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (*User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// ProfileService defines the business logic for the authenticated user's own record.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*User, error)
	Edit(ctx context.Context, userID string, upd ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
