package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"chancebackend/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	getErr    error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range f.byID {
		if id != u.ID && existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	updateErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id, ownerID string, upd *domain.EventUpdate) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	e, ok := f.byID[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	if upd.EventName != nil {
		e.EventName = *upd.EventName
	}
	if upd.Country != nil {
		e.Country = *upd.Country
	}
	if upd.StartDate != nil {
		e.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		e.EndDate = *upd.EndDate
	}
	if upd.Description != nil {
		e.Description = upd.Description
	}
	if upd.Capacity != nil {
		e.Capacity = upd.Capacity
	}
	if upd.TicketStartSaleDate != nil {
		e.TicketStartSaleDate = upd.TicketStartSaleDate
	}
	if upd.TicketEndSaleDate != nil {
		e.TicketEndSaleDate = upd.TicketEndSaleDate
	}
	if upd.TicketPrice != nil {
		e.TicketPrice = upd.TicketPrice
	}
	if upd.TicketCurrency != nil {
		e.TicketCurrency = upd.TicketCurrency
	}
	if upd.AgeMin != nil {
		e.AgeMin = upd.AgeMin
	}
	if upd.AgeMax != nil {
		e.AgeMax = upd.AgeMax
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id, ownerID string) error {
	e, ok := f.byID[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeMembershipRepo mutates both fakes the way the real transactional
// repository mutates both tables.
type fakeMembershipRepo struct {
	users     *fakeUserRepo
	events    *fakeEventRepo
	addErr    error
	removeErr error
}

func newFakeMembershipRepo(users *fakeUserRepo, events *fakeEventRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{users: users, events: events}
}

func (f *fakeMembershipRepo) Add(ctx context.Context, eventID, userID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	if e, ok := f.events.byID[eventID]; ok && !slices.Contains(e.ParticipantIDs, userID) {
		e.ParticipantIDs = append(e.ParticipantIDs, userID)
	}
	if u, ok := f.users.byID[userID]; ok && !slices.Contains(u.EventIDs, eventID) {
		u.EventIDs = append(u.EventIDs, eventID)
	}
	return nil
}

func (f *fakeMembershipRepo) Remove(ctx context.Context, eventID, userID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if e, ok := f.events.byID[eventID]; ok {
		e.ParticipantIDs = slices.DeleteFunc(e.ParticipantIDs, func(id string) bool { return id == userID })
	}
	if u, ok := f.users.byID[userID]; ok {
		u.EventIDs = slices.DeleteFunc(u.EventIDs, func(id string) bool { return id == eventID })
	}
	return nil
}

// fakeHasher is a reversible stand-in for bcrypt.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

// fakePolicy accepts every password unless err is set.
type fakePolicy struct {
	err error
}

func (f *fakePolicy) Validate(password string) error {
	return f.err
}

// fakeIssuer issues predictable tokens.
type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

// fakeFetcher returns a canned external event.
type fakeFetcher struct {
	event *domain.ExternalEvent
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*domain.ExternalEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

// fakeEmailService records welcome sends.
type fakeEmailService struct {
	sent []*domain.WelcomeEmailData
	err  error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func validSignUpParams() domain.SignUpParams {
	return domain.SignUpParams{
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      domain.RoleLeader,
		City:      "Minsk",
		Age:       30,
		Sex:       domain.SexFemale,
		Email:     "alice@example.com",
		Password:  "Str0ng!pass",
	}
}
