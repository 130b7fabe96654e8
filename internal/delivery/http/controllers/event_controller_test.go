package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chancebackend/internal/delivery/http/helpers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/domain"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event      *domain.Event
	events     []*domain.Event
	err        error
	lastInput  domain.EventInput
	lastUpdate domain.EventUpdate
	deletedID  string
}

func (f *fakeEventService) Create(ctx context.Context, ownerID string, input domain.EventInput) (*domain.Event, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) Get(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) List(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) Update(ctx context.Context, ownerID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdate = upd
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) Delete(ctx context.Context, ownerID, eventID string) error {
	f.deletedID = eventID
	return f.err
}

func (f *fakeEventService) Import(ctx context.Context, ownerID, url, country string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:             "ev-1",
		EventName:      "Go Meetup",
		Country:        "Belarus",
		StartDate:      time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC),
		OwnerID:        "user-1",
		ParticipantIDs: []string{},
	}
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"event_name":"Go Meetup","country":"Belarus","start_date":"2026-10-01T10:00:00Z","end_date":"2026-10-03T18:00:00Z"}`

	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvent()}
		ctrl := NewEventController(testLogger(), fake)
		rr := httptest.NewRecorder()

		ctrl.CreateEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/create", validBody))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Go Meetup", fake.lastInput.EventName)
	})

	t.Run("end date before start date", func(t *testing.T) {
		body := `{"event_name":"Go Meetup","country":"Belarus","start_date":"2026-10-03T18:00:00Z","end_date":"2026-10-01T10:00:00Z"}`
		ctrl := NewEventController(testLogger(), &fakeEventService{})
		rr := httptest.NewRecorder()

		ctrl.CreateEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/create", body))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Contains(t, envelope.Error.Message, "end_date should be after start_date")
	})

	t.Run("unknown currency", func(t *testing.T) {
		body := `{"event_name":"Go Meetup","country":"Belarus","start_date":"2026-10-01T10:00:00Z","end_date":"2026-10-03T18:00:00Z","ticket_currency":"rupee"}`
		ctrl := NewEventController(testLogger(), &fakeEventService{})
		rr := httptest.NewRecorder()

		ctrl.CreateEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/create", body))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{})
		req := httptest.NewRequest(http.MethodPost, "http://test/api/event/create", strings.NewReader(validBody))
		rr := httptest.NewRecorder()

		ctrl.CreateEvent(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{events: []*domain.Event{sampleEvent()}}
		ctrl := NewEventController(testLogger(), fake)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/api/event", ""))

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		events, ok := data["events"].([]any)
		require.True(t, ok)
		assert.Len(t, events, 1)
	})

	t.Run("empty list stays a list", func(t *testing.T) {
		fake := &fakeEventService{events: []*domain.Event{}}
		ctrl := NewEventController(testLogger(), fake)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/api/event", ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"events":[]`)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{event: sampleEvent()})
		req := authedRequest(http.MethodGet, "http://test/api/event/ev-1", "")
		req.SetPathValue("id", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{err: domain.ErrNotFound})
		req := authedRequest(http.MethodGet, "http://test/api/event/ev-9", "")
		req.SetPathValue("id", "ev-9")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("passes only the set fields", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvent()}
		ctrl := NewEventController(testLogger(), fake)
		req := authedRequest(http.MethodPatch, "http://test/api/event/update/ev-1", `{"event_name":"Renamed"}`)
		req.SetPathValue("id", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, fake.lastUpdate.EventName)
		assert.Equal(t, "Renamed", *fake.lastUpdate.EventName)
		assert.Nil(t, fake.lastUpdate.Country)
	})

	t.Run("owner change is rejected as an unknown field", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{event: sampleEvent()})
		req := authedRequest(http.MethodPatch, "http://test/api/event/update/ev-1", `{"owner_id":"attacker"}`)
		req.SetPathValue("id", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{err: domain.ErrNotFound})
		req := authedRequest(http.MethodPatch, "http://test/api/event/update/ev-9", `{"event_name":"Renamed"}`)
		req.SetPathValue("id", "ev-9")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{}
		ctrl := NewEventController(testLogger(), fake)
		req := authedRequest(http.MethodDelete, "http://test/api/event/delete/ev-1", "")
		req.SetPathValue("id", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.DeleteEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ev-1", fake.deletedID)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "deleted", data["status"])
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{err: domain.ErrNotFound})
		req := authedRequest(http.MethodDelete, "http://test/api/event/delete/ev-9", "")
		req.SetPathValue("id", "ev-9")
		rr := httptest.NewRecorder()

		ctrl.DeleteEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_ImportEvent(t *testing.T) {
	validBody := `{"url":"https://source.example.com/event/42","country":"Belarus"}`

	t.Run("success", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{event: sampleEvent()})
		rr := httptest.NewRecorder()

		ctrl.ImportEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/import", validBody))

		require.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{})
		rr := httptest.NewRecorder()

		ctrl.ImportEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/import", `{"country":"Belarus"}`))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("upstream failure maps to bad request", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{err: domain.ErrUpstream})
		rr := httptest.NewRecorder()

		ctrl.ImportEvent(rr, authedRequest(http.MethodPost, "http://test/api/event/import", validBody))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
