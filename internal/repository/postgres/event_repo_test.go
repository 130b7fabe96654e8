package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chancebackend/internal/domain"
)

var eventColumnNames = []string{
	"id", "event_name", "country", "start_date", "end_date", "owner_id", "description", "capacity",
	"ticket_start_sale_date", "ticket_end_sale_date", "ticket_price", "ticket_currency",
	"age_min", "age_max", "logo", "external_id", "participant_ids", "created_at", "updated_at",
}

func testEvent() *domain.Event {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:             "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
		EventName:      "Go Meetup",
		Country:        "Belarus",
		StartDate:      time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC),
		OwnerID:        "11111111-1111-1111-1111-111111111111",
		ParticipantIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func eventRows(e *domain.Event, participantIDs string) *sqlmock.Rows {
	return sqlmock.NewRows(eventColumnNames).AddRow(
		e.ID, e.EventName, e.Country, e.StartDate, e.EndDate, e.OwnerID,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		[]byte(participantIDs), e.CreatedAt, e.UpdatedAt,
	)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns an id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO events`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		e := testEvent()
		e.ID = ""
		require.NoError(t, repo.Create(ctx, e))
		assert.NotEmpty(t, e.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO events`).
			WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		require.Error(t, repo.Create(ctx, testEvent()))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetByIDAndOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("success with null optionals", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := testEvent()
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id = \$1 AND owner_id = \$2`).
			WithArgs(want.ID, want.OwnerID).
			WillReturnRows(eventRows(want, "{u-1,u-2}"))

		repo := NewEventRepository(db)
		got, err := repo.GetByIDAndOwner(ctx, want.ID, want.OwnerID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Capacity)
		assert.Equal(t, []string{"u-1", "u-2"}, got.ParticipantIDs)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong owner reads as absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id = \$1 AND owner_id = \$2`).
			WithArgs("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", "someone-else").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByIDAndOwner(ctx, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", "someone-else")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_ListByOwnerID(t *testing.T) {
	ctx := context.Background()

	t.Run("no rows is an empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE owner_id = \$1 ORDER BY created_at DESC`).
			WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows(eventColumnNames))

		repo := NewEventRepository(db)
		events, err := repo.ListByOwnerID(ctx, "owner-1")
		require.NoError(t, err)
		require.NotNil(t, events)
		assert.Empty(t, events)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a partial SET clause", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := testEvent()
		want.EventName = "Renamed"
		name := "Renamed"
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), event_name = \$1`).
			WithArgs(name, want.ID, want.OwnerID).
			WillReturnRows(eventRows(want, "{}"))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, want.ID, want.OwnerID, &domain.EventUpdate{EventName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.EventName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update falls back to a plain read", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := testEvent()
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id = \$1 AND owner_id = \$2`).
			WithArgs(want.ID, want.OwnerID).
			WillReturnRows(eventRows(want, "{}"))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, want.ID, want.OwnerID, &domain.EventUpdate{})
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong owner reads as absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		name := "Renamed"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "ev-1", "someone-else", &domain.EventUpdate{EventName: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and clears memberships in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND owner_id = \$2`).
			WithArgs("ev-1", "owner-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE users SET event_ids = array_remove`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1", "owner-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong owner rolls back with not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND owner_id = \$2`).
			WithArgs("ev-1", "someone-else").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewEventRepository(db)
		err = repo.Delete(ctx, "ev-1", "someone-else")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
