package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"chancebackend/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, event_name, country, start_date, end_date, owner_id, description, capacity,
		ticket_start_sale_date, ticket_end_sale_date, ticket_price, ticket_currency,
		age_min, age_max, logo, external_id, participant_ids, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		desc           sql.NullString
		capacity       sql.NullInt64
		saleStart      sql.NullTime
		saleEnd        sql.NullTime
		price          sql.NullFloat64
		currency       sql.NullString
		ageMin, ageMax sql.NullInt64
		logo           sql.NullString
		externalID     sql.NullInt64
		participantIDs pq.StringArray
	)
	err := row.Scan(
		&e.ID, &e.EventName, &e.Country, &e.StartDate, &e.EndDate, &e.OwnerID,
		&desc, &capacity, &saleStart, &saleEnd, &price, &currency,
		&ageMin, &ageMax, &logo, &externalID, &participantIDs, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		e.Description = &desc.String
	}
	if capacity.Valid {
		v := int(capacity.Int64)
		e.Capacity = &v
	}
	if saleStart.Valid {
		e.TicketStartSaleDate = &saleStart.Time
	}
	if saleEnd.Valid {
		e.TicketEndSaleDate = &saleEnd.Time
	}
	if price.Valid {
		e.TicketPrice = &price.Float64
	}
	if currency.Valid {
		e.TicketCurrency = &currency.String
	}
	if ageMin.Valid {
		v := int(ageMin.Int64)
		e.AgeMin = &v
	}
	if ageMax.Valid {
		v := int(ageMax.Int64)
		e.AgeMax = &v
	}
	if logo.Valid {
		e.Logo = &logo.String
	}
	if externalID.Valid {
		e.ExternalID = &externalID.Int64
	}
	e.ParticipantIDs = []string(participantIDs)
	if e.ParticipantIDs == nil {
		e.ParticipantIDs = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
		INSERT INTO events (id, event_name, country, start_date, end_date, owner_id, description, capacity,
			ticket_start_sale_date, ticket_end_sale_date, ticket_price, ticket_currency,
			age_min, age_max, logo, external_id, participant_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.EventName, e.Country, e.StartDate, e.EndDate, e.OwnerID,
		e.Description, e.Capacity, e.TicketStartSaleDate, e.TicketEndSaleDate,
		e.TicketPrice, e.TicketCurrency, e.AgeMin, e.AgeMax, e.Logo, e.ExternalID,
		pq.Array(e.ParticipantIDs), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND owner_id = $2`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id, ownerID string, upd *domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.EventName != nil {
		add("event_name", *upd.EventName)
	}
	if upd.Country != nil {
		add("country", *upd.Country)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.TicketStartSaleDate != nil {
		add("ticket_start_sale_date", *upd.TicketStartSaleDate)
	}
	if upd.TicketEndSaleDate != nil {
		add("ticket_end_sale_date", *upd.TicketEndSaleDate)
	}
	if upd.TicketPrice != nil {
		add("ticket_price", *upd.TicketPrice)
	}
	if upd.TicketCurrency != nil {
		add("ticket_currency", *upd.TicketCurrency)
	}
	if upd.AgeMin != nil {
		add("age_min", *upd.AgeMin)
	}
	if upd.AgeMax != nil {
		add("age_max", *upd.AgeMax)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByIDAndOwner(ctx, id, ownerID)
	}
	args = append(args, id, ownerID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND owner_id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n, n+1)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes the event and clears it from every participant's
// membership set in the same transaction.
func (r *eventRepository) Delete(ctx context.Context, id, ownerID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE users SET event_ids = array_remove(event_ids, $1::uuid), updated_at = NOW()
		WHERE $1::uuid = ANY(event_ids)
	`, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}
