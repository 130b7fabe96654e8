package postgres

import (
	"context"
	"database/sql"

	"chancebackend/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

// NewMembershipRepository returns a MembershipRepository that writes both
// sides of the relationship inside a single transaction.
func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

func (r *membershipRepository) Add(ctx context.Context, eventID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The guards keep repeated adds from duplicating ids.
	_, err = tx.ExecContext(ctx, `
		UPDATE events SET participant_ids = array_append(participant_ids, $2::uuid), updated_at = NOW()
		WHERE id = $1 AND NOT ($2::uuid = ANY(participant_ids))
	`, eventID, userID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE users SET event_ids = array_append(event_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2 AND NOT ($1::uuid = ANY(event_ids))
	`, eventID, userID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *membershipRepository) Remove(ctx context.Context, eventID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE events SET participant_ids = array_remove(participant_ids, $2::uuid), updated_at = NOW()
		WHERE id = $1
	`, eventID, userID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE users SET event_ids = array_remove(event_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2
	`, eventID, userID)
	if err != nil {
		return err
	}
	return tx.Commit()
}
