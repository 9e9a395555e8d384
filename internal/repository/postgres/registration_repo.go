package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelagency/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Create locks the trip row first so concurrent registrations for the same
// trip run one after another and each sees the count committed before it.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var maxPeople int
		err := tx.QueryRowContext(ctx, `SELECT max_people FROM trip WHERE id_trip = $1 FOR UPDATE`, reg.TripID).
			Scan(&maxPeople)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrTripNotFound
			}
			return storeError(err)
		}

		var registered int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_trip WHERE id_trip = $1`, reg.TripID).
			Scan(&registered); err != nil {
			return storeError(err)
		}
		if registered >= maxPeople {
			return domain.ErrCapacityExceeded
		}

		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM client_trip WHERE id_client = $1 AND id_trip = $2)`,
			reg.ClientID, reg.TripID,
		).Scan(&exists); err != nil {
			return storeError(err)
		}
		if exists {
			return domain.ErrDuplicateRegistration
		}

		query := `
			INSERT INTO client_trip (id_client, id_trip, registered_at)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, reg.ClientID, reg.TripID, reg.RegisteredAt); err != nil {
			switch {
			case hasCode(err, uniqueViolation):
				return domain.ErrDuplicateRegistration
			case hasCode(err, foreignKeyViolation):
				return domain.ErrClientNotFound
			}
			return storeError(err)
		}
		return nil
	})
}

func (r *registrationRepository) Delete(ctx context.Context, clientID, tripID int) error {
	query := `DELETE FROM client_trip WHERE id_client = $1 AND id_trip = $2`
	result, err := r.DB.ExecContext(ctx, query, clientID, tripID)
	if err != nil {
		return storeError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeError(err)
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}
