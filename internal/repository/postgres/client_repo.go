package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"travelagency/internal/domain"
)

type clientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) domain.ClientRepository {
	return &clientRepository{DB: db}
}

func (r *clientRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client WHERE id_client = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, storeError(err)
	}
	return exists, nil
}

func (r *clientRepository) PeselExists(ctx context.Context, pesel string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client WHERE pesel = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, pesel).Scan(&exists); err != nil {
		return false, storeError(err)
	}
	return exists, nil
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `
		INSERT INTO client (first_name, last_name, email, telephone, pesel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_client
	`
	err := r.DB.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Telephone, c.Pesel).Scan(&c.ID)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.ErrPeselTaken
		}
		return storeError(err)
	}
	return nil
}

func (r *clientRepository) ListTrips(ctx context.Context, clientID int) ([]*domain.ClientTrip, error) {
	query, args, err := psql.
		Select("t.id_trip", "t.name", "t.description", "t.date_from", "t.date_to", "t.max_people", "ct.registered_at", "ct.payment_date").
		From("client_trip ct").
		Join("trip t ON t.id_trip = ct.id_trip").
		Where(sq.Eq{"ct.id_client": clientID}).
		OrderBy("t.id_trip").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	trips := make([]*domain.ClientTrip, 0)
	for rows.Next() {
		t := &domain.Trip{}
		var registeredAt time.Time
		var paymentDate sql.NullTime
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.DateFrom, &t.DateTo, &t.MaxPeople, &registeredAt, &paymentDate); err != nil {
			return nil, storeError(err)
		}
		ct := &domain.ClientTrip{Trip: t, RegisteredAt: registeredAt.UTC()}
		if paymentDate.Valid {
			paid := paymentDate.Time.UTC()
			ct.PaymentDate = &paid
		}
		trips = append(trips, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return trips, nil
}
