package postgres

import (
	"context"
	"database/sql"

	"travelagency/internal/domain"
)

type tripRepository struct {
	DB *sql.DB
}

func NewTripRepository(db *sql.DB) domain.TripRepository {
	return &tripRepository{DB: db}
}

func (r *tripRepository) ListWithCountries(ctx context.Context) ([]*domain.TripCountryRow, error) {
	query, args, err := psql.
		Select("t.id_trip", "t.name", "t.description", "t.date_from", "t.date_to", "t.max_people", "c.name").
		From("trip t").
		LeftJoin("country_trip ct ON ct.id_trip = t.id_trip").
		LeftJoin("country c ON c.id_country = ct.id_country").
		OrderBy("t.id_trip", "c.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	out := make([]*domain.TripCountryRow, 0)
	for rows.Next() {
		row := &domain.TripCountryRow{}
		var country sql.NullString
		if err := rows.Scan(&row.Trip.ID, &row.Trip.Name, &row.Trip.Description, &row.Trip.DateFrom, &row.Trip.DateTo, &row.Trip.MaxPeople, &country); err != nil {
			return nil, storeError(err)
		}
		if country.Valid {
			row.CountryName = &country.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return out, nil
}
