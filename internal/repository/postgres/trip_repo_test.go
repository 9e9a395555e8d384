package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"travelagency/internal/domain"
)

func TestTripRepository_ListWithCountries(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	columns := []string{"id_trip", "name", "description", "date_from", "date_to", "max_people", "name"}

	t.Run("outer join rows keep trips without countries", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM trip t LEFT JOIN country_trip ct ON ct.id_trip = t.id_trip LEFT JOIN country c ON c.id_country = ct.id_country ORDER BY t.id_trip`)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Alpine Loop", "Hiking", from, to, 12, "Germany").
				AddRow(1, "Alpine Loop", "Hiking", from, to, 12, "Italy").
				AddRow(4, "Mystery Tour", "Unknown", from, to, 2, nil))

		rows, err := NewTripRepository(db).ListWithCountries(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		require.Equal(t, 1, rows[0].Trip.ID)
		require.Equal(t, from, rows[0].Trip.DateFrom)
		require.Equal(t, to, rows[0].Trip.DateTo)
		require.NotNil(t, rows[0].CountryName)
		require.Equal(t, "Germany", *rows[0].CountryName)
		require.Equal(t, "Italy", *rows[1].CountryName)

		require.Equal(t, 4, rows[2].Trip.ID)
		require.Equal(t, 2, rows[2].Trip.MaxPeople)
		require.Nil(t, rows[2].CountryName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM trip t`).WillReturnError(&pq.Error{Code: "57014"})

		_, err = NewTripRepository(db).ListWithCountries(ctx)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
