package domain

import (
	"context"
	"time"
)

// Trip represents an organised trip offered by the agency.
// swagger:model Trip
type Trip struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateFrom    time.Time `json:"dateFrom"`
	DateTo      time.Time `json:"dateTo"`
	MaxPeople   int       `json:"maxPeople"`
}

// Country is a destination a trip visits.
// swagger:model Country
type Country struct {
	Name string `json:"name"`
}

// TripCountryRow is one row of the trip ⋈ country_trip ⋈ country outer join.
// CountryName is nil for trips without any country.
type TripCountryRow struct {
	Trip        Trip
	CountryName *string
}

// TripView is a trip with its countries, shaped for API consumers.
// swagger:model TripView
type TripView struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	DateRangeFrom DayMonthYear `json:"dateRangeFrom"`
	DateRangeTo   DayMonthYear `json:"dateRangeTo"`
	MaxPeople     int          `json:"maxPeople"`
	Countries     []Country    `json:"countries"`
}

// TripRepository defines read access to the trip catalog.
type TripRepository interface {
	// ListWithCountries returns the flat outer-join rows ordered by trip id.
	ListWithCountries(ctx context.Context) ([]*TripCountryRow, error)
}

// TripService defines the trip catalog operations.
type TripService interface {
	ListTrips(ctx context.Context) ([]*TripView, error)
}
