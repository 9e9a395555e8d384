package services

import (
	"context"
	"fmt"
	"time"

	"travelagency/internal/domain"
)

type tripService struct {
	tripRepo       domain.TripRepository
	contextTimeout time.Duration
}

func NewTripService(tripRepo domain.TripRepository, timeout time.Duration) domain.TripService {
	return &tripService{
		tripRepo:       tripRepo,
		contextTimeout: timeout,
	}
}

func (s *tripService) ListTrips(ctx context.Context) ([]*domain.TripView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.tripRepo.ListWithCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return foldTrips(rows), nil
}

// foldTrips groups joined trip/country rows into one view per trip, keeping the order in
// which trips first appear. Repeated country names are dropped and a trip without
// countries gets an empty list.
func foldTrips(rows []*domain.TripCountryRow) []*domain.TripView {
	views := make([]*domain.TripView, 0)
	byID := make(map[int]*domain.TripView)
	names := make(map[int]map[string]struct{})

	for _, row := range rows {
		if row == nil {
			continue
		}
		view, ok := byID[row.Trip.ID]
		if !ok {
			view = &domain.TripView{
				ID:            row.Trip.ID,
				Name:          row.Trip.Name,
				Description:   row.Trip.Description,
				DateRangeFrom: domain.NewDayMonthYear(row.Trip.DateFrom),
				DateRangeTo:   domain.NewDayMonthYear(row.Trip.DateTo),
				MaxPeople:     row.Trip.MaxPeople,
				Countries:     []domain.Country{},
			}
			byID[row.Trip.ID] = view
			names[row.Trip.ID] = make(map[string]struct{})
			views = append(views, view)
		}
		if row.CountryName == nil {
			continue
		}
		if _, seen := names[row.Trip.ID][*row.CountryName]; seen {
			continue
		}
		names[row.Trip.ID][*row.CountryName] = struct{}{}
		view.Countries = append(view.Countries, domain.Country{Name: *row.CountryName})
	}
	return views
}
