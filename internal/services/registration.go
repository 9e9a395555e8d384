package services

import (
	"context"
	"fmt"
	"time"

	"travelagency/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	clientRepo       domain.ClientRepository
	contextTimeout   time.Duration
	now              func() time.Time
}

func NewRegistrationService(registrationRepo domain.RegistrationRepository, clientRepo domain.ClientRepository, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		clientRepo:       clientRepo,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

// Register adds the client to the trip. Trip existence, capacity and duplicate checks run
// in the repository under a lock on the trip row.
func (s *registrationService) Register(ctx context.Context, clientID, tripID int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("client exists: %w", err)
	}
	if !exists {
		return domain.ErrClientNotFound
	}

	reg := domain.NewRegistration(clientID, tripID, s.now().UTC())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return fmt.Errorf("register client %d for trip %d: %w", clientID, tripID, err)
	}
	return nil
}

func (s *registrationService) Unregister(ctx context.Context, clientID, tripID int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.Delete(ctx, clientID, tripID); err != nil {
		return fmt.Errorf("unregister client %d from trip %d: %w", clientID, tripID, err)
	}
	return nil
}
