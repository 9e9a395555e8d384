package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelagency/internal/domain"
)

type clientService struct {
	clientRepo     domain.ClientRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewClientService creates a ClientService. emailService may be nil, in which case no
// welcome message is sent.
func NewClientService(clientRepo domain.ClientRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clientService{
		clientRepo:     clientRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *clientService) ClientExists(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.clientRepo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("client exists: %w", err)
	}
	return exists, nil
}

func (s *clientService) NationalIDExists(ctx context.Context, pesel string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.clientRepo.PeselExists(ctx, pesel)
	if err != nil {
		return false, fmt.Errorf("pesel exists: %w", err)
	}
	return exists, nil
}

// CreateClient checks, in order: required fields, email format, pesel uniqueness and
// pesel format. The first failing check decides the error.
func (s *clientService) CreateClient(ctx context.Context, client *domain.Client) (int, error) {
	if client == nil {
		return 0, domain.ValidationError("all fields are required")
	}
	if err := client.ValidateContact(); err != nil {
		return 0, err
	}

	taken, err := s.NationalIDExists(ctx, client.Pesel)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, domain.ErrPeselTaken
	}
	if !domain.ValidPesel(client.Pesel) {
		return 0, domain.ValidationError("pesel must be 11 digits")
	}

	if err := s.create(ctx, client); err != nil {
		return 0, err
	}
	s.sendWelcome(ctx, client)
	return client.ID, nil
}

func (s *clientService) create(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// sendWelcome never fails the request; the client row is already committed.
func (s *clientService) sendWelcome(ctx context.Context, client *domain.Client) {
	if s.emailService == nil {
		return
	}
	data := &domain.WelcomeMessageEmailData{
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		ClientID:  client.ID,
	}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "welcome email not sent", "client_id", client.ID, "error", err)
	}
}

func (s *clientService) GetTripsForClient(ctx context.Context, clientID int) ([]*domain.ClientTrip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrClientNotFound
	}

	trips, err := s.clientRepo.ListTrips(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client trips: %w", err)
	}
	if trips == nil {
		trips = []*domain.ClientTrip{}
	}
	return trips, nil
}
