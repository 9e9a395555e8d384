package domain

import (
	"context"
	"time"
)

// Registration represents a client's registration for a trip.
// swagger:model Registration
type Registration struct {
	ClientID     int        `json:"clientId"`
	TripID       int        `json:"tripId"`
	RegisteredAt time.Time  `json:"registeredAt"`
	PaymentDate  *time.Time `json:"paymentDate"`
}

// NewRegistration creates an unpaid Registration.
func NewRegistration(clientID, tripID int, registeredAt time.Time) *Registration {
	return &Registration{
		ClientID:     clientID,
		TripID:       tripID,
		RegisteredAt: registeredAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create checks trip existence, capacity and duplication and inserts reg,
	// all inside one transaction holding a lock on the trip row.
	// Returns ErrTripNotFound, ErrCapacityExceeded or ErrDuplicateRegistration.
	Create(ctx context.Context, reg *Registration) error
	// Delete removes the registration. Returns ErrRegistrationNotFound if there is none.
	Delete(ctx context.Context, clientID, tripID int) error
}

// RegistrationService defines the register/unregister workflow.
type RegistrationService interface {
	Register(ctx context.Context, clientID, tripID int) error
	Unregister(ctx context.Context, clientID, tripID int) error
}
