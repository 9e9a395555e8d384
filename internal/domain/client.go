package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// PeselLength is the number of digits in a Polish national identification number.
const PeselLength = 11

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client represents a travel agency customer.
// swagger:model Client
type Client struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}

// NewClient returns a new Client with the given fields. ID is set by the repository on create.
func NewClient(firstName, lastName, email, telephone, pesel string) *Client {
	return &Client{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Telephone: telephone,
		Pesel:     pesel,
	}
}

// ValidateContact checks the rules that need no store access: every field
// is non-blank and the email has a local@domain.tld shape. The pesel format
// is checked separately with ValidPesel because it is evaluated after the
// uniqueness lookup.
func (c *Client) ValidateContact() error {
	for _, f := range []string{c.FirstName, c.LastName, c.Email, c.Telephone, c.Pesel} {
		if strings.TrimSpace(f) == "" {
			return ValidationError("all fields are required")
		}
	}
	if !ValidEmail(c.Email) {
		return ValidationError("invalid email format")
	}
	return nil
}

// ValidEmail reports whether s has exactly one @, something before it and a
// dot-separated domain after it, with no whitespace anywhere.
func ValidEmail(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	return emailPattern.MatchString(s)
}

// ValidPesel reports whether s is exactly PeselLength ASCII digits.
func ValidPesel(s string) bool {
	if len(s) != PeselLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ClientTrip is a trip the client is registered to, together with that registration's details.
type ClientTrip struct {
	Trip         *Trip
	RegisteredAt time.Time
	PaymentDate  *time.Time
}

// ClientRepository defines storage operations for clients.
type ClientRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	PeselExists(ctx context.Context, pesel string) (bool, error)
	Create(ctx context.Context, client *Client) error
	ListTrips(ctx context.Context, clientID int) ([]*ClientTrip, error)
}

// ClientService defines the client registry operations.
type ClientService interface {
	ClientExists(ctx context.Context, id int) (bool, error)
	NationalIDExists(ctx context.Context, pesel string) (bool, error)
	// CreateClient validates and stores the client and returns its new id.
	CreateClient(ctx context.Context, client *Client) (int, error)
	GetTripsForClient(ctx context.Context, clientID int) ([]*ClientTrip, error)
}
