package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"travelagency/internal/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeClientRepo implements domain.ClientRepository for tests.
type fakeClientRepo struct {
	byID        map[int]*domain.Client
	nextID      int
	trips       map[int][]*domain.ClientTrip
	creates     int
	existsErr   error
	createErr   error
	listErr     error
	peselLookup int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		byID:   make(map[int]*domain.Client),
		nextID: 1,
		trips:  make(map[int][]*domain.ClientTrip),
	}
}

func (f *fakeClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeClientRepo) PeselExists(ctx context.Context, pesel string) (bool, error) {
	f.peselLookup++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, c := range f.byID {
		if c.Pesel == pesel {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClientRepo) Create(ctx context.Context, c *domain.Client) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) ListTrips(ctx context.Context, clientID int) ([]*domain.ClientTrip, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.trips[clientID], nil
}

// fakeEmailService records welcome messages.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func validClient() *domain.Client {
	return domain.NewClient("Jan", "Kowalski", "jan@example.com", "+48 600 100 200", "90010112345")
}

func TestClientService_CreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns id and client exists", func(t *testing.T) {
		repo := newFakeClientRepo()
		mail := &fakeEmailService{}
		svc := NewClientService(repo, mail, discardLogger, time.Second)

		id, err := svc.CreateClient(ctx, validClient())
		require.NoError(t, err)
		assert.Equal(t, 1, id)

		exists, err := svc.ClientExists(ctx, id)
		require.NoError(t, err)
		assert.True(t, exists)

		taken, err := svc.NationalIDExists(ctx, "90010112345")
		require.NoError(t, err)
		assert.True(t, taken)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, "jan@example.com", mail.sent[0].Email)
		assert.Equal(t, id, mail.sent[0].ClientID)
	})

	t.Run("welcome email failure does not fail creation", func(t *testing.T) {
		repo := newFakeClientRepo()
		svc := NewClientService(repo, &fakeEmailService{err: errors.New("ses down")}, discardLogger, time.Second)

		id, err := svc.CreateClient(ctx, validClient())
		require.NoError(t, err)
		assert.Equal(t, 1, id)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("nil email service", func(t *testing.T) {
		svc := NewClientService(newFakeClientRepo(), nil, nil, time.Second)
		_, err := svc.CreateClient(ctx, validClient())
		require.NoError(t, err)
	})

	t.Run("existing pesel is a conflict and nothing is inserted", func(t *testing.T) {
		repo := newFakeClientRepo()
		svc := NewClientService(repo, nil, discardLogger, time.Second)
		_, err := svc.CreateClient(ctx, validClient())
		require.NoError(t, err)

		other := domain.NewClient("Anna", "Nowak", "anna@example.com", "123", "90010112345")
		_, err = svc.CreateClient(ctx, other)
		require.ErrorIs(t, err, domain.ErrConflict)
		require.ErrorIs(t, err, domain.ErrPeselTaken)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("store error on lookup", func(t *testing.T) {
		repo := newFakeClientRepo()
		repo.existsErr = domain.ErrStoreUnavailable
		svc := NewClientService(repo, nil, discardLogger, time.Second)
		_, err := svc.CreateClient(ctx, validClient())
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("concurrent create loses on insert", func(t *testing.T) {
		repo := newFakeClientRepo()
		repo.createErr = domain.ErrPeselTaken
		svc := NewClientService(repo, nil, discardLogger, time.Second)
		_, err := svc.CreateClient(ctx, validClient())
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("nil client", func(t *testing.T) {
		svc := NewClientService(newFakeClientRepo(), nil, discardLogger, time.Second)
		_, err := svc.CreateClient(ctx, nil)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestClientService_CreateClient_ValidationOrder(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		client     *domain.Client
		seedPesel  string
		wantErr    error
		wantMsg    string
		wantLookup bool
	}{
		{
			name:    "blank field wins over bad email",
			client:  domain.NewClient(" ", "Kowalski", "not-an-email", "123", "abc"),
			wantErr: domain.ErrValidation,
			wantMsg: "all fields are required",
		},
		{
			name:    "bad email wins over bad pesel",
			client:  domain.NewClient("Jan", "Kowalski", "jan@localhost", "123", "abc"),
			wantErr: domain.ErrValidation,
			wantMsg: "invalid email format",
		},
		{
			name:       "taken pesel wins over pesel format",
			client:     domain.NewClient("Jan", "Kowalski", "jan@example.com", "123", "12345"),
			seedPesel:  "12345",
			wantErr:    domain.ErrConflict,
			wantLookup: true,
		},
		{
			name:       "pesel format checked after lookup",
			client:     domain.NewClient("Jan", "Kowalski", "jan@example.com", "123", "1234567890a"),
			wantErr:    domain.ErrValidation,
			wantMsg:    "pesel must be 11 digits",
			wantLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeClientRepo()
			if tt.seedPesel != "" {
				repo.byID[99] = &domain.Client{ID: 99, Pesel: tt.seedPesel}
			}
			svc := NewClientService(repo, nil, discardLogger, time.Second)

			_, err := svc.CreateClient(ctx, tt.client)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
			assert.Equal(t, tt.wantLookup, repo.peselLookup > 0)
			assert.Equal(t, 0, repo.creates)
		})
	}
}

func TestClientService_CreateClient_PeselFormatProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		pesel := rapid.StringMatching(`[0-9a-z]{0,14}`).
			Filter(func(s string) bool { return !domain.ValidPesel(s) && s != "" }).
			Draw(r, "pesel")

		repo := newFakeClientRepo()
		svc := NewClientService(repo, nil, discardLogger, time.Second)
		c := domain.NewClient("Jan", "Kowalski", "jan@example.com", "123", pesel)

		_, err := svc.CreateClient(context.Background(), c)
		if !errors.Is(err, domain.ErrValidation) {
			r.Fatalf("pesel %q: expected validation error, got %v", pesel, err)
		}
		if repo.creates != 0 {
			r.Fatalf("pesel %q: client was inserted", pesel)
		}
	})
}

func TestClientService_GetTripsForClient(t *testing.T) {
	ctx := context.Background()
	paid := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	t.Run("client not found", func(t *testing.T) {
		svc := NewClientService(newFakeClientRepo(), nil, discardLogger, time.Second)
		_, err := svc.GetTripsForClient(ctx, 7)
		require.ErrorIs(t, err, domain.ErrClientNotFound)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no registrations is an empty list", func(t *testing.T) {
		repo := newFakeClientRepo()
		repo.byID[7] = validClient()
		svc := NewClientService(repo, nil, discardLogger, time.Second)

		trips, err := svc.GetTripsForClient(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, trips)
		assert.Empty(t, trips)
	})

	t.Run("returns registrations", func(t *testing.T) {
		repo := newFakeClientRepo()
		repo.byID[7] = validClient()
		repo.trips[7] = []*domain.ClientTrip{
			{Trip: &domain.Trip{ID: 1, Name: "Alpine Loop"}, RegisteredAt: paid.Add(-time.Hour)},
			{Trip: &domain.Trip{ID: 2, Name: "Iberian Coast"}, RegisteredAt: paid.Add(-time.Hour), PaymentDate: &paid},
		}
		svc := NewClientService(repo, nil, discardLogger, time.Second)

		trips, err := svc.GetTripsForClient(ctx, 7)
		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Nil(t, trips[0].PaymentDate)
		assert.Equal(t, paid, *trips[1].PaymentDate)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		repo := newFakeClientRepo()
		repo.byID[7] = validClient()
		repo.listErr = domain.ErrStoreUnavailable
		svc := NewClientService(repo, nil, discardLogger, time.Second)

		_, err := svc.GetTripsForClient(ctx, 7)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "list client trips")
	})
}
