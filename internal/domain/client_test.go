package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestClient_ValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		client  *Client
		wantMsg string
	}{
		{"valid", NewClient("Jan", "Kowalski", "jan@x.com", "123456789", "12345678901"), ""},
		{"blank first name", NewClient("  ", "Kowalski", "jan@x.com", "123456789", "12345678901"), "all fields are required"},
		{"empty pesel", NewClient("Jan", "Kowalski", "jan@x.com", "123456789", ""), "all fields are required"},
		{"blank wins over bad email", NewClient("Jan", "", "not-an-email", "123", "1"), "all fields are required"},
		{"missing at", NewClient("Jan", "Kowalski", "jan.x.com", "123456789", "12345678901"), "invalid email format"},
		{"no domain dot", NewClient("Jan", "Kowalski", "jan@x", "123456789", "12345678901"), "invalid email format"},
		{"two ats", NewClient("Jan", "Kowalski", "jan@a@x.com", "123456789", "12345678901"), "invalid email format"},
		{"whitespace", NewClient("Jan", "Kowalski", "jan k@x.com", "123456789", "12345678901"), "invalid email format"},
		{"no-break space in local part", NewClient("Jan", "Kowalski", "jan\u00a0k@x.com", "123456789", "12345678901"), "invalid email format"},
		{"trailing em space", NewClient("Jan", "Kowalski", "jan@x.com\u2003", "123456789", "12345678901"), "invalid email format"},
		{"ideographic space in domain", NewClient("Jan", "Kowalski", "jan@x\u3000y.com", "123456789", "12345678901"), "invalid email format"},
		{"bad pesel is not checked here", NewClient("Jan", "Kowalski", "jan@x.com", "123456789", "abc"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.ValidateContact()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			require.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidEmail_RejectsUnicodeWhitespace(t *testing.T) {
	for _, email := range []string{"jan\u00a0k@x.com", "jan@x.com\u2003", "jan@x\u3000y.com", "jan@x.com\u2028", "\u1680jan@x.com"} {
		require.False(t, ValidEmail(email), "%q", email)
	}
	require.True(t, ValidEmail("zażółć@przykład.pl"))
}

func TestValidPesel(t *testing.T) {
	require.True(t, ValidPesel("12345678901"))
	require.False(t, ValidPesel("1234567890"))
	require.False(t, ValidPesel("123456789012"))
	require.False(t, ValidPesel("1234567890a"))
	require.False(t, ValidPesel("１２３４５６７８９０１"), "full-width digits are not ASCII")
}

func TestValidPesel_AcceptsElevenDigits(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		s := rapid.StringMatching(`[0-9]{11}`).Draw(r, "pesel")
		if !ValidPesel(s) {
			r.Fatalf("rejected %q", s)
		}
	})
}

func TestValidPesel_RejectsOtherLengths(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(0, 30).Filter(func(n int) bool { return n != PeselLength }).Draw(r, "len")
		s := strings.Repeat("7", n)
		if ValidPesel(s) {
			r.Fatalf("accepted %q", s)
		}
	})
}

func TestValidPesel_RejectsNonDigits(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		prefix := rapid.StringMatching(`[0-9]{10}`).Draw(r, "prefix")
		bad := rapid.RuneFrom(nil, unicode.L, unicode.P).Draw(r, "bad")
		s := prefix + string(bad)
		if ValidPesel(s) {
			r.Fatalf("accepted %q", s)
		}
	})
}

func TestErrorCategories(t *testing.T) {
	require.True(t, errors.Is(ErrPeselTaken, ErrConflict))
	require.True(t, errors.Is(ErrDuplicateRegistration, ErrConflict))
	require.True(t, errors.Is(ErrClientNotFound, ErrNotFound))
	require.True(t, errors.Is(ErrTripNotFound, ErrNotFound))
	require.True(t, errors.Is(ErrRegistrationNotFound, ErrNotFound))
	require.False(t, errors.Is(ErrCapacityExceeded, ErrConflict))
	require.EqualError(t, ErrRegistrationNotFound, "registration not found")
}

func TestValidationMessage(t *testing.T) {
	err := fmt.Errorf("create client: %w", ValidationError("invalid email format"))
	msg, ok := ValidationMessage(err)
	require.True(t, ok)
	require.Equal(t, "invalid email format", msg)
	require.ErrorIs(t, err, ErrValidation)

	_, ok = ValidationMessage(ErrConflict)
	require.False(t, ok)
}
