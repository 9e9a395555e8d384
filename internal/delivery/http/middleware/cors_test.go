package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{" https://app.example.com/ ", ""}, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
	}{
		{"allowed origin", http.MethodGet, "https://app.example.com", http.StatusOK, true},
		{"other origin", http.MethodGet, "https://evil.example.com", http.StatusOK, false},
		{"preflight allowed", http.MethodOptions, "https://app.example.com", http.StatusNoContent, true},
		{"preflight other", http.MethodOptions, "https://evil.example.com", http.StatusNoContent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/trips", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
			if tt.method == http.MethodOptions && tt.wantAllowed {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PUT")
			}
			if tt.method == http.MethodGet && tt.wantAllowed {
				assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), "Location")
			}
		})
	}
}
