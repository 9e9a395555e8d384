package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

// maxBodyBytes caps request bodies; client payloads are a handful of short strings.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dest. Unknown fields and anything
// after the first JSON value are rejected. On failure it writes a 400 JSON error
// and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is required")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: must contain a single JSON object")
		return false
	}
	return true
}

// PathID parses the named path value as a positive integer id. On failure it writes
// a 400 response and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name+": "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}
