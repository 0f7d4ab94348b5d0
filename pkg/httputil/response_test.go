package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidOffsetInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidConfig, http.StatusBadRequest},
		{errors.ErrCodeInvalidGeometry, http.StatusBadRequest},
		{errors.ErrCodeUnsupported, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeCoordinateNotFound, http.StatusUnprocessableEntity},
		{errors.ErrCodeUnreachableTarget, http.StatusUnprocessableEntity},
		{errors.ErrCodeDisconnectedGraph, http.StatusUnprocessableEntity},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.code); got != tt.want {
			t.Errorf("StatusCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(seen) != 36 || rec.Header().Get(HeaderRequestID) != seen {
		t.Errorf("generated id %q, header %q", seen, rec.Header().Get(HeaderRequestID))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "abc" {
		t.Errorf("incoming id not kept, got %q", seen)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errors.Code
		msg    string
	}{
		{"coded", errors.New(errors.ErrCodeInvalidOffsetInput, "offset distance must be nonzero"), 400, errors.ErrCodeInvalidOffsetInput, "offset distance must be nonzero"},
		{"wrapped", fmt.Errorf("compute: %w", errors.New(errors.ErrCodeDisconnectedGraph, "no path")), 422, errors.ErrCodeDisconnectedGraph, "no path"},
		{"plain", fmt.Errorf("disk on fire"), 500, errors.ErrCodeInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), tt.err)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code || body.Error.Message != tt.msg {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Distance float64 `json:"distance"`
	}
	tests := []struct {
		name    string
		body    string
		max     int64
		wantErr bool
	}{
		{"valid", `{"distance": 5}`, 0, false},
		{"unknown field", `{"distance": 5, "speed": 1}`, 0, true},
		{"malformed", `{"distance":`, 0, true},
		{"trailing data", `{"distance": 5} {}`, 0, true},
		{"too large", `{"distance": 5}`, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
			if err == nil && p.Distance != 5 {
				t.Errorf("Distance = %v", p.Distance)
			}
		})
	}
}
