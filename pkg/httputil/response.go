package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

// HeaderRequestID carries the request ID.
const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

// RequestID is middleware that assigns each request an ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// GetRequestID returns the request ID stored by [RequestID], or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail describes an error.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteError writes err as an error response. Errors without a code are
// reported as INTERNAL_ERROR with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code, msg = errors.ErrCodeInternal, "internal error"
	}
	WriteJSON(w, StatusCode(code), ErrorBody{
		Error:     ErrorDetail{Code: code, Message: msg},
		RequestID: GetRequestID(r.Context()),
	})
}

// StatusCode returns the HTTP status for an error code: 404 for NOT_FOUND,
// 400 for input errors, 422 when no path exists and 500 otherwise.
func StatusCode(code errors.Code) int {
	if code == errors.ErrCodeNotFound {
		return http.StatusNotFound
	}
	switch code.Class() {
	case errors.ClassInput:
		return http.StatusBadRequest
	case errors.ClassSearch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v, reading at most maxBytes.
// Unknown fields are rejected. Failures are INVALID_INPUT errors.
func DecodeJSON(r *http.Request, v any, maxBytes int64) error {
	body := io.Reader(r.Body)
	if maxBytes > 0 {
		body = io.LimitReader(r.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBytes)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "unexpected data after JSON body")
	}
	return nil
}
