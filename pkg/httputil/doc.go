// Package httputil provides JSON request and response helpers for the
// offsetcurve HTTP API.
//
// # Errors
//
// Every error response has the same body:
//
//	{"error": {"code": "INVALID_OFFSET_INPUT", "message": "offset distance must be nonzero"}, "request_id": "..."}
//
// [StatusCode] maps error codes to HTTP status codes:
//
//   - INVALID_*, UNSUPPORTED: 400 Bad Request
//   - NOT_FOUND: 404 Not Found
//   - COORDINATE_NOT_FOUND, UNREACHABLE_TARGET, DISCONNECTED_GRAPH:
//     422 Unprocessable Entity (the input was well-formed but has no
//     resolvable curve)
//   - anything else: 500 Internal Server Error
//
// # Request IDs
//
// [RequestID] middleware assigns every request a UUID, echoes it in the
// X-Request-ID header and stores it in the request context for
// [GetRequestID]. An incoming X-Request-ID header is kept.
package httputil
