// Package handlers implements the HTTP handlers for the analysis gateway.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/BiasLens-Intelligence/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, statusCode int, code errors.ErrorCode, message string) {
	writeJSON(w, statusCode, ErrorResponse{Code: string(code), Message: message})
}

// writeAppError maps application errors to HTTP status codes via their
// error code.  Server-side errors are masked.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}
	writeError(w, status, code, message)
}

// decodeJSON decodes the request body into dst, bounding the body size.
func decodeJSON(r *http.Request, maxBytes int64, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "decoding request body")
	}
	return nil
}
