// Package handlers implements the HTTP endpoints of the analytics API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps an application error to its HTTP status. Internal
// details never leak; only the code and message go out.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	message := "internal server error"
	if status < http.StatusInternalServerError {
		if appErr, ok := errors.AsAppError(err); ok {
			message = appErr.Message
		}
	}
	writeJSON(w, status, ErrorResponse{Code: code.String(), Message: message})
}

// parseLimit reads an optional bounded ?limit= query parameter.
func parseLimit(r *http.Request, def, max int) (*int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return &def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > max {
		return nil, errors.InvalidParam(fmt.Sprintf("limit must be an integer in [1, %d]", max))
	}
	return &limit, nil
}
