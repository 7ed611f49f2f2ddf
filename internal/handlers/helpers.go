package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dinescout/internal/common"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", common.ErrorTypeBadRequest)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string, errorType string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status":     "error",
		"message":    message,
		"error_type": errorType,
	})
}

// WriteServiceError maps a service error to its HTTP status and error_type.
func WriteServiceError(w http.ResponseWriter, logger arbor.ILogger, err error) error {
	statusCode := common.HTTPStatusOf(err)
	errorType := common.ErrorTypeOf(err)

	message := err.Error()
	if errorType == common.ErrorTypeInternal {
		message = "Internal server error"
	}

	logger.Warn().
		Err(err).
		Int("status", statusCode).
		Str("error_type", errorType).
		Msg("Request failed")

	return WriteError(w, statusCode, message, errorType)
}

// DecodeJSON decodes a request body into v. Empty and malformed bodies
// are reported as *common.BadRequestError.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &common.BadRequestError{Message: "request body is required"}
		}
		return &common.BadRequestError{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

// roundTo1 rounds to one decimal place
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
