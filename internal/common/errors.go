package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error type tags returned to API consumers in the error_type field
const (
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeBadRequest    = "bad_request"
	ErrorTypeProvider      = "provider_error"
	ErrorTypeTransport     = "transport_error"
	ErrorTypeInternal      = "internal_error"
)

// ConfigurationError reports a missing or invalid setting, such as an absent provider credential
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

// BadRequestError reports a missing or malformed request field
type BadRequestError struct {
	Field   string
	Message string
}

func (e *BadRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("bad request: %s: %s", e.Field, e.Message)
	}
	return "bad request: " + e.Message
}

// ProviderError reports a non-2xx response or a non-OK status from the places provider
type ProviderError struct {
	Status     string // Provider status, e.g. "REQUEST_DENIED"
	Message    string // Provider error_message or response body
	StatusCode int    // HTTP status code of the provider response
	Endpoint   string
}

func (e *ProviderError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("places API error: %s - %s (endpoint: %s)", e.Status, e.Message, e.Endpoint)
	}
	return fmt.Sprintf("places API returned status %d: %s (endpoint: %s)", e.StatusCode, e.Message, e.Endpoint)
}

// TransportError reports a network failure talking to the provider
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to call places API (endpoint: %s): %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorTypeOf returns the error_type tag for err
func ErrorTypeOf(err error) string {
	var configErr *ConfigurationError
	var badRequestErr *BadRequestError
	var providerErr *ProviderError
	var transportErr *TransportError

	switch {
	case errors.As(err, &configErr):
		return ErrorTypeConfiguration
	case errors.As(err, &badRequestErr):
		return ErrorTypeBadRequest
	case errors.As(err, &providerErr):
		return ErrorTypeProvider
	case errors.As(err, &transportErr):
		return ErrorTypeTransport
	default:
		return ErrorTypeInternal
	}
}

// HTTPStatusOf returns the HTTP status code an error is surfaced with
func HTTPStatusOf(err error) int {
	if ErrorTypeOf(err) == ErrorTypeBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
