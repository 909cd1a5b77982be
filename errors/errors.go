package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError          ErrorType = "VALIDATION_ERROR"
	ProviderError            ErrorType = "PROVIDER_ERROR"
	EmptyCompletionError     ErrorType = "EMPTY_COMPLETION"
	UnparseableResponseError ErrorType = "UNPARSEABLE_RESPONSE"
	NoDestinationFoundError  ErrorType = "NO_DESTINATION_FOUND"
	InvalidDestinationError  ErrorType = "INVALID_DESTINATION"
	ServerError              ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper constructors for the planning pipeline error taxonomy.

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ProviderFailure wraps a transport or API-level failure from the completion
// provider. The underlying message is preserved for the caller.
func ProviderFailure(err error, stage string) *AppError {
	return &AppError{
		Type:       ProviderError,
		Message:    fmt.Sprintf("Completion provider request failed during %s", stage),
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// EmptyCompletion signals that the provider returned a choice with no content.
func EmptyCompletion(detail string) *AppError {
	return &AppError{
		Type:       EmptyCompletionError,
		Message:    "Completion provider returned no content",
		Detail:     detail,
		HTTPStatus: http.StatusBadGateway,
	}
}

// UnparseableResponse signals that no structurally plausible payload could be
// recovered from the raw model text. The raw text is carried for diagnostics.
func UnparseableResponse(stage string, raw string) *AppError {
	return &AppError{
		Type:       UnparseableResponseError,
		Message:    fmt.Sprintf("Unable to extract a valid %s payload from the model response", stage),
		Detail:     fmt.Sprintf("Stage: %s, raw response: %s", stage, raw),
		HTTPStatus: http.StatusBadGateway,
	}
}

func NoDestinationFound() *AppError {
	return &AppError{
		Type:       NoDestinationFoundError,
		Message:    "No suitable destinations found",
		HTTPStatus: http.StatusBadGateway,
	}
}

func InvalidDestination(detail string) *AppError {
	return &AppError{
		Type:       InvalidDestinationError,
		Message:    "Invalid destination data returned from the model",
		Detail:     detail,
		HTTPStatus: http.StatusBadGateway,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case ProviderError, EmptyCompletionError, UnparseableResponseError,
		NoDestinationFoundError, InvalidDestinationError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
