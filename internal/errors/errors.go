package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrLocationNotFound is returned when a location does not exist or
	// belongs to another user.
	ErrLocationNotFound = errors.New("location not found")
	// ErrLocationExists is returned when a user already has an active
	// location with the same name.
	ErrLocationExists = errors.New("location already exists")
	// ErrLocationLimit is returned when a user hits the active location cap.
	ErrLocationLimit = errors.New("maximum number of locations reached")
	// ErrLocationInactive is returned when an entry references a disabled
	// or missing location.
	ErrLocationInactive = errors.New("one or more selected locations are inactive or do not exist")
	// ErrEntryNotFound is returned when no entry exists for the date.
	ErrEntryNotFound = errors.New("no entry for this date")
	// ErrEntryConflict is returned when a concurrent save for the same
	// (user, date) loses the race on the uniqueness constraint.
	ErrEntryConflict = errors.New("entry for this date was saved concurrently")
	// ErrInvalidDate is returned when the entry date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid entry date")
)

// ValidationError is a field-level rejection of a daily entry save. The
// form shows Message next to Field and the save is aborted with nothing
// written.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		httpErr := NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_FAILED")
		httpErr.Field = ve.Field
		return httpErr
	}

	switch err {
	case ErrLocationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOCATION_NOT_FOUND")
	case ErrLocationExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "LOCATION_EXISTS")
	case ErrLocationLimit:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LOCATION_LIMIT")
	case ErrLocationInactive:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LOCATION_INACTIVE")
	case ErrEntryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case ErrEntryConflict:
		return NewHTTPError(http.StatusConflict, err.Error(), "ENTRY_CONFLICT")
	case ErrInvalidDate:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
