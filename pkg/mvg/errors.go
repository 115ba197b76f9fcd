package mvg

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error caused by a malformed station id
// or a query that does not resolve to a station
var ErrInvalidInput = errors.New("invalid input")

// APIError is returned for any failure talking to or parsing the MVG API
type APIError struct {
	Message string

	URL         string
	StatusCode  int
	ContentType string

	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newParseError(context string, err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Bad API call: Could not parse %s", context),
		Err:     err,
	}
}

func IsAPIError(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
