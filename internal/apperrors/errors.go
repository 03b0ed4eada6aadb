package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive or malformed monetary amount.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrGoalNotFound is returned both for missing goals and for goals owned by someone else.
var ErrGoalNotFound = fmt.Errorf("%w: savings goal", ErrNotFound)

// ErrConversion indicates that an amount could not be converted between currencies.
var ErrConversion = errors.New("currency conversion failed")

// ErrUnknownCurrency indicates a currency code absent from the rate snapshot.
var ErrUnknownCurrency = fmt.Errorf("%w: unknown currency", ErrConversion)

// ErrRateFetch indicates that the external rate provider could not be used.
var ErrRateFetch = errors.New("exchange rate fetch failed")

// ErrPersistence indicates that a storage operation failed and nothing was written.
var ErrPersistence = errors.New("persistence error")

// RateFetchError describes a failed call to the rate provider.
// StatusCode is zero when no HTTP response was received.
type RateFetchError struct {
	StatusCode int
	Err        error
}

func (e *RateFetchError) Error() string {
	if e.StatusCode != 0 && e.StatusCode != http.StatusOK {
		return fmt.Sprintf("%s: provider returned status %d", ErrRateFetch.Error(), e.StatusCode)
	}
	if e.Err == nil {
		return ErrRateFetch.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRateFetch.Error(), e.Err)
}

func (e *RateFetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRateFetch) match any RateFetchError.
func (e *RateFetchError) Is(target error) bool { return target == ErrRateFetch }

// NewRateFetchError wraps a provider failure.
func NewRateFetchError(statusCode int, err error) *RateFetchError {
	return &RateFetchError{StatusCode: statusCode, Err: err}
}

// NewPersistenceError wraps a storage failure so that callers can match ErrPersistence
// while the underlying driver error stays reachable through errors.Is/As.
func NewPersistenceError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrPersistence, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, msg, err)
}
