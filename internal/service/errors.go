package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFixture is returned when the fixture cannot be transformed.
	ErrMalformedFixture = errors.New("malformed fixture")

	// ErrInvalidArrival is returned when the estimated arrival is missing or unparseable.
	ErrInvalidArrival = errors.New("invalid estimated arrival")

	// ErrInvalidFare is returned when a fare bound is missing or not an integer amount.
	ErrInvalidFare = errors.New("invalid fare")
)

// FixtureError reports which fixture field made the transform fail.
// It matches both ErrMalformedFixture and the underlying cause with errors.Is.
type FixtureError struct {
	Field string
	Err   error
}

func (e *FixtureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrMalformedFixture, e.Field)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedFixture, e.Field, e.Err)
}

func (e *FixtureError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedFixture}
	}
	return []error{ErrMalformedFixture, e.Err}
}

func fixtureError(field string, err error) error {
	return &FixtureError{Field: field, Err: err}
}
