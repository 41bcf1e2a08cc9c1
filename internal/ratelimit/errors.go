package ratelimit

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("usage counter unavailable")
	ErrLookup      = errors.New("tier lookup failed")
)

// counter store failure
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("usage counter %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// subscription store failure
type LookupError struct {
	UserID string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("tier lookup for user %s: %v", e.UserID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
