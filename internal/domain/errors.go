package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a launch aborted before reaching the backend.
	ErrValidation = errors.New("invalid launch configuration")
	// ErrLaunch marks a failure reported by the launch backend.
	ErrLaunch = errors.New("launch failed")
	// ErrPersistence marks a failed store read, write or flush.
	ErrPersistence = errors.New("persistence failed")
	// ErrLaunchInProgress is returned while another launch is in flight.
	ErrLaunchInProgress = errors.New("a launch is already in progress")
	// ErrRecordNotFound is returned when relaunching an unknown history id.
	ErrRecordNotFound = errors.New("history record not found")
)

// ValidationError describes a missing or malformed launch field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// LaunchError carries the backend message verbatim.
type LaunchError struct {
	Message string
}

func (e *LaunchError) Error() string { return e.Message }

func (e *LaunchError) Unwrap() error { return ErrLaunch }

// PersistenceError wraps a store failure with the operation that failed.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
