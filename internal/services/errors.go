package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses in the handler layer.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrStorage          = errors.New("storage failure")
	ErrUpstream         = errors.New("upstream provider failure")
)

// storageErr wraps an underlying store failure so the handler layer can map it
// to a 500 without leaking driver detail into responses.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

func upstreamErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidationFailed, err)
}
