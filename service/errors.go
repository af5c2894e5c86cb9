package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredential    = errors.New("wrong password")
	ErrConfirmationRequired = errors.New("bulk deletion requires explicit confirmation")
)

// ValidationErrors reports every input check that failed.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// IneligibleError carries the reasons an applicant was turned down.
type IneligibleError struct {
	Reasons []string
}

func (e *IneligibleError) Error() string {
	return "applicant not eligible: " + strings.Join(e.Reasons, "; ")
}

// StorageError means the result was computed but could not be persisted.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to save application: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
