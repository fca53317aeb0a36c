package entity

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRequest  = errors.New("invalid task request")
	ErrDocumentMissing = errors.New("document retrieval failed")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrObjectNotFound  = errors.New("object not found")
	ErrAccessDenied    = errors.New("access denied")
)

// ValidationError describes a rejected trigger payload.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidRequest.Error() + ": " + e.Reason
	}
	return ErrInvalidRequest.Error() + ": " + e.Reason + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
