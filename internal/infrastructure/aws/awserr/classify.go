// Package awserr maps AWS API error codes onto the domain sentinels.
package awserr

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"retrieval-agent/internal/domain/entity"
)

var notFoundCodes = map[string]error{
	"ResourceNotFoundException": entity.ErrSecretNotFound,
	"ParameterNotFound":         entity.ErrSecretNotFound,
	"NoSuchKey":                 entity.ErrObjectNotFound,
	"NoSuchBucket":              entity.ErrObjectNotFound,
	"NotFound":                  entity.ErrObjectNotFound,
}

var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
}

// Code returns the AWS error code, or "" for non-API errors.
func Code(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// Classify wraps err with a domain sentinel and a readable description of
// what was being accessed.
func Classify(err error, what string) error {
	if err == nil {
		return nil
	}
	code := Code(err)
	if sentinel, ok := notFoundCodes[code]; ok {
		return fmt.Errorf("%w: %s: %w", sentinel, what, err)
	}
	if accessDeniedCodes[code] {
		return fmt.Errorf("%w to %s - check IAM permissions: %w", entity.ErrAccessDenied, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
