package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"clinic-management-backend/internal/repository"
)

var (
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTooManyAttempts     = errors.New("too many login attempts, try again later")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrNoClinic            = errors.New("clinic not found for user")
)

// ValidationError carries field level messages for rules that need the database
type ValidationError struct {
	Fields map[string][]string
}

// Invalid builds a ValidationError with a single message
func Invalid(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Err returns nil when no field failed
func (v *ValidationError) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(v.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func selectedInvalid(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(field, "_", " "))
}

func alreadyTaken(field string) string {
	return fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " "))
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
