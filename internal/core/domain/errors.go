package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already in use")

	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleExists     = errors.New("task title already exists in this project")

	ErrInvalidID = errors.New("invalid id")
)

// ValidationError carries every field-level violation found in a payload.
type ValidationError struct {
	Errors []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Errors, "; ")
}

// InvalidIDError reports a malformed identifier in a named request parameter.
type InvalidIDError struct {
	Param string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("Invalid id parameter: %s", e.Param)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }
