package service

import (
	"errors"

	"github.com/forgo/atria/api/internal/model"
)

// Service-level sentinel errors. Handlers map these onto HTTP problem
// responses with errors.Is.
var (
	// ErrGroupNotFound indicates the requested interest group does not exist
	ErrGroupNotFound = errors.New("interest group not found")

	// ErrGroupNameTaken indicates another group already uses the requested name
	ErrGroupNameTaken = errors.New("interest group name already exists")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the requested user does not exist
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries field-level validation failures out of a service
// so handlers can render them as a problem response.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
