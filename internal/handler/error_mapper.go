package handler

import (
	"errors"

	"github.com/forgo/atria/api/internal/model"
	"github.com/forgo/atria/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling so every handler renders the same status
// codes for the same failures.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var verr *service.ValidationError

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrGroupNotFound):
		return model.NewNotFoundError("Interest Group Does Not Exist")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user not found")

	// ===== Validation Errors → 422 =====
	case errors.As(err, &verr):
		return model.NewValidationError(verr.Fields)

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrGroupNameTaken):
		return model.NewConflictError(err.Error())

	// ===== Everything Else → 500 =====
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
