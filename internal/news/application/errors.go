package application

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/newshub/news-service/internal/platform/apperror"
)

// AccessDeniedMessage is the fixed denial message surfaced to callers.
// Kept verbatim for wire compatibility with existing clients.
const AccessDeniedMessage = "You have no right to change the data of other users!"

// Error definitions for service operations
var (
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeAccessDenied,
		AccessDeniedMessage,
		http.StatusForbidden,
	)

	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeAccountInactive,
		"User account is not active!",
		http.StatusForbidden,
	)

	ErrInvalidTimePeriod = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidTimePeriod,
		"Start date must be earlier than end date!",
		http.StatusBadRequest,
	)

	ErrMissingCredential = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodeMissingCredential,
		"Cannot get user ID!",
		http.StatusUnauthorized,
	)
)

func newsNotFoundErr(id uuid.UUID) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeNewsNotFound,
		"News not found with "+id.String(),
		http.StatusNotFound,
	)
}

func commentNotFoundErr(id uuid.UUID) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeCommentNotFound,
		"Comment not found with "+id.String(),
		http.StatusNotFound,
	)
}

func userNotFoundErr(id uuid.UUID) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeUserNotFound,
		"User not found with "+id.String(),
		http.StatusNotFound,
	)
}

func gatewayUnavailableErr(inner error) *apperror.AppError {
	return apperror.Wrap(
		inner,
		apperror.CodeUpstreamFailure,
		apperror.BusinessCodeIdentityUnavailable,
		"User service is unavailable!",
		http.StatusServiceUnavailable,
	)
}

func invalidDataErr(inner error) *apperror.AppError {
	return apperror.Wrap(
		inner,
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		inner.Error(),
		http.StatusBadRequest,
	)
}

// isAppError reports whether err already carries boundary semantics
// and should pass through untranslated.
func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}

func internalErr(message string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		message,
		http.StatusInternalServerError,
	)
}
