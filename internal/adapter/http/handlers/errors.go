package handlers

import (
	"errors"
	"net/http"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errInvalidQuery   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameters", http.StatusBadRequest)
)

func mapQuoteError(err error) *pkg.AppError {
	var ve *entities.ValidationError
	switch {
	case errors.As(err, &ve):
		return pkg.NewDomainError("INVALID_REQUEST", ve.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrPermission):
		return pkg.NewDomainError("FORBIDDEN", "Operation not allowed for this user", err, http.StatusForbidden)
	case errors.Is(err, entities.ErrStateConflict):
		return pkg.NewDomainError("QUOTE_STATE_CONFLICT", "Operation not allowed in the current quote status", err, http.StatusConflict)
	case errors.Is(err, entities.ErrQuoteNotFound):
		return pkg.NewDomainError("QUOTE_NOT_FOUND", "Quote not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrUserNotFound):
		return pkg.NewDomainError("USER_NOT_FOUND", "User not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrCompanyNotFound):
		return pkg.NewDomainError("COMPANY_NOT_FOUND", "Providing company not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrNotificationMissing):
		return pkg.NewDomainError("NOTIFICATION_NOT_FOUND", "Notification not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// writeError attaches the cause for the request logger and writes the
// caller-safe body.
func writeError(c *gin.Context, err error) {
	appErr := mapQuoteError(err)
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
