package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshguard/freshd/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondDomainError maps a rejected mutation onto an HTTP status.
// Invalid input is 422, conflicts with an invariant are 409, missing
// records are 404, capability-gated operations are 403.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSpaceNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrThresholdNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidDays),
		errors.Is(err, domain.ErrUnknownKind):
		respondError(c, http.StatusUnprocessableEntity, "validation_error", err.Error())
	case errors.Is(err, domain.ErrLastSpace),
		errors.Is(err, domain.ErrThresholdProtected):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrProRequired):
		respondError(c, http.StatusForbidden, "pro_required", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "mutation failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}
