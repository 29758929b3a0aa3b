package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service error into the failure envelope.
// Validation problems and refused debits surface with their own message as a
// 400, missing resources as a 404 with notFoundMessage, and everything else
// as a 500 carrying only genericMessage.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, notFoundMessage, genericMessage string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(notFoundMessage))
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(genericMessage))
	}
}

// requireUserID extracts the authenticated user ID placed in the request
// context by the auth middleware, answering 401 itself when it is missing.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return "", false
	}
	return userID, true
}
