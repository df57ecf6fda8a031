package handler

import (
	"errors"
	"net/http"

	"contacts-api/internal/logger"
	"contacts-api/internal/middleware"
	appErrors "contacts-api/pkg/errors"
	"contacts-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondWithError is the single place where domain errors become HTTP
// statuses. Nothing escapes past this boundary unmapped.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, "User already exists")
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, appErrors.ErrEmailNotConfirmed):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Email is not confirmed")
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient access rights")
	case errors.Is(err, appErrors.ErrInvalidEmailToken):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Invalid email verification token")
	case errors.Is(err, appErrors.ErrVerificationError):
		utils.ErrorResponse(c, http.StatusBadRequest, "Verification error")
	case errors.Is(err, appErrors.ErrContactNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Contact not found")
	case errors.Is(err, appErrors.ErrContactsEmpty):
		utils.ErrorResponse(c, http.StatusNotFound, "Contacts not found")
	case errors.Is(err, appErrors.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "User not found")
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "VALIDATION_ERROR":
				utils.ErrorResponse(c, http.StatusUnprocessableEntity, appErr.Message)
			default:
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			}
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
