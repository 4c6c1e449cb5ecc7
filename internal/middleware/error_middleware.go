package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps an application error onto the response envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(apperrors.Describe(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewFailureResponse(detail))
}

// ErrorDetailFor classifies err into an HTTP status and error detail.
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	var validationErrors validator.ValidationErrors
	var storeErr *apperrors.StoreError

	switch {
	case errors.As(err, &validationErrors):
		first := validationErrors[0]
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(first)).
			WithField(first.Field())

	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).
			WithField(apperrors.FieldOf(err))

	case errors.Is(err, apperrors.ErrAuthRequired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeAuthRequired, "Authentication required").
			WithSeverity(dto.ErrorSeverityInfo)

	case errors.Is(err, apperrors.ErrNotFound):
		// Rendered as an empty state by clients, not as an error banner.
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()).
			WithSeverity(dto.ErrorSeverityInfo)

	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).
			WithSeverity(dto.ErrorSeverityWarning)

	case errors.As(err, &storeErr):
		detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, storeErr.Error())
		if storeErr.Code != "" {
			detail = detail.WithDetails(gin.H{"storeCode": storeErr.Code})
		}
		return http.StatusBadGateway, detail

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
