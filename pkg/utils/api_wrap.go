package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError translates service sentinels into HTTP responses.
// Anything unmapped is a 500 and gets logged with its trace id.
func HandleServiceError(c *gin.Context, err error) {
	var (
		code    int
		message string
	)

	switch {
	case errors.Is(err, ErrAccountNotFound):
		code, message = http.StatusNotFound, "Account not found"
	case errors.Is(err, ErrEmailAlreadyExists):
		code, message = http.StatusConflict, "Email is already registered"
	case errors.Is(err, ErrInvalidCredentials):
		code, message = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrInvalidResetToken):
		code, message = http.StatusBadRequest, "Reset token is invalid or expired"
	case errors.Is(err, ErrTripNotFound):
		code, message = http.StatusNotFound, "Trip not found"
	case errors.Is(err, ErrTripAccessDenied):
		code, message = http.StatusForbidden, "You do not have access to this trip"
	case errors.Is(err, ErrDestinationNotFound):
		code, message = http.StatusNotFound, "Destination not found"
	case errors.Is(err, ErrPOINotFound):
		code, message = http.StatusNotFound, "POI not found"
	case errors.Is(err, ErrAccommodationNotFound):
		code, message = http.StatusNotFound, "Accommodation not found"
	case errors.Is(err, ErrDayNotInTrip):
		code, message = http.StatusBadRequest, "Day is not part of the trip"
	case errors.Is(err, ErrInvalidDateRange):
		code, message = http.StatusBadRequest, "Invalid date range"
	case errors.Is(err, ErrInvalidTimeFormat):
		code, message = http.StatusBadRequest, "Invalid date or time format"
	case errors.Is(err, ErrInvalidPage):
		code, message = http.StatusBadRequest, "Page must be greater than 0"
	case errors.Is(err, ErrInvalidPageSize):
		code, message = http.StatusBadRequest, "Page size must be between 1 and 100"
	case errors.Is(err, ErrSuggestionUnavailable):
		code, message = http.StatusServiceUnavailable, "Suggestions are temporarily unavailable"
	case errors.Is(err, ErrDatabaseError):
		log.Error().Err(err).Str("trace_id", c.GetString("trace_id")).Msg("database error")
		code, message = http.StatusInternalServerError, "Internal server error"
	default:
		log.Error().Err(err).Str("trace_id", c.GetString("trace_id")).Msg("unhandled service error")
		code, message = http.StatusInternalServerError, "Internal server error"
	}

	RespondError(c, code, message)
}
