package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrTripNotFound          = errors.New("trip not found")
	ErrTripAccessDenied      = errors.New("trip access denied")
	ErrDestinationNotFound   = errors.New("destination not found")
	ErrPOINotFound           = errors.New("poi not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrDayNotInTrip          = errors.New("day is not part of the trip")

	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")

	ErrSuggestionUnavailable = errors.New("suggestion backend unavailable")
	ErrDatabaseError         = errors.New("database error")
)
