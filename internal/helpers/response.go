package helpers

import (
	"errors"
	"net/http"

	"github.com/gustavopprado/sistema-reservas/internal/models"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// StatusForError maps a domain error to its HTTP status. Anything outside the
// domain taxonomy is a 500; callers log the detail and return a generic
// message for those.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidInterval),
		errors.Is(err, models.ErrPastBooking):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRestrictedRoom),
		errors.Is(err, models.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsDomainError(err error) bool {
	return StatusForError(err) != http.StatusInternalServerError
}
