package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"recoleta-backend/internal/services"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// ServiceError maps a service-layer error onto its HTTP status and writes
// the standard error body.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInsufficientPoints):
		Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrDuplicateSubmission):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
