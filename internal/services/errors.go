package services

import "errors"

// Sentinel errors for the simulated-backend taxonomy. Handlers map these
// to HTTP statuses; everything else surfaces as a generic 500.
var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrAlreadyReviewed     = errors.New("record already reviewed")
	ErrDuplicateSubmission = errors.New("submission already exists for this challenge")
)
