package utils

import "errors"

var (
	ErrLocationNotFound     = errors.New("location not found")
	ErrInvalidSubmission    = errors.New("invalid submission")
	ErrLocationUnresolvable = errors.New("location could not be resolved")
	ErrInvalidAnnotation    = errors.New("invalid annotation request")
	ErrModelUnavailable     = errors.New("vibe model unavailable")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDatabaseError        = errors.New("database error")
)
