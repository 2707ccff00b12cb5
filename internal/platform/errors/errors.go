package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrNoSubjects          = errors.New("no subjects registered for user")
	ErrUnknownSubject      = errors.New("subject is not registered for user")
)
