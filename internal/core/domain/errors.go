package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrMalformedSession  = errors.New("credential and role must be set together")
	ErrInvalidSessionKey = errors.New("invalid session key")
	ErrMalformedLogin    = errors.New("invalid login response")
	ErrUnknownRecord     = errors.New("record not in local collection")
)

// RemoteError is a non-success response from the backend API.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend: HTTP %d: %s", e.Status, e.Message)
}

// MessageOr returns the backend's own message for err when it carried one,
// otherwise fallback.
func MessageOr(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
