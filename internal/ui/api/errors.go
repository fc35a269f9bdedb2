package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps network failures and unreadable responses.
	ErrTransport = errors.New("request failed")
	// ErrUnauthenticated matches any *Error carrying a 401 status.
	ErrUnauthenticated = errors.New("not authenticated")
)

// Error is a structured failure reported by the server, either as a non-2xx
// status or as a {"success": false} envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthenticated) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthenticated && e.Status == http.StatusUnauthorized
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
