package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned by every authenticated call that comes back
// unauthorized. Callers treat it as a global signal: clear the session and
// return to the login screen, regardless of which call site saw it.
var ErrSessionExpired = errors.New("session expired")

// AuthError is a rejected login. The backend's message is preserved so the
// login form can show it inline.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ConnectionError is a failed provider connect call. It is scoped to one
// provider category and never affects the others.
type ConnectionError struct {
	Category string
	Message  string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %s", e.Category, e.Message)
}

// ChatSendError is a failed chat exchange. The caller keeps the optimistic
// user message and surfaces the failure as a transient notification.
type ChatSendError struct {
	Err error
}

func (e *ChatSendError) Error() string {
	return fmt.Sprintf("chat send failed: %v", e.Err)
}

func (e *ChatSendError) Unwrap() error { return e.Err }

// DataFetchError is a failed listing fetch (projects, boards, saved config).
// Callers log it and degrade to an empty list rather than crashing the view.
type DataFetchError struct {
	Resource string
	Err      error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *DataFetchError) Unwrap() error { return e.Err }
