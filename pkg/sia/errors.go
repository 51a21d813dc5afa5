package sia

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoActiveSession is returned when a privileged operation is attempted
// without an authenticated session.
var ErrNoActiveSession = errors.New("no active session: authenticate first")

// AuthError reports a failed login attempt. ServerMessage carries the error
// text scraped from the login page when the portal rendered one (bad
// credentials); it is empty for navigation or timeout failures.
type AuthError struct {
	ServerMessage string
	Err           error
}

func (e *AuthError) Error() string {
	if e.ServerMessage != "" {
		return fmt.Sprintf("authentication rejected: %s", e.ServerMessage)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// OptionNotFoundError reports a fuzzy dropdown match that found no candidate.
// It carries every available label so the caller can see what the portal
// actually offered. Not retryable: repeating a logically wrong selection
// cannot succeed.
type OptionNotFoundError struct {
	Label     string
	Available []string
}

func (e *OptionNotFoundError) Error() string {
	return fmt.Sprintf("option %q not found. Available: %s", e.Label, strings.Join(e.Available, ", "))
}
