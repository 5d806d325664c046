package auth

import "errors"

var (
	// ErrInvalidCredentials is the only error a failed login produces.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn indicates an operation that needs a session ran
	// without one.
	ErrNotLoggedIn = errors.New("not logged in")
)
