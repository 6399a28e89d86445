package services

import "errors"

// ErrInvalidCredentials is returned when login verification fails. Callers
// cannot tell an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden is returned when a principal lacks the rights for an action.
var ErrForbidden = errors.New("forbidden")
