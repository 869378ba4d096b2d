// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

var (
	// ErrUserAlreadyExists is returned by signup for an email already registered.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound indicates that no user matched the email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned by login for an unknown email or a wrong
	// password, without telling which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword indicates a password shorter than the minimum length.
	ErrWeakPassword = errors.New("password too short")

	// ErrInvalidAccountType indicates an account type other than PRODUCER or COOPERATIVE.
	ErrInvalidAccountType = errors.New("invalid account type")
)
