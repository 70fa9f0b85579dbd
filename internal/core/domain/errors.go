package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the gateway.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("module access forbidden")
	ErrSessionNotFound  = errors.New("no persisted session")
)

// AuthErrorKind classifies an authentication failure.
type AuthErrorKind string

const (
	// KindNetwork means the backend produced no usable response.
	KindNetwork AuthErrorKind = "network"
	// KindRejected means the backend refused the credentials or token.
	KindRejected AuthErrorKind = "rejected"
	// KindValidation means the input was malformed and never dispatched.
	KindValidation AuthErrorKind = "validation"
	// KindUnknown means the backend answered with an unexpected shape or status.
	KindUnknown AuthErrorKind = "unknown"
)

// AuthError is a typed authentication failure carrying a message safe to show
// to the user.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("auth %s: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// DisplayMessage is the user-facing text for the failure.
func (e *AuthError) DisplayMessage() string { return e.Message }

func NewNetworkError(err error) *AuthError {
	return &AuthError{Kind: KindNetwork, Message: "unable to reach the authentication service", Err: err}
}

func NewRejectedError(message string) *AuthError {
	if message == "" {
		message = "invalid credentials"
	}
	return &AuthError{Kind: KindRejected, Message: message}
}

func NewValidationError(message string) *AuthError {
	return &AuthError{Kind: KindValidation, Message: message}
}

func NewUnknownError(err error) *AuthError {
	return &AuthError{Kind: KindUnknown, Message: "unexpected response from the authentication service", Err: err}
}

// AsAuthError unwraps err to an *AuthError, or wraps it as unknown.
func AsAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return NewUnknownError(err)
}
