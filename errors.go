package refresh

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors produced by this package.
type ErrorKind string

// Error kinds as constants
const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindConfiguration   ErrorKind = "configuration_error"
	KindNotRegistered   ErrorKind = "not_registered"
	KindRateLimited     ErrorKind = "rate_limited"
)

// Error is returned for registration failures and for refresh calls that
// never reached the token endpoint. Errors from the exchange itself are
// passed through untouched and are never of this type.
type Error struct {
	Kind        ErrorKind // Error classification
	Description string    // Human-readable description
	Err         error     // Underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This makes the
// Err* sentinels usable with errors.Is regardless of description.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates a new error of the given kind
func NewError(kind ErrorKind, description string, cause error) *Error {
	return &Error{
		Kind:        kind,
		Description: description,
		Err:         cause,
	}
}

// Sentinels for use with errors.Is
var (
	// ErrInvalidArgument indicates a registration call with a nil strategy,
	// no resolvable name, or a strategy exposing neither OAuth2 shape
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Description: "invalid argument"}

	// ErrConfiguration indicates that a strategy's configuration could not be
	// turned into a usable OAuth2 client
	ErrConfiguration = &Error{Kind: KindConfiguration, Description: "configuration error"}

	// ErrNotRegistered indicates a refresh request for an unknown strategy name
	ErrNotRegistered = &Error{Kind: KindNotRegistered, Description: "not registered"}

	// ErrRateLimited indicates the per-strategy refresh rate limit was exhausted
	ErrRateLimited = &Error{Kind: KindRateLimited, Description: "rate limited"}
)

func errNilStrategy() *Error {
	return NewError(KindInvalidArgument, "cannot register: strategy is nil", nil)
}

func errNameRequired() *Error {
	return NewError(KindInvalidArgument, "cannot register: name must be specified, or strategy must include name", nil)
}

func errNotOAuth2Strategy() *Error {
	return NewError(KindInvalidArgument, "cannot register: not an OAuth2 strategy", nil)
}

func errConfig(cause error) *Error {
	return NewError(KindConfiguration, "cannot register: config error", cause)
}

func errNotRegistered(name string) *Error {
	return NewError(KindNotRegistered, fmt.Sprintf("strategy %q was not registered to refresh a token", name), nil)
}

func errRateLimited(name string) *Error {
	return NewError(KindRateLimited, fmt.Sprintf("refresh rate limit exceeded for strategy %q", name), nil)
}
