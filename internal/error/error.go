// internal/error/error.go

package error

import (
	"errors"
	"fmt"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

type ErrorType int

const (
	ConfigError ErrorType = iota
	CredentialError
	ValidationError
	UnresolvedPlaceholder
	AuthenticationFailed
	AuthenticationTimedOut
	LaunchSpawnFailed
	UserCancelled
)

var typeNames = map[ErrorType]string{
	ConfigError:            "config",
	CredentialError:        "credential",
	ValidationError:        "validation",
	UnresolvedPlaceholder:  "unresolved placeholder",
	AuthenticationFailed:   "authentication failed",
	AuthenticationTimedOut: "authentication timed out",
	LaunchSpawnFailed:      "launch failed",
	UserCancelled:          "cancelled",
}

func (t ErrorType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any AppError in err's chain has the given type.
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return 0, false
}
