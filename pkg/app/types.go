package app

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

// CommonError is an error surfaced to the user with a stable code. Two
// CommonErrors match under errors.Is when their codes are equal.
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *CommonError) Unwrap() error { return e.Cause }

func (e *CommonError) Is(target error) bool {
	t, ok := target.(*CommonError)
	return ok && t.Code == e.Code
}

const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	ErrCodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	ErrCodeConfigLoad           = "CONFIG_LOAD"
	ErrCodeInternal             = "INTERNAL"
)

func NewError(code, message string, cause error) *CommonError {
	return &CommonError{Code: code, Message: message, Cause: cause}
}

// ErrorCode returns the application code for err. CommonError codes win;
// storage errors map by kind; anything else is INTERNAL. nil yields "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var common *CommonError
	if errors.As(err, &common) {
		return common.Code
	}

	switch {
	case errors.Is(err, storage.ErrInvalidArgument):
		return ErrCodeInvalidInput
	case errors.Is(err, storage.ErrInvalidConfiguration):
		return ErrCodeInvalidConfiguration
	case errors.Is(err, storage.ErrCapacityExceeded):
		return ErrCodeCapacityExceeded
	default:
		return ErrCodeInternal
	}
}
