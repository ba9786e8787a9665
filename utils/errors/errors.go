package errors

import (
	"errors"

	"github.com/muhammadheryan/marketplace/constant"
)

// CustomError is the only error type application code returns. Callers
// branch on the error type, never on message strings; details carry the
// context fields for conflict errors (e.g. which product ran out of
// stock and how short it was).
type CustomError struct {
	errType constant.ErrorType
	details map[string]any
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) Details() map[string]any {
	return c.details
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorWithDetails attaches structured context to the error.
func SetCustomErrorWithDetails(errorType constant.ErrorType, details map[string]any) CustomError {
	return CustomError{
		errType: errorType,
		details: details,
	}
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	return errors.As(err, &ce) && ce.errType == errorType
}
