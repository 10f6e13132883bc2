package dispatch

import "fmt"

// Code is the machine-readable part of an OperationError.
type Code string

const (
	InvalidArguments Code = "INVALID_ARGUMENTS"
	NativeError      Code = "NATIVE_ERROR"
	NotImplemented   Code = "NOT_IMPLEMENTED"
)

// OperationError is the only error type Dispatch returns.
type OperationError struct {
	Code    Code
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func invalidArguments(format string, a ...any) *OperationError {
	return &OperationError{Code: InvalidArguments, Message: fmt.Sprintf(format, a...)}
}

func nativeError(err error) *OperationError {
	return &OperationError{Code: NativeError, Message: err.Error(), Err: err}
}
