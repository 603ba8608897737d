// Package errs defines the sentinel error kinds shared across the search
// core, per the error handling design: unsupported operations, invalid
// configuration, unfinished fitness functions, and recoverable execution
// failures.
package errs

import "errors"

var (
	// ErrUnsupportedOperation is returned when an algorithm-specific setter
	// is invoked on an algorithm that does not honour it. Fatal to the
	// caller; never handled inside the core.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidConfiguration is returned when a required configuration key
	// is missing, a value is out of range, or an algorithm/chromosome name
	// is unknown. Raised before search begins.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotYetImplemented is reserved for fitness functions that are
	// stubs. The algorithm must surface this immediately, not swallow it.
	ErrNotYetImplemented = errors.New("not yet implemented")

	// ErrExecutionFailure marks a chromosome evaluation that the
	// ExecutionHost could not complete. Recovered locally by the caller.
	ErrExecutionFailure = errors.New("execution failure")
)
