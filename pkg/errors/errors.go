package errors

import "errors"

var (
	// ErrOptimisticLock the row was changed by another request since it was read
	ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")

	// ErrInvalidConfiguration inputs that make a computation undefined (zero divisors, non-finite values)
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
