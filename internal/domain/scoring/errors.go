package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	// ErrNonFinite marks NaN or infinite intermediate arithmetic. The
	// snapshot that produced it is considered corrupt.
	ErrNonFinite = errors.New("non-finite intermediate value")

	// ErrCancelled marks caller-requested cancellation between
	// component scorers.
	ErrCancelled = errors.New("scoring cancelled")
)
