package app

import "errors"

// The only error kinds that cross the engine boundary. Everything
// else is absorbed into per-component diagnostics.
var (
	// ErrNotReady marks a failed preflight check. Recoverable by
	// installing a complete snapshot or fixing the request.
	ErrNotReady = errors.New("engine not ready")

	// ErrUnknownTeam marks a team identifier absent from the stores.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrDataCorruption marks non-finite internal arithmetic. The
	// active snapshot is invalidated until a new one is installed.
	ErrDataCorruption = errors.New("data corruption")

	// ErrCancelled marks caller-requested cancellation.
	ErrCancelled = errors.New("prediction cancelled")
)
