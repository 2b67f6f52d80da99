package twowaysort

import "github.com/pkg/errors"

var (
	// ErrScratchExhausted is returned when merge scratch space can't be obtained.
	ErrScratchExhausted = errors.New("scratch buffer exhausted")
	// ErrWorkerFailed is returned when a sort or merge worker could not run to
	// completion.
	ErrWorkerFailed = errors.New("worker failed")
	// ErrInvariant is returned when a partition or an output breaks the
	// pipeline's invariants.
	ErrInvariant = errors.New("invariant violated")
)
