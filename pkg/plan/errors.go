package plan

import "errors"

var (
	// ErrEmptyPool is returned when a broker pool has no selectable brokers
	// left after applying the exclusions for a partition.
	ErrEmptyPool = errors.New("Broker pool has no selectable brokers")

	// ErrNoCandidate is returned when a picker can't find a feasible
	// replacement broker for a partition. Recoverable per partition when
	// scaling.
	ErrNoCandidate = errors.New("Picker could not find a feasible broker")

	// ErrOutOfRange is returned when a scale target is negative or larger
	// than the broker pool. Recoverable per partition.
	ErrOutOfRange = errors.New("Target replication factor is out of range")

	// ErrNoReplacementFound is returned when a decommission can't find any
	// replacement broker for a partition. Fatal to the whole run; a partial
	// decommission plan would leave brokers that look evacuated but aren't.
	ErrNoReplacementFound = errors.New("No replacement broker found")

	// ErrInvalidExplicitTarget is returned when an explicit replacement
	// broker is already a replica of the partition being modified. Fatal,
	// since it indicates operator error.
	ErrInvalidExplicitTarget = errors.New(
		"Explicit replacement broker is already a replica",
	)

	// ErrBadMetadata is returned when the metadata source reports a
	// malformed replica list (empty or with repeats). Fatal.
	ErrBadMetadata = errors.New("Malformed partition metadata")
)

// IsFatal returns whether the argument planning error must abort the whole
// run instead of being recorded per partition.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNoReplacementFound) ||
		errors.Is(err, ErrInvalidExplicitTarget) ||
		errors.Is(err, ErrBadMetadata)
}
