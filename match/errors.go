package match

import "errors"

var (
	// ErrInvalidConfig indicates a config outside the allowed shapes.
	ErrInvalidConfig = errors.New("match: invalid config")

	// ErrNotAuthorized indicates a privileged call from the wrong caller.
	ErrNotAuthorized = errors.New("match: caller not authorized")

	// ErrWrongStatus indicates an operation attempted from a disallowed
	// lifecycle status.
	ErrWrongStatus = errors.New("match: wrong status")

	// ErrEntryFeeMismatch indicates a join paying anything but the exact fee.
	ErrEntryFeeMismatch = errors.New("match: entry fee mismatch")

	// ErrAlreadyJoined indicates a player enrolling twice.
	ErrAlreadyJoined = errors.New("match: player already joined")

	// ErrMatchFull indicates a join with no seats left.
	ErrMatchFull = errors.New("match: match full")

	// ErrScoreCountMismatch indicates result arrays of differing length.
	ErrScoreCountMismatch = errors.New("match: score count mismatch")

	// ErrRosterMismatch indicates submitted players are not exactly a
	// permutation of the enrolled set.
	ErrRosterMismatch = errors.New("match: roster mismatch")
)
