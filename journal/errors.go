package journal

import "errors"

var (
	// ErrClosed indicates a record or replay on a closed journal.
	ErrClosed = errors.New("journal: closed")

	// ErrCorruptRecord indicates a stored record could not be decoded.
	ErrCorruptRecord = errors.New("journal: corrupt record")
)
