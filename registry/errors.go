package registry

import "errors"

var (
	// ErrUnknownMatch indicates a handle the registry never deployed.
	ErrUnknownMatch = errors.New("registry: unknown match")

	// ErrInvalidPage indicates pagination arguments outside the catalog.
	ErrInvalidPage = errors.New("registry: invalid page")
)
