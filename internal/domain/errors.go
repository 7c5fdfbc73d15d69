package domain

import "errors"

var (
	// ErrNotFound signals a missing listing.
	ErrNotFound = errors.New("listing not found")
	// ErrStoreUnavailable signals that the listing store could not serve a query.
	ErrStoreUnavailable = errors.New("listing store unavailable")
)
