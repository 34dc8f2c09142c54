package locator

import "errors"

var (
	// ErrZipNotFound indicates the postal code is absent or incomplete in the cache
	ErrZipNotFound = errors.New("zip not found")

	// ErrEmptyCatalog indicates no store records were present at snapshot load
	ErrEmptyCatalog = errors.New("no store locations found")

	// ErrRefinementUnavailable indicates the distance matrix call failed or
	// returned a non-success status
	ErrRefinementUnavailable = errors.New("invalid return status on distance matrix call")

	// ErrNoRoute indicates the distance matrix response contained no usable
	// distance element for any candidate
	ErrNoRoute = errors.New("no usable route to any candidate store")
)
