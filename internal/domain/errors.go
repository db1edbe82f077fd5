package domain

import "errors"

// Lookup errors shared by the catalog and the services that resolve
// submitted item ids against it.
var (
	// ErrWordNotFound indicates the referenced word id does not exist
	// in the catalog.
	ErrWordNotFound = errors.New("word not found")

	// ErrVerbNotFound indicates the referenced verb id does not exist
	// in the catalog.
	ErrVerbNotFound = errors.New("verb not found")
)
