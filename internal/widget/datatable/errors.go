package datatable

import "errors"

// Lookup and insertion errors. Returned errors wrap these with context;
// test with errors.Is.
var (
	// ErrCellDoesNotExist is returned for an unknown cell key or coordinate.
	ErrCellDoesNotExist = errors.New("cell does not exist")

	// ErrRowDoesNotExist is returned for an unknown row key or index.
	ErrRowDoesNotExist = errors.New("row does not exist")

	// ErrColumnDoesNotExist is returned for an unknown column key or index.
	ErrColumnDoesNotExist = errors.New("column does not exist")

	// ErrDuplicateKey is returned when adding a row or column whose key is taken.
	ErrDuplicateKey = errors.New("duplicate key")
)
