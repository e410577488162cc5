package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("row not found")

	// ErrConflict is returned when a compare-and-swap style update matched no
	// rows because another writer got there first.
	ErrConflict = errors.New("row state changed by a concurrent writer")
)
