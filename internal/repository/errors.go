package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint (company name, username).
	ErrDuplicate = errors.New("already exists")
)
