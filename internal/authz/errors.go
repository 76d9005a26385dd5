package authz

import "errors"

var (
	// ErrPermissionNotFound is returned when a permission code does not
	// resolve to an active Permission row.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
