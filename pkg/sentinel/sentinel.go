// Package sentinel defines shared sentinel errors used across store implementations.
package sentinel

import "errors"

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by stores when a uniqueness constraint is violated.
var ErrConflict = errors.New("conflict")
