package types

import (
	"errors"
)

// ErrNotFound is returned by services when a requested row does not exist.
var ErrNotFound = errors.New("not found")
