package scene

import "errors"

var (
	// ErrIndexOutOfRange is returned when a child index is not below the child count.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrStaleHandle is returned when a handle refers to a node that has been removed.
	ErrStaleHandle = errors.New("stale node handle")

	// ErrNilObject is returned when a nil object, or an object with a nil
	// descendant, is spawned.
	ErrNilObject = errors.New("nil object")
)
