package scene

import "fmt"

// Handle addresses a node in a Graph. A handle becomes stale when its node
// is removed; the slot may be reused but its generation changes.
type Handle struct {
	index uint32
	gen   uint32
}

// Nil is the zero handle. It never resolves.
var Nil Handle

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool {
	return h == Nil
}

func (h Handle) String() string {
	if h.IsNil() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d#%d)", h.index, h.gen)
}
