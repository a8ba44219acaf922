// Package input defines the keys the simulation reads and a per-tick snapshot of their state.
// Platform code fills the snapshot; simulation code only reads it.
package input

// Key is a keyboard key the simulation cares about.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyF12
	keyCount
)

var keyNames = [...]string{
	KeyNone:   "none",
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyEscape: "Escape",
	KeyF12:    "F12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// State is a snapshot of which keys are held down.
type State struct {
	down [keyCount]bool
}

// Of returns a state with the given keys held.
func Of(keys ...Key) State {
	var s State
	for _, k := range keys {
		s.Set(k, true)
	}
	return s
}

// Set records whether k is held.
func (s *State) Set(k Key, down bool) {
	if k > KeyNone && k < keyCount {
		s.down[k] = down
	}
}

// Down reports whether k is held.
func (s State) Down(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.down[k]
}

// Axis returns +1 if pos is held, -1 if neg is held, 0 for both or neither.
func (s State) Axis(neg, pos Key) float32 {
	var v float32
	if s.Down(pos) {
		v++
	}
	if s.Down(neg) {
		v--
	}
	return v
}

// EventType identifies a discrete platform event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event is a discrete platform event drained once per tick.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}
