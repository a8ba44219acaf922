// Package daycycle tracks the time of day and derives the ambient colour and sun path from it.
package daycycle

import "github.com/Faultbox/creeperworld/pkg/math"

// Phase colours.
var (
	Day   = math.Vec3{X: 1, Y: 1, Z: 1}
	Dusk  = math.Vec3{X: 1, Y: 0.6, Z: 0.2}
	Night = math.Vec3{X: 0.05, Y: 0.05, Z: 0.1}
)

// DefaultPhase is the length of one phase in seconds.
const DefaultPhase = 30

// Sun path constants. The sun travels along x at a fixed height and is
// parked far outside the view once it has crossed the sky.
const (
	SunStartX  = -30
	SunEndX    = 30
	SunHeight  = 40
	SunDepth   = -20
	SunHiddenX = 1000
)

// Cycle is a cyclic time-of-day accumulator of three phases:
// day to dusk, dusk to night, night to day.
type Cycle struct {
	phase float32
	t     float32
}

// New creates a cycle with the given phase length in seconds.
// A non-positive length selects DefaultPhase.
func New(phase float32) *Cycle {
	if phase <= 0 {
		phase = DefaultPhase
	}
	return &Cycle{phase: phase}
}

// Advance moves the clock forward by dt seconds and wraps to zero once
// the last phase is over.
func (c *Cycle) Advance(dt float32) {
	c.t += dt
	if c.t >= 3*c.phase {
		c.t = 0
	}
}

// Time returns seconds since the start of the current cycle.
func (c *Cycle) Time() float32 {
	return c.t
}

// Length returns the duration of a full cycle.
func (c *Cycle) Length() float32 {
	return 3 * c.phase
}

// Ambient returns the ambient colour for the current time.
func (c *Cycle) Ambient() math.Vec3 {
	return ColorAt(c.t, c.phase)
}

// SunPosition returns where the sun sits at the current time.
func (c *Cycle) SunPosition() math.Vec3 {
	return SunAt(c.t, c.phase)
}

// ColorAt interpolates the ambient colour at time t for the given phase length.
func ColorAt(t, phase float32) math.Vec3 {
	switch {
	case t <= 0:
		return Day
	case t < phase:
		return Day.Lerp(Dusk, t/phase)
	case t < 2*phase:
		return Dusk.Lerp(Night, (t-phase)/phase)
	case t < 3*phase:
		return Night.Lerp(Day, (t-2*phase)/phase)
	}
	return Day
}

// SunAt returns the sun position at time t. The sun crosses from SunStartX to
// SunEndX during the first two phases and is hidden for the rest of the cycle.
func SunAt(t, phase float32) math.Vec3 {
	x := SunStartX + t/(2*phase)*(SunEndX-SunStartX)
	if x > SunEndX {
		x = SunHiddenX
	}
	return math.Vec3{X: x, Y: SunHeight, Z: SunDepth}
}
