// Package animation drives time-based transform changes on scene graph nodes.
//
// An Animation is a closed set of variants selected by Kind. Progress runs
// from 0 to 1 through a gween tween; every tick applies only the increment
// since the previous tick, so any split of sub-ticks adds up to the full delta.
package animation

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Kind selects what an animation does to its target.
type Kind int

const (
	Rotation Kind = iota
	Translation
	Scale
	Pause
	Sequence
)

func (k Kind) String() string {
	switch k {
	case Rotation:
		return "rotation"
	case Translation:
		return "translation"
	case Scale:
		return "scale"
	case Pause:
		return "pause"
	case Sequence:
		return "sequence"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// State is the lifecycle stage of an animation.
type State int

const (
	NotStarted State = iota
	Running
	Finished
)

// Targets resolves animation targets. *scene.Graph satisfies it.
type Targets interface {
	Node(h scene.Handle) (*scene.Node, error)
}

// Animation is one time-parameterized change applied to a target node.
type Animation struct {
	kind     Kind
	target   scene.Handle
	delta    math.Vec3
	duration float32
	easing   ease.TweenFunc

	tween    *gween.Tween
	elapsed  float32
	progress float32
	state    State

	steps   []*Animation
	current int
}

func newAnimation(kind Kind, target scene.Handle, delta math.Vec3, duration float32) *Animation {
	if duration < 0 {
		duration = 0
	}
	return &Animation{
		kind:     kind,
		target:   target,
		delta:    delta,
		duration: duration,
		easing:   ease.Linear,
	}
}

// NewRotation rotates target by delta (Euler radians) over duration seconds.
func NewRotation(target scene.Handle, delta math.Vec3, duration float32) *Animation {
	return newAnimation(Rotation, target, delta, duration)
}

// NewTranslation moves target by delta over duration seconds.
func NewTranslation(target scene.Handle, delta math.Vec3, duration float32) *Animation {
	return newAnimation(Translation, target, delta, duration)
}

// NewScale multiplies the target's scale by factor over duration seconds.
// A negative or zero component only takes effect when the animation finishes.
func NewScale(target scene.Handle, factor math.Vec3, duration float32) *Animation {
	return newAnimation(Scale, target, factor, duration)
}

// NewPause waits for duration seconds without touching any node.
func NewPause(duration float32) *Animation {
	return newAnimation(Pause, scene.Nil, math.Vec3{}, duration)
}

// NewSequence runs steps one after another. Time left over when a step
// finishes carries into the next one.
func NewSequence(steps ...*Animation) *Animation {
	var total float32
	for _, s := range steps {
		total += s.duration
	}
	a := newAnimation(Sequence, scene.Nil, math.Vec3{}, total)
	a.steps = steps
	return a
}

// WithEasing replaces the linear progress curve.
func (a *Animation) WithEasing(fn ease.TweenFunc) *Animation {
	if fn != nil {
		a.easing = fn
	}
	return a
}

// Kind returns the variant tag.
func (a *Animation) Kind() Kind { return a.kind }

// Target returns the animated node handle. Pause and Sequence return scene.Nil.
func (a *Animation) Target() scene.Handle { return a.target }

// Duration returns the total duration in seconds.
func (a *Animation) Duration() float32 { return a.duration }

// Elapsed returns the time spent running, clamped to [0, Duration].
func (a *Animation) Elapsed() float32 { return a.elapsed }

// State returns the lifecycle stage.
func (a *Animation) State() State { return a.state }

// Start moves the animation to Running and resets elapsed time.
// Starting a finished animation has no effect.
func (a *Animation) Start() {
	if a.state == Finished {
		return
	}
	a.state = Running
	a.elapsed = 0
	a.progress = 0
	a.tween = gween.New(0, 1, a.duration, a.easing)
	if a.kind == Sequence {
		a.current = 0
		if len(a.steps) > 0 {
			a.steps[0].Start()
		}
	}
}

// Tick advances a running animation by dt seconds.
func (a *Animation) Tick(targets Targets, dt float32) {
	a.advance(targets, dt)
}

// advance returns the part of dt not consumed by this animation.
func (a *Animation) advance(targets Targets, dt float32) float32 {
	if a.state != Running {
		return dt
	}
	if dt < 0 {
		dt = 0
	}
	if a.kind == Sequence {
		return a.advanceSequence(targets, dt)
	}

	p, done := a.tween.Update(dt)
	leftover := a.tween.Overflow
	a.elapsed += dt - leftover
	if a.elapsed > a.duration {
		a.elapsed = a.duration
	}
	if done {
		p = 1
		a.elapsed = a.duration
	}

	dp := p - a.progress
	a.progress = p
	if err := a.apply(targets, dp, done); err != nil {
		a.state = Finished
		return 0
	}
	if done {
		a.state = Finished
	}
	return leftover
}

func (a *Animation) advanceSequence(targets Targets, dt float32) float32 {
	for a.current < len(a.steps) {
		step := a.steps[a.current]
		before := dt
		dt = step.advance(targets, dt)
		a.elapsed += before - dt
		if step.state != Finished {
			return 0
		}
		a.current++
		if a.current < len(a.steps) {
			a.steps[a.current].Start()
		}
	}
	a.elapsed = a.duration
	a.state = Finished
	return dt
}

func (a *Animation) apply(targets Targets, dp float32, done bool) error {
	if a.kind == Pause || (dp == 0 && !done) {
		return nil
	}
	node, err := targets.Node(a.target)
	if err != nil {
		return err
	}
	switch a.kind {
	case Rotation:
		node.Transform.Rotate(a.delta.Scale(dp))
	case Translation:
		node.Transform.Move(a.delta.Scale(dp))
	case Scale:
		node.Transform.Grow(scaleStep(a.delta, dp, done))
	}
	return nil
}

// scaleStep is the multiplicative increment for progress dp. Magnitudes
// telescope as |f|^dp; a negative or zero factor component flips or
// collapses that axis once, on the finishing tick.
func scaleStep(factor math.Vec3, dp float32, done bool) math.Vec3 {
	axis := func(f float32) float32 {
		step := float32(1)
		if f != 0 {
			step = math32.Pow(math32.Abs(f), dp)
		}
		if done && f <= 0 {
			if f == 0 {
				return 0
			}
			step = -step
		}
		return step
	}
	return math.Vec3{X: axis(factor.X), Y: axis(factor.Y), Z: axis(factor.Z)}
}
