package animation

// Animator owns an ordered list of animations and drives them together.
type Animator struct {
	animations []*Animation
	running    bool
}

// NewAnimator creates an animator holding the given animations.
func NewAnimator(animations ...*Animation) *Animator {
	return &Animator{animations: animations}
}

// Add appends an animation.
func (an *Animator) Add(a *Animation) {
	an.animations = append(an.animations, a)
}

// Animations returns the owned animations in order.
func (an *Animator) Animations() []*Animation {
	return an.animations
}

// Start starts every animation.
func (an *Animator) Start() {
	an.running = true
	for _, a := range an.animations {
		a.Start()
	}
}

// Tick advances every animation by dt. Finished animations ignore the tick.
func (an *Animator) Tick(targets Targets, dt float32) {
	if !an.running {
		return
	}
	for _, a := range an.animations {
		a.Tick(targets, dt)
	}
}

// Running reports whether Start has been called.
func (an *Animator) Running() bool {
	return an.running
}

// Finished reports whether every animation has finished.
func (an *Animator) Finished() bool {
	for _, a := range an.animations {
		if a.state != Finished {
			return false
		}
	}
	return true
}
