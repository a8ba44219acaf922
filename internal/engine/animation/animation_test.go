package animation

import (
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

const eps = 1e-3

func spawn(t *testing.T) (*scene.Graph, scene.Handle) {
	t.Helper()
	g := scene.NewGraph()
	h, err := g.Spawn(scene.Nil, scene.NewObject("bunny"))
	if err != nil {
		t.Fatal(err)
	}
	return g, h
}

func transform(t *testing.T, g *scene.Graph, h scene.Handle) *scene.Transform {
	t.Helper()
	n, err := g.Node(h)
	if err != nil {
		t.Fatal(err)
	}
	return &n.Transform
}

func TestSplitTickEquivalence(t *testing.T) {
	splits := map[string][]float32{
		"single":  {10},
		"halves":  {5, 5},
		"uneven":  {0.1, 3.3, 0.016, 2.584, 4},
		"overrun": {7, 7},
		"many":    repeat(1.0/60, 700),
	}
	kinds := []struct {
		name  string
		build func(scene.Handle) *Animation
		read  func(*scene.Transform) math.Vec3
		want  math.Vec3
	}{
		{
			name:  "rotation",
			build: func(h scene.Handle) *Animation { return NewRotation(h, math.Vec3{Y: 2 * 3.14159265}, 10) },
			read:  (*scene.Transform).Orientation,
			want:  math.Vec3{Y: 2 * 3.14159265},
		},
		{
			name:  "translation",
			build: func(h scene.Handle) *Animation { return NewTranslation(h, math.Vec3{X: 0.2, Y: -1}, 10) },
			read:  (*scene.Transform).Position,
			want:  math.Vec3{X: 0.2, Y: -1},
		},
		{
			name:  "scale",
			build: func(h scene.Handle) *Animation { return NewScale(h, math.Splat(9), 10) },
			read:  (*scene.Transform).Scale,
			want:  math.Splat(9),
		},
	}

	for _, k := range kinds {
		for name, ticks := range splits {
			t.Run(k.name+"/"+name, func(t *testing.T) {
				g, h := spawn(t)
				a := k.build(h)
				a.Start()
				for _, dt := range ticks {
					a.Tick(g, dt)
				}
				if a.State() != Finished {
					t.Fatalf("state = %v, want Finished", a.State())
				}
				if got := k.read(transform(t, g, h)); !got.ApproxEqual(k.want, eps) {
					t.Errorf("got %v, want %v", got, k.want)
				}
				if a.Elapsed() != a.Duration() {
					t.Errorf("elapsed = %v, want %v", a.Elapsed(), a.Duration())
				}
			})
		}
	}
}

func TestScaleWithNonPositiveFactor(t *testing.T) {
	tests := []struct {
		name   string
		factor math.Vec3
		mid    math.Vec3
	}{
		{"mirror", math.Vec3{X: -1, Y: 1, Z: 1}, math.Splat(1)},
		{"mirror and grow", math.Vec3{X: -4, Y: 1, Z: 1}, math.Vec3{X: 2, Y: 1, Z: 1}},
		{"collapse", math.Vec3{X: 4, Y: 0, Z: 1}, math.Vec3{X: 2, Y: 1, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, h := spawn(t)
			a := NewScale(h, tt.factor, 1)
			a.Start()

			a.Tick(g, 0.5)
			if got := transform(t, g, h).Scale(); !got.ApproxEqual(tt.mid, eps) {
				t.Errorf("mid scale = %v, want %v", got, tt.mid)
			}
			a.Tick(g, 0.5)
			if got := transform(t, g, h).Scale(); !got.ApproxEqual(tt.factor, eps) {
				t.Errorf("final scale = %v, want %v", got, tt.factor)
			}
			if a.State() != Finished {
				t.Errorf("state = %v, want Finished", a.State())
			}
		})
	}
}

func repeat(dt float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = dt
	}
	return out
}

func TestPartialProgressIsProportional(t *testing.T) {
	g, h := spawn(t)
	a := NewTranslation(h, math.Vec3{X: 10}, 4)
	a.Start()
	a.Tick(g, 1)
	if got := transform(t, g, h).Position(); !got.ApproxEqual(math.Vec3{X: 2.5}, eps) {
		t.Errorf("after 1s got %v, want x=2.5", got)
	}
	if a.State() != Running {
		t.Errorf("state = %v, want Running", a.State())
	}
}

func TestNotStartedAndFinishedIgnoreTicks(t *testing.T) {
	g, h := spawn(t)
	a := NewTranslation(h, math.Vec3{Z: 1}, 1)

	a.Tick(g, 0.5)
	if got := transform(t, g, h).Position(); got != (math.Vec3{}) {
		t.Errorf("not started animation moved node to %v", got)
	}

	a.Start()
	a.Tick(g, 2)
	a.Tick(g, 2)
	if got := transform(t, g, h).Position(); !got.ApproxEqual(math.Vec3{Z: 1}, eps) {
		t.Errorf("got %v, want z=1", got)
	}

	a.Start()
	a.Tick(g, 1)
	if got := transform(t, g, h).Position(); !got.ApproxEqual(math.Vec3{Z: 1}, eps) {
		t.Errorf("restarting a finished animation changed the node: %v", got)
	}
}

func TestStaleTargetFinishes(t *testing.T) {
	g, h := spawn(t)
	a := NewRotation(h, math.Vec3{Y: 1}, 5)
	a.Start()
	a.Tick(g, 1)

	if err := g.Remove(h); err != nil {
		t.Fatal(err)
	}
	a.Tick(g, 1)
	if a.State() != Finished {
		t.Errorf("state = %v, want Finished", a.State())
	}
}

func TestSequenceCarriesLeftover(t *testing.T) {
	g, h := spawn(t)
	seq := NewSequence(
		NewRotation(h, math.Vec3{Y: 1}, 1),
		NewPause(1),
		NewRotation(h, math.Vec3{X: 1}, 2),
	)
	if seq.Duration() != 4 {
		t.Fatalf("duration = %v, want 4", seq.Duration())
	}
	seq.Start()

	// 1.5s: first step done, half of the pause
	seq.Tick(g, 1.5)
	if got := transform(t, g, h).Orientation(); !got.ApproxEqual(math.Vec3{Y: 1}, eps) {
		t.Errorf("after 1.5s got %v", got)
	}

	// 1.5s more: pause done, a quarter of the last rotation
	seq.Tick(g, 1.5)
	if got := transform(t, g, h).Orientation(); !got.ApproxEqual(math.Vec3{X: 0.25, Y: 1}, eps) {
		t.Errorf("after 3s got %v", got)
	}
	if seq.State() != Running {
		t.Errorf("state = %v, want Running", seq.State())
	}

	seq.Tick(g, 5)
	if got := transform(t, g, h).Orientation(); !got.ApproxEqual(math.Vec3{X: 1, Y: 1}, eps) {
		t.Errorf("final got %v", got)
	}
	if seq.State() != Finished || seq.Elapsed() != seq.Duration() {
		t.Errorf("state = %v elapsed = %v", seq.State(), seq.Elapsed())
	}
}

func TestEasingStillReachesTotal(t *testing.T) {
	g, h := spawn(t)
	a := NewTranslation(h, math.Vec3{X: 3}, 2).WithEasing(ease.InOutQuad)
	a.Start()
	a.Tick(g, 0.5)
	if got := transform(t, g, h).Position().X; got >= 0.75 {
		t.Errorf("in-out quad should lag linear at the start, got x=%v", got)
	}
	a.Tick(g, 1.5)
	if got := transform(t, g, h).Position(); !got.ApproxEqual(math.Vec3{X: 3}, eps) {
		t.Errorf("got %v, want x=3", got)
	}
}

func TestZeroDuration(t *testing.T) {
	g, h := spawn(t)
	a := NewTranslation(h, math.Vec3{Y: 4}, 0)
	a.Start()
	a.Tick(g, 0)
	if a.State() != Finished {
		t.Errorf("state = %v, want Finished", a.State())
	}
	if got := transform(t, g, h).Position(); !got.ApproxEqual(math.Vec3{Y: 4}, eps) {
		t.Errorf("got %v", got)
	}
}

func TestAnimator(t *testing.T) {
	g, h := spawn(t)
	an := NewAnimator()
	an.Add(NewRotation(h, math.Vec3{Y: 1}, 1))
	an.Add(NewTranslation(h, math.Vec3{X: 1}, 2))

	an.Tick(g, 1)
	if an.Running() || an.Finished() {
		t.Fatalf("animator should be idle before Start")
	}

	an.Start()
	an.Tick(g, 1)
	if an.Finished() {
		t.Errorf("translation still has a second to go")
	}
	an.Tick(g, 1)
	if !an.Finished() {
		t.Errorf("all animations should be finished")
	}
	tr := transform(t, g, h)
	if !tr.Orientation().ApproxEqual(math.Vec3{Y: 1}, eps) || !tr.Position().ApproxEqual(math.Vec3{X: 1}, eps) {
		t.Errorf("orientation %v position %v", tr.Orientation(), tr.Position())
	}
}
