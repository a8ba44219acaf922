// Package scenes builds the demo scenes.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/creeperworld/internal/assets"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Prey is an autonomous agent declared by a scene.
type Prey struct {
	Node scene.Handle
	Dir  math.Vec3
}

// Setup is a built scene plus the nodes the frame loop drives directly.
// Predator and Sun are Nil when the scene has none.
type Setup struct {
	Scene    *world.Scene
	Predator scene.Handle
	Sun      scene.Handle
	Prey     []Prey
}

// ErrUnknownScene is returned by Build for a name with no builder.
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene, loading models through im.
type Builder func(im *assets.Importer) (*Setup, error)

var builders = map[string]Builder{
	"minecraft":      Minecraft,
	"bunny":          Bunny,
	"cube":           Cube,
	"cubeSequential": CubeSequential,
	"lifeOfPi":       LifeOfPi,
	"marbleSquare":   MarbleSquare,
}

// Names returns the registered scene names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named scene.
func Build(name string, im *assets.Importer) (*Setup, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
	setup, err := b(im)
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", name, err)
	}
	return setup, nil
}

// newSetup wraps a fresh scene with no tracked nodes.
func newSetup(name string) *Setup {
	return &Setup{Scene: world.New(name)}
}
