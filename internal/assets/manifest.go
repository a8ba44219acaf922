package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// nodeSpec is one node of a model manifest.
type nodeSpec struct {
	Name     string     `yaml:"name"`
	Model    string     `yaml:"model"`
	Position vec3       `yaml:"position"`
	Rotation vec3       `yaml:"rotation"` // degrees
	Scale    vec3       `yaml:"scale"`
	Parts    []partSpec `yaml:"parts"`
	Children []nodeSpec `yaml:"children"`
}

type partSpec struct {
	Mesh     string         `yaml:"mesh"`
	Texture  string         `yaml:"texture"`
	Color    string         `yaml:"color"`
	Checker  *checkerSpec   `yaml:"checker"`
	Sampler  string         `yaml:"sampler"`
	Material model.Material `yaml:"material"`
}

// UnmarshalYAML fills unspecified material coefficients with the defaults.
func (p *partSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain partSpec
	out := plain{Material: model.DefaultMaterial()}
	if err := n.Decode(&out); err != nil {
		return err
	}
	*p = partSpec(out)
	return nil
}

type checkerSpec struct {
	A     string `yaml:"a"`
	B     string `yaml:"b"`
	Size  int    `yaml:"size"`
	Cells int    `yaml:"cells"`
}

// UnmarshalYAML applies a 16 pixel, 4 cell default.
func (c *checkerSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain checkerSpec
	out := plain{Size: 16, Cells: 4}
	if err := n.Decode(&out); err != nil {
		return err
	}
	*c = checkerSpec(out)
	return nil
}

// vec3 accepts either a scalar (all components) or a three element list.
type vec3 struct {
	v   math.Vec3
	set bool
}

func (v *vec3) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var s float32
		if err := n.Decode(&s); err != nil {
			return err
		}
		v.v = math.Splat(s)
	case yaml.SequenceNode:
		var xs []float32
		if err := n.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: want 3 components, got %d", n.Line, len(xs))
		}
		v.v = math.Vec3{X: xs[0], Y: xs[1], Z: xs[2]}
	default:
		return fmt.Errorf("line %d: expected a number or a list", n.Line)
	}
	v.set = true
	return nil
}
