package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed shaders/*.vert shaders/*.frag
var embedded embed.FS

// Source holds the GLSL text of one program.
type Source struct {
	Vertex   string
	Fragment string
}

// Def names the shader files that make up a program.
type Def struct {
	Vertex   string
	Fragment string
}

// Programs lists the built-in programs by name.
var Programs = map[string]Def{
	"texturing": {Vertex: "texture_perspective.vert", Fragment: "texturing.frag"},
	"lighting":  {Vertex: "light_perspective.vert", Fragment: "lighting.frag"},
}

// ErrUnknownProgram is returned for program names not in Programs.
var ErrUnknownProgram = errors.New("unknown shader program")

// Loader reads shader sources, preferring files in Dir over the embedded copies.
type Loader struct {
	Dir string
}

// Load returns the sources of the named program.
func (l Loader) Load(name string) (Source, error) {
	def, ok := Programs[name]
	if !ok {
		return Source{}, fmt.Errorf("%q: %w", name, ErrUnknownProgram)
	}
	vert, err := l.read(def.Vertex)
	if err != nil {
		return Source{}, err
	}
	frag, err := l.read(def.Fragment)
	if err != nil {
		return Source{}, err
	}
	return Source{Vertex: vert, Fragment: frag}, nil
}

func (l Loader) read(file string) (string, error) {
	if l.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.Dir, file))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading shader %s: %w", file, err)
		}
	}
	data, err := embedded.ReadFile("shaders/" + file)
	if err != nil {
		return "", fmt.Errorf("reading embedded shader %s: %w", file, err)
	}
	return string(data), nil
}

// Uses returns the names of the programs built from file, in sorted order.
func Uses(file string) []string {
	var names []string
	base := filepath.Base(file)
	for name, def := range Programs {
		if def.Vertex == base || def.Fragment == base {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
