package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

func TestManagerLayering(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{
		"a.txt": {Data: []byte("base a")},
		"b.txt": {Data: []byte("base b")},
	})
	m.AddFS("mod", fstest.MapFS{
		"a.txt": {Data: []byte("mod a")},
	})

	got, err := m.Load("a.txt")
	if err != nil || string(got) != "mod a" {
		t.Errorf("Load(a.txt) = %q, %v; want last added source to win", got, err)
	}
	got, err = m.Load("./sub/../b.txt")
	if err != nil || string(got) != "base b" {
		t.Errorf("Load(b.txt) = %q, %v", got, err)
	}

	if _, err := m.Load("missing.txt"); !errors.Is(err, ErrAssetLoad) {
		t.Errorf("missing file error = %v, want ErrAssetLoad", err)
	}

	if names := m.Sources(); len(names) != 2 || names[0] != "mod" {
		t.Errorf("Sources() = %v", names)
	}
}

func TestManagerCaches(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{"x": {Data: []byte("1")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Load("x"); err != nil {
			t.Fatal(err)
		}
	}
	hits, misses := m.Cache().Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 2, 1", hits, misses)
	}

	m.Close()
	if m.Cache().Len() != 0 {
		t.Error("Close should clear the cache")
	}
	if _, err := m.Load("x"); err == nil {
		t.Error("Load after Close should fail")
	}
}

func TestManagerAddDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("disk"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}
	if got, err := m.Load("f.txt"); err != nil || string(got) != "disk" {
		t.Errorf("Load = %q, %v", got, err)
	}

	if err := m.AddDir(filepath.Join(dir, "nope")); err == nil {
		t.Error("AddDir on a missing directory should fail")
	}
	if err := m.AddDir(filepath.Join(dir, "f.txt")); err == nil {
		t.Error("AddDir on a file should fail")
	}
}

func newTestImporter(files fstest.MapFS) *Importer {
	m := NewManager()
	m.AddFS("test", files)
	return NewImporter(m)
}

func TestImporterBuildsTree(t *testing.T) {
	im := newTestImporter(fstest.MapFS{
		"models/thing.yaml": {Data: []byte(`
position: [1, 2, 3]
rotation: [0, 90, 0]
scale: 2
parts:
  - mesh: square
    color: "#ff0000"
    material: { specular: 0.9 }
children:
  - name: arm
    position: [0, 1, 0]
    parts:
      - color: "#ff0000"
  - name: hat
    model: hat.yaml
    position: [0, 5, 0]
`)},
		"models/hat.yaml": {Data: []byte(`
parts:
  - mesh: cube
    checker: { a: "#000000", b: "#ffffff" }
`)},
	})

	obj, err := im.Load("models/thing.yaml", false)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Name != "thing" {
		t.Errorf("Name = %q, want name taken from the file", obj.Name)
	}
	if obj.Count() != 3 {
		t.Errorf("Count() = %d, want 3", obj.Count())
	}
	if p := obj.Transform.Position(); !p.ApproxEqual(math.Vec3{X: 1, Y: 2, Z: 3}, 1e-6) {
		t.Errorf("Position = %v", p)
	}
	if o := obj.Transform.Orientation(); !o.ApproxEqual(math.Vec3{Y: math.Radians(90)}, 1e-6) {
		t.Errorf("Orientation = %v, want degrees converted to radians", o)
	}
	if s := obj.Transform.Scale(); s != math.Splat(2) {
		t.Errorf("Scale = %v", s)
	}

	part := obj.Parts[0]
	if part.Mesh.Name != "square" {
		t.Errorf("mesh = %q", part.Mesh.Name)
	}
	want := model.DefaultMaterial()
	want.Specular = 0.9
	if part.Material != want {
		t.Errorf("Material = %+v, want defaults with specular override", part.Material)
	}
	if len(part.Textures) != 1 || part.Textures[0].Sampler != model.DefaultSampler {
		t.Fatalf("textures = %+v", part.Textures)
	}

	arm, err := obj.Child(0)
	if err != nil {
		t.Fatal(err)
	}
	if arm.Parts[0].Mesh.Name != "cube" {
		t.Errorf("default mesh = %q, want cube", arm.Parts[0].Mesh.Name)
	}
	if arm.Parts[0].Textures[0] != part.Textures[0] {
		t.Error("identical colours should share one texture")
	}

	hat, err := obj.Child(1)
	if err != nil {
		t.Fatal(err)
	}
	if hat.Name != "hat" || hat.Transform.Position().Y != 5 {
		t.Errorf("included model = %q at %v", hat.Name, hat.Transform.Position())
	}
	if got := hat.Parts[0].Textures[0].Image.Bounds().Dx(); got != 16 {
		t.Errorf("checker default size = %d, want 16", got)
	}
}

func TestImporterFlipV(t *testing.T) {
	im := newTestImporter(fstest.MapFS{
		"q.yaml": {Data: []byte("parts:\n  - mesh: square\n")},
	})
	plain, err := im.Load("q.yaml", false)
	if err != nil {
		t.Fatal(err)
	}
	flipped, err := im.Load("q.yaml", true)
	if err != nil {
		t.Fatal(err)
	}

	a := plain.Parts[0].Mesh.Vertices[0].TexCoord
	b := flipped.Parts[0].Mesh.Vertices[0].TexCoord
	if a[0] != b[0] || a[1] != 1-b[1] {
		t.Errorf("texcoords %v and %v are not V-flipped", a, b)
	}

	again, _ := im.Load("q.yaml", true)
	if again.Parts[0].Mesh != flipped.Parts[0].Mesh {
		t.Error("meshes should be shared between loads")
	}
}

func TestImporterErrors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"missing file": {},
		"bad yaml":     {"m.yaml": {Data: []byte("parts: [")}},
		"bad vector":   {"m.yaml": {Data: []byte("position: [1, 2]")}},
		"bad mesh":     {"m.yaml": {Data: []byte("parts:\n  - mesh: teapot\n")}},
		"bad colour":   {"m.yaml": {Data: []byte("parts:\n  - color: red\n")}},
		"two sources":  {"m.yaml": {Data: []byte("parts:\n  - color: \"#ffffff\"\n    texture: t.png\n")}},
		"no texture":   {"m.yaml": {Data: []byte("parts:\n  - texture: t.png\n")}},
		"bad texture":  {"m.yaml": {Data: []byte("parts:\n  - texture: t.png\n")}, "t.png": {Data: []byte("junk")}},
		"include loop": {"m.yaml": {Data: []byte("children:\n  - model: m.yaml\n")}},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newTestImporter(files).Load("m.yaml", false)
			if !errors.Is(err, ErrAssetLoad) {
				t.Errorf("err = %v, want ErrAssetLoad", err)
			}
		})
	}
}

func TestBuiltinModelsLoad(t *testing.T) {
	m := NewManager()
	m.AddFS("builtin", Builtin())
	im := NewImporter(m)

	for _, name := range []string{
		"models/steve.yaml", "models/pig.yaml", "models/creeper.yaml",
		"models/sun.yaml", "models/cloud.yaml", "models/cobblestone.yaml",
		"models/marble.yaml", "models/cube.yaml", "models/bunny.yaml",
		"models/boat.yaml", "models/tiger.yaml",
	} {
		obj, err := im.Load(name, true)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		parts := countParts(obj)
		if parts == 0 {
			t.Errorf("%s has no drawable parts", name)
		}
	}
}

func countParts(o *scene.Object) int {
	n := len(o.Parts)
	for _, c := range o.Children {
		n += countParts(c)
	}
	return n
}
