package assets

import (
	"fmt"
	"image"
	"path"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/texture"
	"github.com/Faultbox/creeperworld/internal/logger"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Importer turns YAML model manifests into scene objects.
//
// A manifest describes one node: an optional name, a transform (position,
// rotation in degrees, scale), drawable parts and child nodes. A child may
// pull in another manifest with "model", resolved relative to the including
// file. Meshes and textures are shared between everything one Importer loads.
type Importer struct {
	assets   *Manager
	log      *zap.Logger
	meshes   map[meshKey]*model.Mesh
	textures map[string]*model.Texture
}

type meshKey struct {
	name  string
	flipV bool
}

// NewImporter creates an importer reading through m.
func NewImporter(m *Manager) *Importer {
	return &Importer{
		assets:   m,
		log:      logger.Named("assets"),
		meshes:   make(map[meshKey]*model.Mesh),
		textures: make(map[string]*model.Texture),
	}
}

// Load imports the manifest at name. flipV flips the V texture coordinate
// of every mesh for art authored with (0,0) in the lower left corner.
func (im *Importer) Load(name string, flipV bool) (*scene.Object, error) {
	obj, err := im.load(cleanPath(name), flipV, map[string]bool{})
	if err != nil {
		return nil, err
	}
	im.log.Debug("model loaded",
		zap.String("path", name),
		zap.Int("nodes", obj.Count()))
	return obj, nil
}

func (im *Importer) load(name string, flipV bool, including map[string]bool) (*scene.Object, error) {
	if including[name] {
		return nil, fmt.Errorf("%w: %s includes itself", ErrAssetLoad, name)
	}
	including[name] = true
	defer delete(including, name)

	data, err := im.assets.Load(name)
	if err != nil {
		return nil, err
	}

	var node nodeSpec
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrAssetLoad, name, err)
	}
	if node.Name == "" {
		base := path.Base(name)
		node.Name = strings.TrimSuffix(base, path.Ext(base))
	}

	obj, err := im.build(&node, path.Dir(name), flipV, including)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return obj, nil
}

func (im *Importer) build(node *nodeSpec, dir string, flipV bool, including map[string]bool) (*scene.Object, error) {
	var obj *scene.Object
	if node.Model != "" {
		included, err := im.load(cleanPath(path.Join(dir, node.Model)), flipV, including)
		if err != nil {
			return nil, err
		}
		obj = included
		if node.Name != "" {
			obj.Name = node.Name
		}
	} else {
		obj = scene.NewObject(node.Name)
	}

	// The node's own transform applies on top of an included model's.
	if node.Scale.set {
		obj.Grow(node.Scale.v)
	}
	if node.Rotation.set {
		obj.Rotate(math.Vec3{
			X: math.Radians(node.Rotation.v.X),
			Y: math.Radians(node.Rotation.v.Y),
			Z: math.Radians(node.Rotation.v.Z),
		})
	}
	if node.Position.set {
		obj.Move(node.Position.v)
	}

	for i := range node.Parts {
		part, err := im.part(&node.Parts[i], dir, flipV)
		if err != nil {
			return nil, fmt.Errorf("node %q part %d: %w", obj.Name, i, err)
		}
		obj.Parts = append(obj.Parts, part)
	}

	for i := range node.Children {
		child, err := im.build(&node.Children[i], dir, flipV, including)
		if err != nil {
			return nil, err
		}
		obj.AddChild(child)
	}
	return obj, nil
}

func (im *Importer) part(ps *partSpec, dir string, flipV bool) (scene.Part, error) {
	mesh, err := im.mesh(ps.Mesh, flipV)
	if err != nil {
		return scene.Part{}, err
	}
	part := scene.Part{Mesh: mesh, Material: ps.Material}

	tex, err := im.texture(ps, dir)
	if err != nil {
		return scene.Part{}, err
	}
	if tex != nil {
		part.Textures = []*model.Texture{tex}
	}
	return part, nil
}

func (im *Importer) mesh(name string, flipV bool) (*model.Mesh, error) {
	if name == "" {
		name = "cube"
	}
	key := meshKey{name: name, flipV: flipV}
	if m, ok := im.meshes[key]; ok {
		return m, nil
	}
	m := model.Primitive(name)
	if m == nil {
		return nil, fmt.Errorf("%w: unknown mesh %q", ErrAssetLoad, name)
	}
	if flipV {
		m = m.FlipV()
	}
	im.meshes[key] = m
	return m, nil
}

// texture resolves the part's texture source. Exactly one of texture, color
// or checker may be set; none leaves the part untextured.
func (im *Importer) texture(ps *partSpec, dir string) (*model.Texture, error) {
	sources := 0
	for _, set := range []bool{ps.Texture != "", ps.Color != "", ps.Checker != nil} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, nil
	case sources > 1:
		return nil, fmt.Errorf("%w: texture, color and checker are exclusive", ErrAssetLoad)
	}

	var key string
	switch {
	case ps.Texture != "":
		key = "file:" + cleanPath(path.Join(dir, ps.Texture))
	case ps.Color != "":
		key = "color:" + ps.Color
	default:
		key = fmt.Sprintf("checker:%s/%s/%d/%d", ps.Checker.A, ps.Checker.B, ps.Checker.Size, ps.Checker.Cells)
	}
	sampler := ps.Sampler
	if sampler == "" {
		sampler = model.DefaultSampler
	}
	cacheKey := key + "@" + sampler
	if tex, ok := im.textures[cacheKey]; ok {
		return tex, nil
	}

	var img *image.RGBA
	switch {
	case ps.Texture != "":
		file := cleanPath(path.Join(dir, ps.Texture))
		data, err := im.assets.Load(file)
		if err != nil {
			return nil, err
		}
		if img, err = texture.Decode(file, data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
		}
	case ps.Color != "":
		c, err := texture.ParseColor(ps.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
		}
		img = texture.Solid(c)
	default:
		a, err := texture.ParseColor(ps.Checker.A)
		if err != nil {
			return nil, fmt.Errorf("%w: checker: %w", ErrAssetLoad, err)
		}
		b, err := texture.ParseColor(ps.Checker.B)
		if err != nil {
			return nil, fmt.Errorf("%w: checker: %w", ErrAssetLoad, err)
		}
		img = texture.Checker(a, b, ps.Checker.Size, ps.Checker.Cells)
	}

	tex := &model.Texture{Name: key, Sampler: sampler, Image: img}
	im.textures[cacheKey] = tex
	return tex, nil
}
