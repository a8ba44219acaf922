// Package renderer draws scene graph parts with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/shader"
	"github.com/Faultbox/creeperworld/internal/engine/texture"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/internal/logger"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	ShaderDir string // optional on-disk shader overrides
}

var whitePixel = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer implements scene.Submitter on top of OpenGL. GPU buffers are
// created lazily the first time a mesh or texture is submitted.
type Renderer struct {
	config   Config
	log      *zap.Logger
	loader   shader.Loader
	programs map[string]*shader.Program
	current  *shader.Program
	frame    world.Frame

	meshes   map[*model.Mesh]*gpuMesh
	textures map[*model.Texture]uint32
	white    uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		loader:   shader.Loader{Dir: cfg.ShaderDir},
		programs: make(map[string]*shader.Program),
		meshes:   make(map[*model.Mesh]*gpuMesh),
		textures: make(map[*model.Texture]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	if err := shader.CheckGLVersion(version, shader.MinGLVersion); err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// interiors of open meshes stay visible
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	for name := range shader.Programs {
		if err := r.build(name); err != nil {
			r.Close()
			return nil, err
		}
	}
	r.white = uploadTexture(texture.Solid(whitePixel))
	return r, nil
}

func (r *Renderer) build(name string) error {
	src, err := r.loader.Load(name)
	if err != nil {
		return err
	}
	p, err := shader.Build(name, src)
	if err != nil {
		return err
	}
	if old := r.programs[name]; old != nil {
		old.Delete()
	}
	r.programs[name] = p
	r.log.Debug("shader program built", zap.String("program", name), zap.Uint32("id", p.ID))
	return nil
}

// Reload rebuilds the named programs. A program that fails to compile keeps
// its previous version and the error is returned.
func (r *Renderer) Reload(names []string) error {
	for _, name := range names {
		if err := r.build(name); err != nil {
			return err
		}
		r.log.Info("shader reloaded", zap.String("program", name))
	}
	return nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	for _, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	for _, p := range r.programs {
		p.Delete()
	}
	r.meshes = nil
	r.textures = nil
	r.programs = nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears to the ambient colour and binds the frame's shading parameters.
func (r *Renderer) Begin(f world.Frame) {
	r.frame = f
	gl.ClearColor(f.Ambient.X, f.Ambient.Y, f.Ambient.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p, ok := r.programs[f.Shading.Program]
	if !ok {
		p = r.programs[world.ProgramTexturing]
	}
	r.current = p
	p.Use()
	p.SetMat4(shader.UniformView, f.View)
	p.SetMat4(shader.UniformProjection, f.Projection)
	p.SetVec3(shader.UniformColor, f.Ambient)
	p.SetVec4(shader.UniformMaterial, f.Shading.Material.Vec4())
	p.SetVec3(shader.UniformDirectionalLight, f.Shading.LightDir)
	p.SetVec3(shader.UniformViewPos, f.ViewPos)
	p.SetInt(model.DefaultSampler, 0)
}

// Submit draws one part with the given world matrix.
func (r *Renderer) Submit(modelMat math.Mat4, part *scene.Part) {
	if part.Mesh == nil || len(part.Mesh.Indices) == 0 {
		return
	}
	m := r.mesh(part.Mesh)

	r.current.SetMat4(shader.UniformModel, modelMat)
	r.current.SetVec4(shader.UniformMaterial, part.Material.Vec4())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture(part.Textures))

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// End finishes the frame.
func (r *Renderer) End() {
	r.current = nil
}

// ReadPixels returns the back buffer as bottom-up RGBA bytes.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) mesh(mesh *model.Mesh) *gpuMesh {
	if m, ok := r.meshes[mesh]; ok {
		return m
	}
	m := uploadMesh(mesh)
	r.meshes[mesh] = m
	return m
}

func (r *Renderer) texture(textures []*model.Texture) uint32 {
	for _, t := range textures {
		if t == nil || t.Image == nil || (t.Sampler != "" && t.Sampler != model.DefaultSampler) {
			continue
		}
		id, ok := r.textures[t]
		if !ok {
			id = uploadTexture(t.Image)
			r.textures[t] = id
			r.log.Debug("texture uploaded", zap.String("name", t.Name), zap.Uint32("id", id))
		}
		return id
	}
	return r.white
}

func uploadMesh(mesh *model.Mesh) *gpuMesh {
	m := &gpuMesh{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
