// Package renderer draws a scene into the current framebuffer with
// OpenGL. Scene meshes are uploaded on first use and released once they
// stop appearing in the scene.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/lighting"
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/engine/shader"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// HighlightTint is added to the selected model's colour.
var HighlightTint = math.Vec3{X: 0.12, Y: 0.12, Z: 0.05}

// View is the per-frame camera and light state.
type View struct {
	ViewProj  math.Mat4
	Eye       math.Vec3
	Lighting  lighting.Setup
	Highlight *scene.Node // Model root to tint, may be nil
}

// Stats describes the last rendered frame.
type Stats struct {
	Draws     int
	Triangles int
	Meshes    int // Resident GPU meshes
	Textures  int // Resident GPU textures
}

type gpuMesh struct {
	vao, vbo uint32
	count    int32
	lastUsed uint64
}

type gpuTexture struct {
	id       uint32
	lastUsed uint64
}

// Renderer owns the shader programs and GPU copies of scene meshes.
type Renderer struct {
	meshProgram *shader.Program
	lineProgram *shader.Program

	meshes   map[*scene.Mesh]*gpuMesh
	textures map[*image.RGBA]*gpuTexture
	frame    uint64
	stats    Stats

	log *zap.Logger
}

// New compiles the shaders. It must run after the GL context exists.
func New(log *zap.Logger) (*Renderer, error) {
	log = logger.OrNop(log)

	r := &Renderer{
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		textures: make(map[*image.RGBA]*gpuTexture),
		log:      log,
	}

	var err error
	r.meshProgram, err = shader.New(shader.MeshVertexShader, shader.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.lineProgram, err = shader.New(shader.LineVertexShader, shader.LineFragmentShader)
	if err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	log.Info("renderer ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return r, nil
}

// Render draws the scene. Walls are single quads seen from both sides, so
// face culling stays off.
func (r *Renderer) Render(s *scene.Scene, v View) error {
	r.frame++
	r.stats = Stats{}

	list := Collect(s, v.Eye, v.Highlight)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	p := r.meshProgram
	p.Use()
	p.SetMat4("uViewProj", v.ViewProj)
	p.SetVec3("uLightDir", v.Lighting.Direction())
	p.SetFloat("uAmbient", v.Lighting.Ambient)
	p.SetFloat("uMain", v.Lighting.Main)
	p.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, it := range list.Opaque {
		r.drawMesh(it)
	}

	if len(list.Transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		for _, it := range list.Transparent {
			r.drawMesh(it)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	lp := r.lineProgram
	lp.Use()
	lp.SetMat4("uViewProj", v.ViewProj)
	for _, it := range list.Lines {
		r.drawLines(it)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.retain(s)
	r.prune()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) drawMesh(it Item) {
	gm := r.upload(it.Mesh)
	if gm.count == 0 {
		return
	}

	p := r.meshProgram
	p.SetMat4("uModel", it.Model)
	p.SetColor("uColor", it.Mesh.Color)
	p.SetFloat("uOpacity", it.Mesh.Opacity)

	tint := math.Vec3{}
	if it.Highlighted {
		tint = HighlightTint
	}
	p.SetVec3("uTint", tint)

	if tex := r.texture(it.Mesh.Texture); tex != 0 {
		p.SetBool("uHasTexture", true)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	} else {
		p.SetBool("uHasTexture", false)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(gm.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, gm.count)

	r.stats.Draws++
	r.stats.Triangles += int(gm.count) / 3
}

func (r *Renderer) drawLines(it Item) {
	gm := r.upload(it.Mesh)
	if gm.count == 0 {
		return
	}
	r.lineProgram.SetMat4("uModel", it.Model)
	gl.BindVertexArray(gm.vao)
	gl.DrawArrays(gl.LINES, 0, gm.count)
	r.stats.Draws++
}

// upload returns the GPU copy of m, creating it on first use.
func (r *Renderer) upload(m *scene.Mesh) *gpuMesh {
	if gm, ok := r.meshes[m]; ok {
		gm.lastUsed = r.frame
		return gm
	}

	var data []float32
	var stride int
	if m.Primitive == scene.Lines {
		data, stride = interleaveLines(m), lineStride
	} else {
		data, stride = interleaveMesh(m), meshStride
	}

	gm := &gpuMesh{count: int32(len(data) / stride), lastUsed: r.frame}
	r.meshes[m] = gm
	if len(data) == 0 {
		return gm
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	stride32 := int32(stride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride32, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride32, 3*4)
	gl.EnableVertexAttribArray(1)
	if m.Primitive != scene.Lines {
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride32, 6*4)
		gl.EnableVertexAttribArray(2)
	}

	gl.BindVertexArray(0)
	return gm
}

// texture returns the GPU texture for img, uploading it on first use.
func (r *Renderer) texture(img *image.RGBA) uint32 {
	if img == nil || len(img.Pix) == 0 {
		return 0
	}
	if t, ok := r.textures[img]; ok {
		t.lastUsed = r.frame
		return t.id
	}

	b := img.Bounds()
	t := &gpuTexture{lastUsed: r.frame}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	r.textures[img] = t
	return t.id
}

// retain marks GPU copies of hidden meshes still in the scene, so
// flipbook frames are not re-uploaded every time they come round.
func (r *Renderer) retain(s *scene.Scene) {
	scene.Traverse(s.Root, func(n *scene.Node) bool {
		if n.Mesh == nil {
			return true
		}
		if gm, ok := r.meshes[n.Mesh]; ok {
			gm.lastUsed = r.frame
		}
		if t, ok := r.textures[n.Mesh.Texture]; ok {
			t.lastUsed = r.frame
		}
		return true
	})
}

// prune releases GPU copies of meshes that left the scene. The grid is
// rebuilt as a new mesh when its divisions change, and removed models
// leave theirs behind.
func (r *Renderer) prune() {
	for m, gm := range r.meshes {
		if gm.lastUsed == r.frame {
			continue
		}
		deleteMesh(gm)
		delete(r.meshes, m)
	}
	for img, t := range r.textures {
		if t.lastUsed == r.frame {
			continue
		}
		gl.DeleteTextures(1, &t.id)
		delete(r.textures, img)
	}
	r.stats.Meshes = len(r.meshes)
	r.stats.Textures = len(r.textures)
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Close releases every GPU resource.
func (r *Renderer) Close() {
	for m, gm := range r.meshes {
		deleteMesh(gm)
		delete(r.meshes, m)
	}
	for img, t := range r.textures {
		gl.DeleteTextures(1, &t.id)
		delete(r.textures, img)
	}
	r.meshProgram.Delete()
	r.lineProgram.Delete()
	r.log.Info("renderer closed")
}

func deleteMesh(gm *gpuMesh) {
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
}
