// Package renderer draws the book with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/book"
	"github.com/Faultbox/folio/internal/engine/camera"
	"github.com/Faultbox/folio/internal/engine/lighting"
	"github.com/Faultbox/folio/internal/engine/mesh"
	"github.com/Faultbox/folio/internal/engine/shader"
	"github.com/Faultbox/folio/internal/logger"
	"github.com/Faultbox/folio/internal/surface"
	"github.com/Faultbox/folio/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	CoverColor string
	Sun        lighting.Sun
}

// Frames supplies the image each page shows.
type Frames interface {
	Frame(page int) *image.RGBA
}

// gpuMesh is one VAO with its buffers.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer owns every GL resource of one book.
type Renderer struct {
	config  Config
	program *shader.Program

	cover gpuMesh
	back  gpuMesh
	spine gpuMesh

	sheets   []*mesh.Sheet
	pages    []gpuMesh
	textures []uint32
	coverTex uint32

	log *zap.Logger
}

// New creates the renderer for b. Must be called after the GL context is
// current.
func New(cfg Config, b *book.Book, frames Frames) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{config: cfg, log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewBookProgram()
	if err != nil {
		return nil, fmt.Errorf("book shader: %w", err)
	}

	dims := b.Assembly.Dims
	r.cover = upload(mesh.Box(dims.CoverWidth, dims.CoverHeight, dims.CoverThickness), gl.STATIC_DRAW)
	r.back = upload(mesh.Box(dims.CoverWidth, dims.CoverHeight, dims.CoverThickness), gl.STATIC_DRAW)
	r.spine = upload(mesh.Box(dims.SpineWidth, dims.CoverHeight, dims.CoverThickness), gl.STATIC_DRAW)

	n := b.Assembly.NumPages()
	r.sheets = make([]*mesh.Sheet, n)
	r.pages = make([]gpuMesh, n)
	for i := range n {
		r.sheets[i] = mesh.NewPage(dims.PageWidth, dims.PageHeight, dims.PageSegments)
		r.pages[i] = upload(r.sheets[i].Mesh, gl.DYNAMIC_DRAW)
	}

	r.coverTex = createTexture(surface.RenderFill(cfg.CoverColor, 4))
	r.textures = make([]uint32, n)
	for i := range n {
		img := frames.Frame(i)
		if img == nil {
			img = surface.RenderFill(surface.PageColor(i, dims.PageColors), 4)
		}
		r.textures[i] = createTexture(img)
	}

	r.log.Debug("book uploaded", zap.Int("pages", n), zap.Int("segments", dims.PageSegments))
	return r, nil
}

// Close releases every GL resource.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range append([]gpuMesh{r.cover, r.back, r.spine}, r.pages...) {
		m.delete()
	}
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
	}
	if r.coverTex != 0 {
		gl.DeleteTextures(1, &r.coverTex)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// SetSun replaces the light.
func (r *Renderer) SetSun(sun lighting.Sun) {
	r.config.Sun = sun
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// UpdateTexture replaces the image shown on page.
func (r *Renderer) UpdateTexture(page int, img *image.RGBA) {
	if page < 0 || page >= len(r.textures) || img == nil || len(img.Pix) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.textures[page])
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Render draws one frame of b seen from cam. Page vertices are deformed on
// the CPU and re-uploaded only when their shape changed.
func (r *Renderer) Render(b *book.Book, cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	viewProj := cam.ViewProjection()
	r.program.SetMat4("uViewProj", viewProj.Ptr())
	r.program.SetVec3("uLightDir", r.config.Sun.Direction().Array())
	r.program.SetFloat("uAmbient", r.config.Sun.Ambient)
	r.program.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	asm := b.Assembly
	thick := asm.Dims.CoverThickness

	r.program.SetInt("uMirrorBack", 0)
	r.program.SetVec3("uTint", [3]float32{1, 1, 1})
	gl.BindTexture(gl.TEXTURE_2D, r.coverTex)
	r.draw(r.back, asm.Back.PartMatrix().Mul(math.Translate(math.V3(0, 0, -thick/2))))
	r.draw(r.spine, asm.Spine.PartMatrix())
	r.draw(r.cover, asm.Cover.PartMatrix().Mul(math.Translate(math.V3(0, 0, thick/2))))

	r.program.SetInt("uMirrorBack", 1)
	for i, page := range asm.Pages {
		sheet := r.sheets[i]
		state := page.DeformState()
		if b.Model.Flat(state) {
			if sheet.Reset() {
				r.pages[i].update(sheet.Mesh)
			}
		} else {
			sheet.Deform(func(dst, rest []math.Vec3) { b.Model.Apply(dst, rest, state) })
			r.pages[i].update(sheet.Mesh)
		}
		gl.BindTexture(gl.TEXTURE_2D, r.textures[i])
		r.draw(r.pages[i], page.Hinge.PartMatrix())
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// ReadPixels returns the current framebuffer, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) draw(m gpuMesh, model math.Mat4) {
	r.program.SetMat4("uModel", model.Ptr())
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func upload(m *mesh.Mesh, usage uint32) gpuMesh {
	var g gpuMesh
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*mesh.VertexSize, unsafe.Pointer(&m.Vertices[0]), usage)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.VertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.VertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	g.count = int32(len(m.Indices))

	gl.BindVertexArray(0)
	return g
}

func (g gpuMesh) update(m *mesh.Mesh) {
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Vertices)*mesh.VertexSize, unsafe.Pointer(&m.Vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (g gpuMesh) delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}

func createTexture(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
