//go:build !tinygo && cgo

package glrender

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/tiranga"
)

type vertexArray struct {
	vao, vbo uint32
	n        int
}

// GLDevice is a [tiranga.Device] backed by the OpenGL context current on the calling thread.
// All methods must be called from that thread.
type GLDevice struct {
	progs map[tiranga.Program]glgl.Program
	vaos  map[tiranga.VertexBuffer]vertexArray
}

// NewGLDevice returns a device for the current context. The GL function
// pointers must already be loaded, see [OpenWindow].
func NewGLDevice() (*GLDevice, error) {
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("%w: pending GL error: %w", tiranga.ErrDevice, err)
	}
	return &GLDevice{
		progs: make(map[tiranga.Program]glgl.Program),
		vaos:  make(map[tiranga.VertexBuffer]vertexArray),
	}, nil
}

// CompileProgram compiles and links both stages, checking compile and link status.
func (d *GLDevice) CompileProgram(src tiranga.ProgramSource) (tiranga.Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   src.Vertex.Source + "\x00",
		Fragment: src.Fragment.Source + "\x00",
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", tiranga.ErrShader, src.Fragment.Purpose, err)
	}
	id := tiranga.Program(prog.ID())
	if id == 0 {
		return 0, fmt.Errorf("%w: %s: got program id 0", tiranga.ErrShader, src.Fragment.Purpose)
	}
	d.progs[id] = prog
	return id, nil
}

// UploadVertices creates a vertex array with a static buffer bound to attribute 0.
func (d *GLDevice) UploadVertices(v []ms3.Vec) (tiranga.VertexBuffer, error) {
	if len(v) == 0 {
		return 0, fmt.Errorf("%w: empty vertex upload", tiranga.ErrDevice)
	}
	data := appendVertexData(make([]float32, 0, floatsPerVertex*len(v)), v)
	va := vertexArray{n: len(v)}
	gl.GenVertexArrays(1, &va.vao)
	gl.GenBuffers(1, &va.vbo)
	gl.BindVertexArray(va.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, floatsPerVertex, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		va.delete()
		return 0, fmt.Errorf("%w: uploading %d vertices: %w", tiranga.ErrDevice, len(v), err)
	}
	id := tiranga.VertexBuffer(va.vao)
	d.vaos[id] = va
	return id, nil
}

// Clear clears the color buffer to c.
func (d *GLDevice) Clear(c tiranga.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw issues a single glDrawArrays call.
func (d *GLDevice) Draw(p tiranga.Program, vb tiranga.VertexBuffer, mode tiranga.DrawMode, count int) error {
	prog, ok := d.progs[p]
	if !ok {
		return fmt.Errorf("%w: invalid program handle %d", tiranga.ErrDevice, p)
	}
	va, ok := d.vaos[vb]
	if !ok {
		return fmt.Errorf("%w: invalid vertex buffer handle %d", tiranga.ErrDevice, vb)
	}
	if count < 0 || count > va.n {
		return fmt.Errorf("%w: draw of %d vertices from buffer of %d", tiranga.ErrDevice, count, va.n)
	}
	glmode, err := glDrawMode(mode)
	if err != nil {
		return err
	}
	prog.Bind()
	gl.BindVertexArray(va.vao)
	gl.DrawArrays(glmode, 0, int32(count))
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		return fmt.Errorf("%w: %w", tiranga.ErrDevice, err)
	}
	return nil
}

// DeleteProgram deletes the GL program p.
func (d *GLDevice) DeleteProgram(p tiranga.Program) {
	prog, ok := d.progs[p]
	if !ok {
		return
	}
	prog.Delete()
	delete(d.progs, p)
}

// DeleteVertices deletes the vertex array and buffer behind vb.
func (d *GLDevice) DeleteVertices(vb tiranga.VertexBuffer) {
	va, ok := d.vaos[vb]
	if !ok {
		return
	}
	va.delete()
	delete(d.vaos, vb)
}

func (va *vertexArray) delete() {
	gl.DeleteBuffers(1, &va.vbo)
	gl.DeleteVertexArrays(1, &va.vao)
}

func glDrawMode(mode tiranga.DrawMode) (uint32, error) {
	switch mode {
	case tiranga.Triangles:
		return gl.TRIANGLES, nil
	case tiranga.TriangleFan:
		return gl.TRIANGLE_FAN, nil
	case tiranga.Lines:
		return gl.LINES, nil
	}
	return 0, fmt.Errorf("%w: unsupported draw mode %s", tiranga.ErrDevice, mode)
}
