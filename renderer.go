package tiranga

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// Program is a device handle to a compiled shader program. Zero is never a valid handle.
type Program uint32

// VertexBuffer is a device handle to uploaded vertex data. Zero is never a valid handle.
type VertexBuffer uint32

// Device is the graphics context a [Renderer] draws with.
// Implementations are not expected to be safe for concurrent use.
type Device interface {
	// CompileProgram compiles and links src. Failures should wrap [ErrShader].
	CompileProgram(src ProgramSource) (Program, error)
	// UploadVertices stores v on the device as 3 contiguous floats per vertex.
	UploadVertices(v []ms3.Vec) (VertexBuffer, error)
	// Clear fills the whole target with c.
	Clear(c Color)
	// Draw assembles the first count vertices of vb with mode and shades them with p.
	Draw(p Program, vb VertexBuffer, mode DrawMode, count int) error
	DeleteProgram(p Program)
	DeleteVertices(vb VertexBuffer)
}

// State is the lifecycle stage of a [Renderer].
type State uint8

const (
	Uninitialized State = iota
	Initialized
	ShutDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case ShutDown:
		return "shut down"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type drawCall struct {
	prog  Program
	vbo   VertexBuffer
	mode  DrawMode
	count int
}

// Renderer owns the device resources of a [Scene] and redraws it on request.
// Its lifecycle is Uninitialized → Initialized → ShutDown.
type Renderer struct {
	dev      Device
	scene    *Scene
	state    State
	programs []Program
	draws    [NumShapes]drawCall
}

// NewRenderer returns an uninitialized renderer for scene. Call [Renderer.Init]
// before rendering.
func NewRenderer(dev Device, scene *Scene) *Renderer {
	return &Renderer{dev: dev, scene: scene}
}

// State returns the current lifecycle stage.
func (r *Renderer) State() State { return r.state }

// Init compiles one program per scene color and uploads each shape's vertices.
// If any step fails the resources created so far are released and the renderer
// stays uninitialized.
func (r *Renderer) Init() (err error) {
	if r.state != Uninitialized {
		return fmt.Errorf("%w: Init called when %s", ErrState, r.state)
	}
	if r.dev == nil || r.scene == nil {
		return fmt.Errorf("%w: nil device or scene", ErrState)
	}
	err = r.scene.Validate()
	if err != nil {
		return err
	}
	srcs := r.scene.Programs()
	for _, src := range srcs {
		err = src.Validate()
		if err != nil {
			return err
		}
	}
	defer func() {
		if err != nil {
			r.release()
		}
	}()
	for _, src := range srcs {
		prog, err := r.dev.CompileProgram(src)
		if err != nil {
			return fmt.Errorf("compiling %s: %w", src.Fragment.Purpose, err)
		}
		r.programs = append(r.programs, prog)
	}
	for i := range r.scene.Shapes {
		shape := &r.scene.Shapes[i]
		vbo, err := r.dev.UploadVertices(shape.Vertices)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", shape.Name, err)
		}
		r.draws[i] = drawCall{
			prog:  r.programs[colorIndex(srcs, shape.Color)],
			vbo:   vbo,
			mode:  shape.Mode,
			count: len(shape.Vertices),
		}
	}
	r.state = Initialized
	return nil
}

// RenderFrame clears the target and draws every shape in [ShapeID] order.
// It reads no changing state so every call produces the same image.
func (r *Renderer) RenderFrame() error {
	if r.state != Initialized {
		return fmt.Errorf("%w: RenderFrame called when %s", ErrState, r.state)
	}
	r.dev.Clear(r.scene.Clear)
	for i, dc := range r.draws {
		err := r.dev.Draw(dc.prog, dc.vbo, dc.mode, dc.count)
		if err != nil {
			return fmt.Errorf("drawing %s: %w", ShapeID(i), err)
		}
	}
	return nil
}

// Shutdown releases all buffers and programs. It must be called once after the last frame.
func (r *Renderer) Shutdown() error {
	if r.state != Initialized {
		return fmt.Errorf("%w: Shutdown called when %s", ErrState, r.state)
	}
	r.release()
	r.state = ShutDown
	return nil
}

func (r *Renderer) release() {
	for i := range r.draws {
		if r.draws[i].vbo != 0 {
			r.dev.DeleteVertices(r.draws[i].vbo)
		}
	}
	for _, prog := range r.programs {
		r.dev.DeleteProgram(prog)
	}
	r.draws = [NumShapes]drawCall{}
	r.programs = r.programs[:0]
}

func colorIndex(srcs []ProgramSource, c Color) int {
	for i := range srcs {
		if srcs[i].Color == c {
			return i
		}
	}
	panic(errors.New("tiranga: shape color missing from program list"))
}
