package tiranga

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Color is a linear RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Flag colors.
var (
	Saffron = Color{R: 1.00, G: 0.60, B: 0.20, A: 1}
	Green   = Color{R: 0.07, G: 0.53, B: 0.03, A: 1}
	Navy    = Color{R: 0.00, G: 0.00, B: 0.60, A: 1}
	White   = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA implements [color.Color]. Components are clamped to [0,1]
// and scaled so that an opaque color maps to the non-premultiplied value.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	} else if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// DrawMode is the primitive a vertex sequence is assembled into.
type DrawMode uint8

const (
	// Triangles draws every three vertices as an independent triangle.
	Triangles DrawMode = iota
	// TriangleFan draws triangles sharing vertex 0 as apex.
	TriangleFan
	// Lines draws every two vertices as an independent segment.
	Lines
)

func (m DrawMode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	case Lines:
		return "lines"
	}
	return fmt.Sprintf("DrawMode(%d)", uint8(m))
}

// minVertices returns the smallest vertex count that draws anything and the
// multiple the count must be of.
func (m DrawMode) minVertices() (least, multiple int) {
	switch m {
	case Triangles:
		return 3, 3
	case TriangleFan:
		return 3, 1
	case Lines:
		return 2, 2
	}
	return -1, -1
}

// Shape is a static vertex sequence drawn with a single flat color.
type Shape struct {
	Name     string
	Vertices []ms3.Vec
	Color    Color
	Mode     DrawMode
}

// Validate checks the vertex count is consistent with the draw mode and
// that all coordinates are finite.
func (s *Shape) Validate() error {
	least, multiple := s.Mode.minVertices()
	n := len(s.Vertices)
	switch {
	case least < 0:
		return fmt.Errorf("%w: shape %q has unknown draw mode %s", ErrBadGeometry, s.Name, s.Mode)
	case n < least:
		return fmt.Errorf("%w: shape %q needs at least %d vertices for %s, got %d", ErrBadGeometry, s.Name, least, s.Mode, n)
	case n%multiple != 0:
		return fmt.Errorf("%w: shape %q vertex count %d not a multiple of %d for %s", ErrBadGeometry, s.Name, n, multiple, s.Mode)
	}
	for i, v := range s.Vertices {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			return fmt.Errorf("%w: shape %q vertex %d is not finite", ErrBadGeometry, s.Name, i)
		}
	}
	return nil
}

// ShapeID indexes the shapes of a [Scene]. Shapes are drawn in ShapeID order.
type ShapeID uint8

const (
	SaffronBand ShapeID = iota
	GreenBand
	ChakraFill
	ChakraSpokes
	// NumShapes is the number of shapes in a flag scene.
	NumShapes = int(ChakraSpokes) + 1
)

func (id ShapeID) String() string {
	switch id {
	case SaffronBand:
		return "saffron band"
	case GreenBand:
		return "green band"
	case ChakraFill:
		return "chakra fill"
	case ChakraSpokes:
		return "chakra spokes"
	}
	return fmt.Sprintf("ShapeID(%d)", uint8(id))
}

// Scene is the complete static description of one frame.
type Scene struct {
	Clear  Color
	Shapes [NumShapes]Shape
}

// Shape returns the shape with the given id.
func (s *Scene) Shape(id ShapeID) *Shape {
	return &s.Shapes[id]
}

// Validate validates every shape of the scene.
func (s *Scene) Validate() error {
	var errs []error
	for i := range s.Shapes {
		errs = append(errs, s.Shapes[i].Validate())
	}
	return errors.Join(errs...)
}

// Colors returns the distinct shape colors in the order they are first drawn.
func (s *Scene) Colors() []Color {
	var colors []Color
OUTER:
	for i := range s.Shapes {
		c := s.Shapes[i].Color
		for _, seen := range colors {
			if seen == c {
				continue OUTER
			}
		}
		colors = append(colors, c)
	}
	return colors
}

// ChakraConfig holds the emblem parameters.
type ChakraConfig struct {
	Radius   float32
	Segments int
	Spokes   int
	// Aspect stretches the filled disk vertically. The spokes are not stretched.
	Aspect float32
	// Pi is passed on to [Generator.Pi].
	Pi float32
}

// DefaultChakraConfig returns the emblem parameters of the flag
// drawn in a 3:2 window.
func DefaultChakraConfig() ChakraConfig {
	return ChakraConfig{
		Radius:   0.25,
		Segments: 50,
		Spokes:   24,
		Aspect:   1.25,
	}
}

// Band boundaries in normalized device coordinates.
var (
	saffronBounds = ms2.Box{Min: ms2.Vec{X: -1, Y: 0.33}, Max: ms2.Vec{X: 1, Y: 1}}
	greenBounds   = ms2.Box{Min: ms2.Vec{X: -1, Y: -1}, Max: ms2.Vec{X: 1, Y: -0.33}}
)

// NewFlagScene builds the flag scene. Geometry is generated once here.
func NewFlagScene(cfg ChakraConfig) (*Scene, error) {
	gen := Generator{Pi: cfg.Pi}
	fan, err := gen.CircleFan(cfg.Segments, cfg.Radius, cfg.Aspect)
	if err != nil {
		return nil, fmt.Errorf("chakra fill: %w", err)
	}
	spokes, err := gen.Spokes(cfg.Spokes, cfg.Radius)
	if err != nil {
		return nil, fmt.Errorf("chakra spokes: %w", err)
	}
	scene := &Scene{Clear: White}
	scene.Shapes[SaffronBand] = Shape{Name: SaffronBand.String(), Vertices: Rect(saffronBounds), Color: Saffron, Mode: Triangles}
	scene.Shapes[GreenBand] = Shape{Name: GreenBand.String(), Vertices: Rect(greenBounds), Color: Green, Mode: Triangles}
	scene.Shapes[ChakraFill] = Shape{Name: ChakraFill.String(), Vertices: fan, Color: Navy, Mode: TriangleFan}
	scene.Shapes[ChakraSpokes] = Shape{Name: ChakraSpokes.String(), Vertices: spokes, Color: Navy, Mode: Lines}
	return scene, nil
}
