package tiranga

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Generator computes emblem geometry in normalized device coordinates.
// The zero value is ready to use.
type Generator struct {
	// Pi is the value of π used for every angle. Zero means [math32.Pi].
	// Both fan and spokes share it so they stay angularly aligned.
	Pi float32
}

func (g Generator) pi() float32 {
	if g.Pi == 0 {
		return math32.Pi
	}
	return g.Pi
}

// CircleFan returns a triangle fan approximating a filled circle of the given radius
// centered at the origin. The first point is the center, followed by segments+1 rim points
// where the last closes the fan onto the first. Rim Y coordinates are multiplied by aspect
// to compensate for a non-square framebuffer.
func (g Generator) CircleFan(segments int, radius, aspect float32) ([]ms3.Vec, error) {
	if segments < 1 {
		return nil, fmt.Errorf("%w: circle fan needs at least 1 segment, got %d", ErrBadGeometry, segments)
	}
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	if !isFinite(aspect) || aspect == 0 {
		return nil, fmt.Errorf("%w: bad aspect %s", ErrBadGeometry, fmtf(aspect))
	}
	pi := g.pi()
	pts := make([]ms3.Vec, 0, segments+2)
	pts = append(pts, ms3.Vec{})
	for i := 0; i <= segments; i++ {
		angle := 2 * pi * float32(i) / float32(segments)
		s, c := math32.Sincos(angle)
		pts = append(pts, ms3.Vec{X: radius * c, Y: radius * s * aspect})
	}
	return pts, nil
}

// Spokes returns count line segments radiating from the origin, evenly spaced in angle.
// Points come in (center, rim) pairs. Unlike [Generator.CircleFan] no aspect correction is applied.
func (g Generator) Spokes(count int, radius float32) ([]ms3.Vec, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: need at least 1 spoke, got %d", ErrBadGeometry, count)
	}
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	pi := g.pi()
	pts := make([]ms3.Vec, 0, 2*count)
	for i := 0; i < count; i++ {
		angle := 2 * pi * float32(i) / float32(count)
		s, c := math32.Sincos(angle)
		pts = append(pts, ms3.Vec{}, ms3.Vec{X: radius * c, Y: radius * s})
	}
	return pts, nil
}

// CircleFan calls [Generator.CircleFan] on the zero Generator.
func CircleFan(segments int, radius, aspect float32) ([]ms3.Vec, error) {
	return Generator{}.CircleFan(segments, radius, aspect)
}

// Spokes calls [Generator.Spokes] on the zero Generator.
func Spokes(count int, radius float32) ([]ms3.Vec, error) {
	return Generator{}.Spokes(count, radius)
}

// Rect returns two triangles covering bb in the Z=0 plane.
func Rect(bb ms2.Box) []ms3.Vec {
	tl := ms3.Vec{X: bb.Min.X, Y: bb.Max.Y}
	tr := ms3.Vec{X: bb.Max.X, Y: bb.Max.Y}
	bl := ms3.Vec{X: bb.Min.X, Y: bb.Min.Y}
	br := ms3.Vec{X: bb.Max.X, Y: bb.Min.Y}
	return []ms3.Vec{
		tl, tr, bl,
		tr, br, bl,
	}
}

func checkRadius(radius float32) error {
	if radius > 0 && !math32.IsInf(radius, 1) {
		return nil
	}
	return fmt.Errorf("%w: bad radius %s", ErrBadGeometry, fmtf(radius))
}

func fmtf(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', 6, 32)
}
