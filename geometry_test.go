package tiranga_test

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/tiranga"
)

const tol = 1e-5

func approx(a, b ms3.Vec, tol float32) bool {
	return ms3.Norm(ms3.Sub(a, b)) <= tol
}

func TestCircleFan(t *testing.T) {
	const radius, aspect = 0.25, 1.25
	for _, segments := range []int{1, 2, 3, 7, 50, 360} {
		pts, err := tiranga.CircleFan(segments, radius, aspect)
		if err != nil {
			t.Fatal(err)
		}
		if len(pts) != segments+2 {
			t.Fatalf("segments=%d: want %d points, got %d", segments, segments+2, len(pts))
		}
		if pts[0] != (ms3.Vec{}) {
			t.Errorf("segments=%d: first point not center: %v", segments, pts[0])
		}
		if !approx(pts[1], pts[segments+1], tol) {
			t.Errorf("segments=%d: fan not closed: %v != %v", segments, pts[1], pts[segments+1])
		}
		for i, p := range pts[1:] {
			// Undo the aspect stretch to recover the circle.
			unstretched := ms3.Vec{X: p.X, Y: p.Y / aspect}
			if d := ms3.Norm(unstretched); math32.Abs(d-radius) > tol {
				t.Errorf("segments=%d: rim point %d at distance %g", segments, i+1, d)
			}
			if p.Z != 0 {
				t.Errorf("segments=%d: rim point %d has nonzero Z", segments, i+1)
			}
		}
	}
}

func TestCircleFanFlag(t *testing.T) {
	pts, err := tiranga.CircleFan(50, 0.25, 1.25)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 52 {
		t.Fatalf("want 52 points, got %d", len(pts))
	}
	if !approx(pts[1], ms3.Vec{X: 0.25}, tol) {
		t.Error("first rim point", pts[1])
	}
	if !approx(pts[26], ms3.Vec{X: -0.25}, tol) {
		t.Error("half way rim point", pts[26])
	}
	// A quarter turn shows the vertical stretch.
	quarter, err := tiranga.CircleFan(4, 0.25, 1.25)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(quarter[2], ms3.Vec{Y: 0.3125}, tol) {
		t.Error("quarter rim point not stretched", quarter[2])
	}
}

func TestSpokes(t *testing.T) {
	const radius = 0.25
	for _, count := range []int{1, 2, 5, 24, 100} {
		pts, err := tiranga.Spokes(count, radius)
		if err != nil {
			t.Fatal(err)
		}
		if len(pts) != 2*count {
			t.Fatalf("count=%d: want %d points, got %d", count, 2*count, len(pts))
		}
		for i := 0; i < len(pts); i += 2 {
			if pts[i] != (ms3.Vec{}) {
				t.Errorf("count=%d: point %d not center: %v", count, i, pts[i])
			}
			if d := ms3.Norm(pts[i+1]); math32.Abs(d-radius) > tol {
				t.Errorf("count=%d: rim point %d at distance %g", count, i+1, d)
			}
		}
	}
}

func TestSpokesFlag(t *testing.T) {
	pts, err := tiranga.Spokes(24, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 48 {
		t.Fatalf("want 48 points, got %d", len(pts))
	}
	if pts[2] != (ms3.Vec{}) {
		t.Error("second spoke center", pts[2])
	}
	if !approx(pts[3], ms3.Vec{X: 0.2415, Y: 0.0647}, 1e-4) {
		t.Error("second spoke rim", pts[3])
	}
}

func TestGeneratorLegacyPi(t *testing.T) {
	gen := tiranga.Generator{Pi: tiranga.LegacyPi}
	pts, err := gen.CircleFan(50, 0.25, 1.25)
	if err != nil {
		t.Fatal(err)
	}
	// With 3.14 the half turn falls short of π so the point sits slightly above the X axis.
	if pts[26].Y <= 0 || pts[26].Y > 1e-3 {
		t.Error("unexpected legacy half way point", pts[26])
	}
	// And the fan does not close exactly.
	if approx(pts[1], pts[51], 1e-4) {
		t.Error("legacy fan unexpectedly closed")
	}
	spokes, err := gen.Spokes(24, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if spokes[1] != (ms3.Vec{X: 0.25}) {
		t.Error("first spoke should be exact at angle zero", spokes[1])
	}
}

func TestGeometryBadArgs(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	var tests = []struct {
		name string
		fn   func() ([]ms3.Vec, error)
	}{
		{"fan zero segments", func() ([]ms3.Vec, error) { return tiranga.CircleFan(0, 1, 1) }},
		{"fan negative segments", func() ([]ms3.Vec, error) { return tiranga.CircleFan(-3, 1, 1) }},
		{"fan zero radius", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, 0, 1) }},
		{"fan negative radius", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, -1, 1) }},
		{"fan NaN radius", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, nan, 1) }},
		{"fan Inf radius", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, inf, 1) }},
		{"fan NaN aspect", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, 1, nan) }},
		{"fan zero aspect", func() ([]ms3.Vec, error) { return tiranga.CircleFan(8, 1, 0) }},
		{"spokes zero count", func() ([]ms3.Vec, error) { return tiranga.Spokes(0, 1) }},
		{"spokes zero radius", func() ([]ms3.Vec, error) { return tiranga.Spokes(4, 0) }},
		{"spokes NaN radius", func() ([]ms3.Vec, error) { return tiranga.Spokes(4, nan) }},
	}
	for _, test := range tests {
		pts, err := test.fn()
		if !errors.Is(err, tiranga.ErrBadGeometry) {
			t.Errorf("%s: want ErrBadGeometry, got %v", test.name, err)
		}
		if pts != nil {
			t.Errorf("%s: want nil points on error, got %d", test.name, len(pts))
		}
	}
}

func TestRect(t *testing.T) {
	bb := ms2.Box{Min: ms2.Vec{X: -1, Y: 0.33}, Max: ms2.Vec{X: 1, Y: 1}}
	pts := tiranga.Rect(bb)
	want := []ms3.Vec{
		{X: -1, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 0.33},
		{X: 1, Y: 1}, {X: 1, Y: 0.33}, {X: -1, Y: 0.33},
	}
	if len(pts) != len(want) {
		t.Fatalf("want %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: want %v, got %v", i, want[i], pts[i])
		}
	}
}
