// Package glrender provides [tiranga.Device] implementations and the window
// host loop. [GLDevice] and [Window] require cgo. [ImageDevice] is pure Go.
package glrender

import (
	"errors"
	"image"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/tiranga"
)

// floatsPerVertex is the vertex layout shared by all devices: X, Y, Z.
const floatsPerVertex = 3

// ndc is the normalized device coordinate square mapped onto the render target.
var ndc = ms2.Box{Min: ms2.Vec{X: -1, Y: -1}, Max: ms2.Vec{X: 1, Y: 1}}

// WindowConfig sets up the window opened by [OpenWindow].
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// DefaultWindowConfig returns a 3:2 window matching the flag's proportions.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:  1200,
		Height: 800,
		Title:  "Indian Flag",
	}
}

func (cfg WindowConfig) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("window dimensions must be positive")
	}
	return nil
}

// RenderImage runs a full renderer lifecycle for scene on an [ImageDevice]
// of the given size and returns the single rendered frame.
func RenderImage(scene *tiranga.Scene, width, height int) (*image.RGBA, error) {
	dev, err := NewImageDevice(width, height)
	if err != nil {
		return nil, err
	}
	r := tiranga.NewRenderer(dev, scene)
	err = r.Init()
	if err != nil {
		return nil, err
	}
	err = r.RenderFrame()
	if err != nil {
		r.Shutdown()
		return nil, err
	}
	err = r.Shutdown()
	if err != nil {
		return nil, err
	}
	return dev.Image(), nil
}

// appendVertexData flattens v into dst as consecutive X, Y, Z floats.
func appendVertexData(dst []float32, v []ms3.Vec) []float32 {
	for i := range v {
		dst = append(dst, v[i].X, v[i].Y, v[i].Z)
	}
	return dst
}
