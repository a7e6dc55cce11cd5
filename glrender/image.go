package glrender

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype/raster"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/tiranga"
	"golang.org/x/image/math/fixed"
)

// lineWidth is the stroke width of [tiranga.Lines] primitives in pixels,
// matching the default GL line width.
var lineWidth = fixed.I(1)

type imageProgram struct {
	color tiranga.Color
	live  bool
}

type imageBuffer struct {
	verts []ms3.Vec
	live  bool
}

// ImageDevice is a [tiranga.Device] that rasterizes on the CPU into an [image.RGBA].
// Fragment shaders are not executed: programs paint [tiranga.ProgramSource.Color].
// Filled primitives are antialiased.
type ImageDevice struct {
	img     *image.RGBA
	ras     *raster.Rasterizer
	painter *raster.RGBAPainter
	// handle-1 indexes these slices. Deleted entries stay in place so handles are never reused.
	progs []imageProgram
	bufs  []imageBuffer
	path  raster.Path
}

// NewImageDevice returns a device drawing into a new width by height image.
func NewImageDevice(width, height int) (*ImageDevice, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bad image size %dx%d", tiranga.ErrDevice, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ras := raster.NewRasterizer(width, height)
	ras.UseNonZeroWinding = true
	return &ImageDevice{
		img:     img,
		ras:     ras,
		painter: raster.NewRGBAPainter(img),
	}, nil
}

// Image returns the render target. It is shared with the device, not copied.
func (d *ImageDevice) Image() *image.RGBA { return d.img }

// CompileProgram records the constant color of src after validating its stages.
func (d *ImageDevice) CompileProgram(src tiranga.ProgramSource) (tiranga.Program, error) {
	if err := src.Validate(); err != nil {
		return 0, err
	}
	d.progs = append(d.progs, imageProgram{color: src.Color, live: true})
	return tiranga.Program(len(d.progs)), nil
}

// UploadVertices keeps a private copy of v.
func (d *ImageDevice) UploadVertices(v []ms3.Vec) (tiranga.VertexBuffer, error) {
	if len(v) == 0 {
		return 0, fmt.Errorf("%w: empty vertex upload", tiranga.ErrDevice)
	}
	d.bufs = append(d.bufs, imageBuffer{verts: append([]ms3.Vec(nil), v...), live: true})
	return tiranga.VertexBuffer(len(d.bufs)), nil
}

// Clear fills the whole image with c.
func (d *ImageDevice) Clear(c tiranga.Color) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// Draw rasterizes count vertices of vb assembled as mode.
func (d *ImageDevice) Draw(p tiranga.Program, vb tiranga.VertexBuffer, mode tiranga.DrawMode, count int) error {
	prog, err := d.program(p)
	if err != nil {
		return err
	}
	buf, err := d.buffer(vb)
	if err != nil {
		return err
	}
	if count < 0 || count > len(buf.verts) {
		return fmt.Errorf("%w: draw of %d vertices from buffer of %d", tiranga.ErrDevice, count, len(buf.verts))
	}
	v := buf.verts[:count]
	d.ras.Clear()
	switch mode {
	case tiranga.Triangles:
		for i := 0; i+2 < len(v); i += 3 {
			d.addTriangle(v[i], v[i+1], v[i+2])
		}
	case tiranga.TriangleFan:
		for i := 1; i+1 < len(v); i++ {
			d.addTriangle(v[0], v[i], v[i+1])
		}
	case tiranga.Lines:
		for i := 0; i+1 < len(v); i += 2 {
			d.path.Clear()
			d.path.Start(d.toPixel(v[i]))
			d.path.Add1(d.toPixel(v[i+1]))
			raster.Stroke(d.ras, d.path, lineWidth, raster.ButtCapper, raster.BevelJoiner)
		}
	default:
		return fmt.Errorf("%w: unsupported draw mode %s", tiranga.ErrDevice, mode)
	}
	d.painter.SetColor(prog.color.NRGBA())
	d.ras.Rasterize(d.painter)
	return nil
}

// DeleteProgram invalidates p.
func (d *ImageDevice) DeleteProgram(p tiranga.Program) {
	if _, err := d.program(p); err == nil {
		d.progs[p-1] = imageProgram{}
	}
}

// DeleteVertices invalidates vb and drops its vertices.
func (d *ImageDevice) DeleteVertices(vb tiranga.VertexBuffer) {
	if _, err := d.buffer(vb); err == nil {
		d.bufs[vb-1] = imageBuffer{}
	}
}

// Live returns the number of programs and buffers not yet deleted.
func (d *ImageDevice) Live() (programs, buffers int) {
	for i := range d.progs {
		if d.progs[i].live {
			programs++
		}
	}
	for i := range d.bufs {
		if d.bufs[i].live {
			buffers++
		}
	}
	return programs, buffers
}

func (d *ImageDevice) program(p tiranga.Program) (imageProgram, error) {
	if p == 0 || int(p) > len(d.progs) || !d.progs[p-1].live {
		return imageProgram{}, fmt.Errorf("%w: invalid program handle %d", tiranga.ErrDevice, p)
	}
	return d.progs[p-1], nil
}

func (d *ImageDevice) buffer(vb tiranga.VertexBuffer) (imageBuffer, error) {
	if vb == 0 || int(vb) > len(d.bufs) || !d.bufs[vb-1].live {
		return imageBuffer{}, fmt.Errorf("%w: invalid vertex buffer handle %d", tiranga.ErrDevice, vb)
	}
	return d.bufs[vb-1], nil
}

func (d *ImageDevice) addTriangle(a, b, c ms3.Vec) {
	pa := d.toPixel(a)
	d.ras.Start(pa)
	d.ras.Add1(d.toPixel(b))
	d.ras.Add1(d.toPixel(c))
	d.ras.Add1(pa)
}

// toPixel maps a normalized device coordinate to the image with Y pointing down.
func (d *ImageDevice) toPixel(v ms3.Vec) fixed.Point26_6 {
	bb := d.img.Bounds()
	sz := ndc.Size()
	u := ms2.Sub(ms2.Vec{X: v.X, Y: v.Y}, ndc.Min)
	x := u.X / sz.X * float32(bb.Dx())
	y := (1 - u.Y/sz.Y) * float32(bb.Dy())
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}

func toFixed(f float32) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}
