package tiranga

import (
	"fmt"
	"strconv"
	"strings"
)

// ShaderKind is the pipeline stage a shader source is compiled for.
type ShaderKind uint8

const (
	VertexShader ShaderKind = iota + 1
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "ShaderKind(" + strconv.Itoa(int(k)) + ")"
}

// ShaderStage is a single GLSL source with the stage it targets.
type ShaderStage struct {
	Kind   ShaderKind
	Source string
	// Purpose is a short human readable description used in error messages.
	Purpose string
}

// Validate performs a shallow check of the source before it reaches the driver.
// It does not replace the compile status reported by the device.
func (st ShaderStage) Validate(want ShaderKind) error {
	switch {
	case st.Kind != want:
		return fmt.Errorf("%w: %s stage %q used as %s stage", ErrShader, st.Kind, st.Purpose, want)
	case !strings.HasPrefix(strings.TrimSpace(st.Source), "#version"):
		return fmt.Errorf("%w: %s stage %q missing #version directive", ErrShader, st.Kind, st.Purpose)
	case !strings.Contains(st.Source, "void main"):
		return fmt.Errorf("%w: %s stage %q missing main entry point", ErrShader, st.Kind, st.Purpose)
	}
	return nil
}

// PositionVertexShader passes attribute 0 through as clip space position.
var PositionVertexShader = ShaderStage{
	Kind:    VertexShader,
	Purpose: "position passthrough",
	Source: `#version 330 core
layout (location = 0) in vec3 aPos;
void main()
{
	gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`,
}

// ColorFragmentShader returns a fragment stage that writes c to every covered pixel.
func ColorFragmentShader(c Color, purpose string) ShaderStage {
	var b strings.Builder
	b.WriteString("#version 330 core\nout vec4 FragColor;\nvoid main()\n{\n\tFragColor = vec4(")
	for i, v := range [4]float32{c.R, c.G, c.B, c.A} {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', 2, 32))
	}
	b.WriteString(");\n}\n")
	return ShaderStage{Kind: FragmentShader, Source: b.String(), Purpose: purpose}
}

// ProgramSource is a vertex and fragment stage pair that draws in a single flat color.
// Color duplicates what the fragment stage writes so devices that do not run GLSL can paint it.
type ProgramSource struct {
	Vertex   ShaderStage
	Fragment ShaderStage
	Color    Color
}

// Validate validates both stages.
func (ps ProgramSource) Validate() error {
	if err := ps.Vertex.Validate(VertexShader); err != nil {
		return err
	}
	return ps.Fragment.Validate(FragmentShader)
}

// Programs returns one constant color program per distinct shape color,
// in the order returned by [Scene.Colors].
func (s *Scene) Programs() []ProgramSource {
	colors := s.Colors()
	progs := make([]ProgramSource, len(colors))
	for i, c := range colors {
		progs[i] = ProgramSource{
			Vertex:   PositionVertexShader,
			Fragment: ColorFragmentShader(c, s.colorPurpose(c)),
			Color:    c,
		}
	}
	return progs
}

// colorPurpose names a color after the shapes that use it.
func (s *Scene) colorPurpose(c Color) string {
	var names []string
	for i := range s.Shapes {
		if s.Shapes[i].Color == c {
			names = append(names, s.Shapes[i].Name)
		}
	}
	return strings.Join(names, "+") + " color"
}
