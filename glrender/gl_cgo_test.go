//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"testing"

	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/tiranga"
)

// GL calls must run on the main thread so the GPU checks run in TestMain.
func TestMain(m *testing.M) {
	runtime.LockOSThread()
	var exit int
	_, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "tiranga test",
		Version: [2]int{4, 1},
		Width:   1,
		Height:  1,
	})
	if err != nil {
		log.Println("skipping GL device tests, no OpenGL context:", err)
	} else {
		err = testGLDevice()
		if err != nil {
			exit = 1
			log.Println("FAIL GL device:", err)
		}
		terminate()
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run() | exit)
}

func testGLDevice() error {
	scene, err := tiranga.NewFlagScene(tiranga.DefaultChakraConfig())
	if err != nil {
		return err
	}
	dev, err := NewGLDevice()
	if err != nil {
		return err
	}
	r := tiranga.NewRenderer(dev, scene)
	err = r.Init()
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		err = r.RenderFrame()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	err = r.Shutdown()
	if err != nil {
		return err
	}
	if len(dev.progs) != 0 || len(dev.vaos) != 0 {
		return fmt.Errorf("leaked %d programs and %d vertex arrays", len(dev.progs), len(dev.vaos))
	}

	// A fragment stage that does not compile must surface as ErrShader.
	bad := tiranga.ProgramSource{
		Vertex: tiranga.PositionVertexShader,
		Fragment: tiranga.ShaderStage{
			Kind:    tiranga.FragmentShader,
			Purpose: "broken",
			Source:  "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = undefinedColor; }\n",
		},
	}
	_, err = dev.CompileProgram(bad)
	if !errors.Is(err, tiranga.ErrShader) {
		return fmt.Errorf("want ErrShader for broken fragment stage, got %v", err)
	}
	return nil
}
