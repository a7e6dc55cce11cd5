//go:build !tinygo && cgo

package glrender

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/tiranga"
)

// Window is a GLFW window with a current OpenGL 3.3 core context.
// It must be created and used from the main thread, see [runtime.LockOSThread].
type Window struct {
	win *glfw.Window
}

// OpenWindow initializes GLFW, opens a window and loads the OpenGL functions.
// Errors wrap [tiranga.ErrWindow] or [tiranga.ErrLoader].
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", tiranga.ErrWindow, err)
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: initializing GLFW: %w", tiranga.ErrWindow, err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", tiranga.ErrWindow, err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", tiranga.ErrLoader, err)
	}

	fbw, fbh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return &Window{win: win}, nil
}

// Run redraws r until the window is asked to close by the user or by pressing Escape.
func (w *Window) Run(r *tiranga.Renderer) error {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		err := r.RenderFrame()
		if err != nil {
			return err
		}
		w.win.SwapBuffers()
	}
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

// Run opens a window, draws the flag until the window closes and releases everything.
// It must be called from the main thread.
func Run(cfg WindowConfig, chakra tiranga.ChakraConfig) error {
	scene, err := tiranga.NewFlagScene(chakra)
	if err != nil {
		return err
	}
	win, err := OpenWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Close()
	log.Println("OpenGL", gl.GoStr(gl.GetString(gl.VERSION)))

	dev, err := NewGLDevice()
	if err != nil {
		return err
	}
	r := tiranga.NewRenderer(dev, scene)
	err = r.Init()
	if err != nil {
		return err
	}
	err = win.Run(r)
	if err != nil {
		r.Shutdown()
		return err
	}
	return r.Shutdown()
}
