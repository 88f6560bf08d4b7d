package main

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/config"
	"github.com/p47t/chip8/internal/host"
	"github.com/p47t/chip8/internal/keymap"
	"github.com/p47t/chip8/internal/logger"
)

const (
	ScreenWidth  = chip8.GfxWidth
	ScreenHeight = chip8.GfxHeight

	// how long to sleep between steps. the machine wants to be stepped far
	// more often than its fastest instruction
	stepInterval = 100 * time.Microsecond

	// how often window events are polled
	pollInterval = time.Millisecond
)

type Emulator struct {
	sys    *chip8.System
	runner *host.Runner
	audio  *host.Audio

	background config.RGB
	sprite     config.RGB

	screenData            []byte
	window                *glfw.Window
	fullScreenTriangleVAO uint32
	bufferTexture         uint32
	shaderProgram         uint32
}

const vertexShader = `
#version 330

noperspective out vec2 TexCoord;

void main(void) {
    TexCoord.x = (gl_VertexID == 2)? 2.0: 0.0;
    TexCoord.y = (gl_VertexID == 1)? 2.0: 0.0;

	gl_Position = vec4(2.0 * TexCoord - 1.0, 0.0, 1.0);
}
`

const fragmentShader = `
#version 330

uniform sampler2D buffer;
noperspective in vec2 TexCoord;

out vec3 outColor;

void main(void) {
	outColor = texture(buffer, TexCoord).rgb;
}
`

// GLFW key codes for digits and letters are their ASCII values
func buildKeyMap() map[glfw.Key]int {
	m := make(map[glfw.Key]int, len(keymap.Layout))
	for _, b := range keymap.Layout {
		m[glfw.Key(b.Host)] = b.Key
	}
	return m
}

func (emu *Emulator) Initialize(sys *chip8.System, cfg config.Config) error {
	emu.sys = sys
	emu.background = cfg.Background
	emu.sprite = cfg.Sprite

	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	// Create window
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	emu.window, err = glfw.CreateWindow(ScreenWidth*cfg.Scale, ScreenHeight*cfg.Scale, "Chip8", nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	emu.window.MakeContextCurrent()

	// presenting a frame must not wait for vertical sync or the machine
	// would only be stepped once per refresh
	glfw.SwapInterval(0)

	// Key handling
	keyMap := buildKeyMap()
	emu.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		c8Key, ok := keyMap[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			emu.sys.SetKey(c8Key, true)
		case glfw.Release:
			emu.sys.SetKey(c8Key, false)
		}
	})

	// the window exists from here on, so a failure must release it
	err = setup(emu.releaseWindow, emu.initGL, emu.linkProgram)
	if err != nil {
		return err
	}

	emu.screenData = make([]byte, ScreenWidth*ScreenHeight*3)
	emu.fillScreenData(&chip8.Framebuffer{})

	gl.GenTextures(1, &emu.bufferTexture)
	gl.BindTexture(gl.TEXTURE_2D, emu.bufferTexture)

	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGB,
		ScreenWidth, ScreenHeight, 0,
		gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&emu.screenData[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	bufferLoc := gl.GetUniformLocation(emu.shaderProgram, gl.Str("buffer"+"\x00"))
	gl.Uniform1i(bufferLoc, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(emu.shaderProgram)

	emu.audio = host.OpenAudio(cfg)
	emu.runner = host.NewRunner(emu.sys, emu, emu.audio.Speakers()...)

	// show the background until the program draws something
	emu.present()

	return nil
}

// setup runs steps in order and stops at the first failure, calling undo
// before returning its error.
func setup(undo func(), steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			undo()
			return err
		}
	}
	return nil
}

func (emu *Emulator) initGL() error {
	// Initialize Glow
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize gl: %w", err)
	}
	gl.ClearColor(emu.background.R(), emu.background.G(), emu.background.B(), 1.0)

	gl.GenVertexArrays(1, &emu.fullScreenTriangleVAO)
	gl.BindVertexArray(emu.fullScreenTriangleVAO)
	return nil
}

// releaseWindow undoes a partial Initialize
func (emu *Emulator) releaseWindow() {
	if emu.fullScreenTriangleVAO != 0 {
		gl.DeleteVertexArrays(1, &emu.fullScreenTriangleVAO)
		emu.fullScreenTriangleVAO = 0
	}
	if emu.shaderProgram != 0 {
		gl.DeleteProgram(emu.shaderProgram)
		emu.shaderProgram = 0
	}
	glfw.Terminate()
}

func (emu *Emulator) linkProgram() error {
	var status int32

	emu.shaderProgram = gl.CreateProgram()

	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	gl.AttachShader(emu.shaderProgram, vs)
	defer gl.DetachShader(emu.shaderProgram, vs)

	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)
	gl.AttachShader(emu.shaderProgram, fs)
	defer gl.DetachShader(emu.shaderProgram, fs)

	gl.LinkProgram(emu.shaderProgram)
	gl.GetProgramiv(emu.shaderProgram, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("failed to link shaderProgram")
	}
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile %v: %v", source, log)
	}

	return shader, nil
}

// fillScreenData converts the framebuffer to RGB texels. Texture rows run
// bottom to top.
func (emu *Emulator) fillScreenData(fb *chip8.Framebuffer) {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			offset := ((ScreenHeight-y-1)*ScreenWidth + x) * 3
			c := emu.background
			if fb.Pixel(x, y) {
				c = emu.sprite
			}
			emu.screenData[offset], emu.screenData[offset+1], emu.screenData[offset+2] = c.R8(), c.G8(), c.B8()
		}
	}
}

// Draw implements the host.Display interface.
func (emu *Emulator) Draw(fb *chip8.Framebuffer) error {
	emu.fillScreenData(fb)
	emu.present()
	return nil
}

func (emu *Emulator) present() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		ScreenWidth, ScreenHeight, gl.RGB, gl.UNSIGNED_BYTE,
		unsafe.Pointer(&emu.screenData[0]))

	gl.BindVertexArray(emu.fullScreenTriangleVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	emu.window.SwapBuffers()
}

func (emu *Emulator) Loop() error {
	emu.runner.Start(time.Now())
	lastPoll := time.Time{}

	for !emu.window.ShouldClose() {
		now := time.Now()
		if now.Sub(lastPoll) >= pollInterval {
			glfw.PollEvents()
			lastPoll = now
		}

		if err := emu.runner.Step(now); err != nil {
			return err
		}

		time.Sleep(stepInterval)
	}

	logger.Log("chip8", emu.runner.Summary())
	return nil
}

func (emu *Emulator) Terminate() {
	if emu.audio != nil {
		if err := emu.audio.Close(); err != nil {
			logger.Logf("chip8", "closing audio: %v", err)
		}
	}
	gl.DeleteVertexArrays(1, &emu.fullScreenTriangleVAO)
	gl.DeleteTextures(1, &emu.bufferTexture)
	gl.DeleteProgram(emu.shaderProgram)
	glfw.Terminate()
}
