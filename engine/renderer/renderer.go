package renderer

import (
	"fmt"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
)

// Renderer owns the backend and turns consumed canvases and scenes into
// frame packets. Scene commands draw first, canvas commands on top.
type Renderer struct {
	backend     Backend
	frameNumber uint64
	width       uint32
	height      uint32
	clearColor  math.Vec4
}

func NewRenderer(backend Backend, appName string, width, height uint32) (*Renderer, error) {
	if backend == nil {
		err := fmt.Errorf("func NewRenderer - backend is required")
		core.LogError(err.Error())
		return nil, err
	}
	if err := backend.Initialize(appName, width, height); err != nil {
		core.LogError("failed to initialize renderer backend. Error: %s", err.Error())
		return nil, err
	}
	return &Renderer{
		backend:    backend,
		width:      width,
		height:     height,
		clearColor: math.NewVec4(0.1, 0.1, 0.15, 1.0),
	}, nil
}

func (r *Renderer) SetClearColor(color math.Vec4) {
	r.clearColor = color
}

func (r *Renderer) OnResize(width, height uint32) {
	r.width = width
	r.height = height
	r.backend.Resized(width, height)
}

// DrawFrame consumes the scene and canvas and submits one frame. Either
// builder may be nil. A false return from the backend's BeginFrame skips the
// frame without error.
func (r *Renderer) DrawFrame(deltaTime float64, scene *Scene, canvas *Canvas) error {
	proceed, err := r.backend.BeginFrame(deltaTime)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	defaultViewport := Viewport{Width: r.width, Height: r.height}

	if scene != nil {
		commands, lights, viewport := scene.Consume()
		if viewport.Width == 0 {
			viewport = defaultViewport
		}
		packet := FramePacket{
			FrameNumber: r.frameNumber,
			DeltaTime:   deltaTime,
			View:        scene.View(),
			Projection:  scene.Projection(),
			Viewport:    viewport,
			Commands:    commands,
			Lights:      lights,
			ClearColor:  r.clearColor,
		}
		if err := r.backend.DrawFrame(&packet); err != nil {
			return err
		}
	}

	if canvas != nil && canvas.HasContent() {
		commands, viewport, scissor := canvas.Consume()
		if viewport.Width == 0 {
			viewport = defaultViewport
		}
		packet := FramePacket{
			FrameNumber: r.frameNumber,
			DeltaTime:   deltaTime,
			View:        canvas.View(),
			Projection:  canvas.Projection(),
			Viewport:    viewport,
			Scissor:     scissor,
			Commands:    commands,
		}
		if err := r.backend.DrawFrame(&packet); err != nil {
			return err
		}
	}

	if err := r.backend.EndFrame(); err != nil {
		return err
	}
	r.frameNumber++
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}
