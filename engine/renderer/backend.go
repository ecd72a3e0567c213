package renderer

import (
	"github.com/emberengine/ember/engine/math"
)

// Viewport is the pixel region a frame renders into.
type Viewport struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// Scissor clips rasterization to a pixel rectangle.
type Scissor struct {
	X       int32
	Y       int32
	Width   uint32
	Height  uint32
	Enabled bool
}

// FramePacket is everything a backend needs to draw one frame. Commands are
// already batched and ordered; backends must submit them in slice order.
type FramePacket struct {
	FrameNumber uint64
	DeltaTime   float64

	View       math.Mat4
	Projection math.Mat4
	Viewport   Viewport
	Scissor    Scissor

	Commands []DrawCommand
	Lights   []Light

	ClearColor math.Vec4
}

// Backend is the rendering device abstraction. Implementations translate
// frame packets into API calls; the engine never talks to a graphics API
// directly.
type Backend interface {
	Initialize(appName string, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32)
	// BeginFrame returns false when the frame should be skipped, for
	// example mid swapchain rebuild. That is not an error.
	BeginFrame(deltaTime float64) (bool, error)
	DrawFrame(packet *FramePacket) error
	EndFrame() error
}
