package testbed

import (
	"fmt"

	"github.com/emberengine/ember/engine"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/resources"
	"github.com/emberengine/ember/engine/tilemap"
)

type gameState struct {
	camera *renderer.Camera

	logo  resources.Texture
	font  resources.Font
	blip  resources.Sound
	level *tilemap.Component
}

// NewGame assembles the demo game used for engine bring-up.
func NewGame(config *engine.ApplicationConfig) *engine.Game {
	return &engine.Game{
		ApplicationConfig: config,
		State:             &gameState{},
		FnInitialize:      initialize,
		FnUpdate:          update,
		FnRender:          render,
		FnOnResize:        onResize,
		FnShutdown:        shutdown,
	}
}

func initialize(e *engine.Engine) error {
	core.LogInfo("testbed initializing")
	state := gameStateOf(e)

	state.camera = renderer.NewCamera()
	state.camera.SetPosition(math.NewVec3(0, 0, 10))

	manager := e.Resources()
	state.logo = manager.AcquireTexture("textures/logo.png", nil)
	state.font = manager.AcquireFont("fonts/ubuntu_mono_21.fnt", nil)
	state.blip = manager.AcquireSound("sounds/blip.wav", nil)
	state.level = tilemap.NewComponent(manager, "maps/level01.tilemap")

	return nil
}

func update(e *engine.Engine, deltaTime float64) error {
	state := gameStateOf(e)

	speed := float32(5.0 * deltaTime)
	if core.InputIsKeyDown(core.KEY_W) {
		state.camera.MoveForward(speed)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		state.camera.MoveBackward(speed)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		state.camera.MoveLeft(speed)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		state.camera.MoveRight(speed)
	}
	if core.InputIsKeyDown(core.KEY_SPACE) && !core.InputWasKeyDown(core.KEY_SPACE) {
		if audio := e.Audio(); audio != nil {
			audio.Play(state.blip)
		}
	}

	state.level.Update()
	return nil
}

func render(e *engine.Engine, deltaTime float64) error {
	state := gameStateOf(e)
	width, height := e.GetFramebufferSize()

	scene := e.Scene()
	scene.SetCamera(state.camera.GetView(), math.NewMat4Perspective(
		math.DegToRad(45.0), float32(width)/float32(height), 0.1, 1000.0))

	canvas := e.Canvas()
	canvas.SetCamera(math.NewMat4Identity(), math.NewMat4Orthographic(
		0, float32(width), float32(height), 0, -100, 100))

	state.level.Draw(canvas, math.NewVec2Zero(), 10)

	canvas.InsertSprite(state.logo, math.NewVec2(16, 16), math.NewVec2(128, 128), 1, math.NewVec4One())

	fps, frameTime := core.MetricsFrame()
	canvas.InsertText(state.font, formatMetrics(fps, frameTime), math.NewVec2(16, 160), 0,
		math.NewVec4(1, 1, 0, 1))

	return nil
}

func onResize(e *engine.Engine, width, height uint32) error {
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func shutdown(e *engine.Engine) error {
	state := gameStateOf(e)
	state.level.Shutdown()
	state.logo.Release()
	state.font.Release()
	state.blip.Release()
	return nil
}

func formatMetrics(fps, frameTime float64) string {
	return fmt.Sprintf("%.0f fps / %.2f ms", fps, frameTime)
}

func gameStateOf(e *engine.Engine) *gameState {
	return e.Game().State.(*gameState)
}
