package engine

import (
	"fmt"
	"time"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/audio"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/platform"
	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/resources"
	"github.com/emberengine/ember/engine/resources/importers"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool

	platform  *platform.Platform
	resources *resources.Manager
	renderer  *renderer.Renderer
	canvas    *renderer.Canvas
	scene     *renderer.Scene
	audio     *audio.System
	watcher   *assets.Watcher

	width    uint32
	height   uint32
	clock    *core.Clock
	lastTime float64
}

// New wires an engine around the game and a renderer backend. A nil backend
// gets the headless recorder, which keeps tests and server runs windowless.
func New(g *Game, backend renderer.Backend) (*Engine, error) {
	config := g.ApplicationConfig
	if config == nil {
		config = DefaultApplicationConfig()
		g.ApplicationConfig = config
	}
	core.SetLogLevel(config.LogLevel)

	storage := assets.NewStorage(config.AssetPaths...)

	var watcher *assets.Watcher
	if config.HotReload {
		w, err := assets.NewWatcher()
		if err != nil {
			core.LogWarn("hot reload disabled, watcher failed: %v", err)
		} else {
			watcher = w
			for _, root := range config.AssetPaths {
				if err := w.WatchRecursive(root); err != nil {
					core.LogWarn("cannot watch '%s': %v", root, err)
				}
			}
		}
	}

	managerConfig := &resources.Config{
		Storage:     storage,
		Workers:     config.LoaderWorkers,
		DefaultHint: resources.CacheHint{ExpireAfter: config.ResourceTTL},
		HotReload:   config.HotReload,
	}
	if watcher != nil {
		managerConfig.Watcher = watcher
	}
	manager, err := resources.NewManager(managerConfig)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	importers.RegisterDefaults(manager.Registry())

	if backend == nil {
		backend = renderer.NewHeadlessBackend()
	}
	r, err := renderer.NewRenderer(backend, config.Name, config.StartWidth, config.StartHeight)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	var audioSystem *audio.System
	if config.AudioSampleRate > 0 {
		audioSystem = audio.NewSystem(config.AudioSampleRate, 100*time.Millisecond)
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		resources:    manager,
		renderer:     r,
		canvas:       renderer.NewCanvas(manager),
		scene:        renderer.NewScene(manager),
		audio:        audioSystem,
		watcher:      watcher,
		isRunning:    true,
		isSuspended:  false,
		width:        config.StartWidth,
		height:       config.StartHeight,
		lastTime:     0,
	}, nil
}

// Game returns the game instance the engine runs.
func (e *Engine) Game() *Game {
	return e.gameInstance
}

// Resources returns the resource manager for handle acquisition.
func (e *Engine) Resources() *resources.Manager {
	return e.resources
}

// Canvas returns the 2D command builder games draw into during FnRender.
func (e *Engine) Canvas() *renderer.Canvas {
	return e.canvas
}

// Scene returns the 3D command builder games draw into during FnRender.
func (e *Engine) Scene() *renderer.Scene {
	return e.scene
}

// Audio returns the sound system, nil when audio is disabled.
func (e *Engine) Audio() *audio.System {
	return e.audio
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	config := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(config.Name,
		config.StartPosX,
		config.StartPosY,
		config.StartWidth,
		config.StartHeight); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e, e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}
		core.EventPump()

		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		e.resources.Update(time.Duration(delta * float64(time.Second)))

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(e, delta); err != nil {
				core.LogError("game update failed, shutting down: %v", err)
				e.isRunning = false
				break
			}
		}

		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e, delta); err != nil {
				core.LogError("game render failed, shutting down: %v", err)
				e.isRunning = false
				break
			}
		}

		if err := e.renderer.DrawFrame(delta, e.scene, e.canvas); err != nil {
			core.LogError("frame submission failed: %v", err)
		}

		core.MetricsUpdate(platform.GetAbsoluteTime() - frameStartTime)

		// Input state copying happens after everything read it this frame.
		core.InputUpdate()

		e.lastTime = currentTime
	}

	return e.Shutdown()
}

// RequestQuit stops the run loop after the current frame.
func (e *Engine) RequestQuit() {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e); err != nil {
			core.LogError("game shutdown failed: %v", err)
		}
	}

	e.canvas.Shutdown()
	if e.audio != nil {
		e.audio.Shutdown()
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogError("watcher shutdown failed: %v", err)
		}
	}
	if err := e.resources.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	keyCode, ok := context.Data.(core.KeyCode)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if keyCode == core.KEY_ESCAPE {
		// Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	size, ok := context.Data.([2]uint32)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := size[0], size[1]
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application.")
		e.isSuspended = false
	}
	e.renderer.OnResize(width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e, width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
