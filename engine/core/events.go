package core

import (
	"sync"

	"github.com/emberengine/ember/engine/containers"
)

type EventType int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventType = 0x01

	// Keyboard key pressed. Data is a KeyCode.
	EVENT_CODE_KEY_PRESSED EventType = 0x02

	// Keyboard key released. Data is a KeyCode.
	EVENT_CODE_KEY_RELEASED EventType = 0x03

	// Mouse button pressed. Data is a Button.
	EVENT_CODE_BUTTON_PRESSED EventType = 0x04

	// Mouse button released. Data is a Button.
	EVENT_CODE_BUTTON_RELEASED EventType = 0x05

	// Mouse moved. Data is a [2]int16 with the x/y position.
	EVENT_CODE_MOUSE_MOVED EventType = 0x06

	// Mouse wheel. Data is an int8 with the z delta.
	EVENT_CODE_MOUSE_WHEEL EventType = 0x07

	// Resized/resolution changed from the OS. Data is a [2]uint32.
	EVENT_CODE_RESIZED EventType = 0x08

	// A watched resource changed on disk. Data is the asset path string.
	EVENT_CODE_RESOURCE_CHANGED EventType = 0x09

	MAX_EVENT_CODE EventType = 0xFF
)

type EventContext struct {
	Type EventType
	Data interface{}
}

// Should return true if handled; handled events stop propagating.
type FnOnEvent func(data EventContext) bool

const maxDeferredEvents = 1024

type eventSystemState struct {
	registered map[EventType][]FnOnEvent
	// Events fired off the main goroutine are parked here and drained by
	// EventPump once per frame on the owner goroutine.
	deferred *containers.RingQueue[EventContext]
	mutex    sync.Mutex
}

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventType][]FnOnEvent),
			deferred:   containers.NewRingQueue[EventContext](maxDeferredEvents),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[EventType][]FnOnEvent)
	}
	return nil
}

// EventRegister subscribes a callback to the given event type.
func EventRegister(code EventType, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire dispatches an event to all listeners of its type, in
// registration order, stopping at the first listener that handles it.
// Must only be called from the owner goroutine.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	for _, cb := range eventState.registered[context.Type] {
		if cb(context) {
			return true
		}
	}
	return false
}

// EventFireDeferred parks an event until the next EventPump. Safe to call
// from any goroutine; this is the only way background work may raise events.
func EventFireDeferred(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	if err := eventState.deferred.Enqueue(context); err != nil {
		LogWarn("event queue full, dropping event of type %d", context.Type)
		return false
	}
	return true
}

// EventPump drains deferred events on the owner goroutine. Called once per
// frame by the engine loop.
func EventPump() {
	if eventState == nil {
		return
	}
	for {
		eventState.mutex.Lock()
		ctx, err := eventState.deferred.Dequeue()
		eventState.mutex.Unlock()
		if err != nil {
			return
		}
		EventFire(ctx)
	}
}
