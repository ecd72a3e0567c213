package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEvents(t *testing.T) {
	t.Helper()
	require.True(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })
}

func TestEventFireReachesListeners(t *testing.T) {
	setupEvents(t)

	var got []EventContext
	EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		got = append(got, ctx)
		return false
	})

	EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: [2]uint32{800, 600}})
	require.Len(t, got, 1)
	assert.Equal(t, [2]uint32{800, 600}, got[0].Data)
}

func TestEventHandledStopsPropagation(t *testing.T) {
	setupEvents(t)

	secondCalled := false
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool { return true })
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool {
		secondCalled = true
		return false
	})

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.False(t, secondCalled)
}

func TestEventFireWithoutListeners(t *testing.T) {
	setupEvents(t)
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL}))
}

func TestDeferredEventsDrainOnPump(t *testing.T) {
	setupEvents(t)

	var order []int
	EventRegister(EVENT_CODE_RESOURCE_CHANGED, func(ctx EventContext) bool {
		order = append(order, ctx.Data.(int))
		return false
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			EventFireDeferred(EventContext{Type: EVENT_CODE_RESOURCE_CHANGED, Data: n})
		}(i)
	}
	wg.Wait()

	assert.Empty(t, order, "deferred events wait for the pump")
	EventPump()
	assert.Len(t, order, 8)
}

func TestInputKeyTransitions(t *testing.T) {
	setupEvents(t)
	require.NoError(t, InputInitialize())

	pressed := 0
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) bool {
		pressed++
		return false
	})

	InputProcessKey(KEY_W, true)
	assert.True(t, InputIsKeyDown(KEY_W))
	assert.False(t, InputWasKeyDown(KEY_W))
	assert.Equal(t, 1, pressed)

	// Repeated identical state does not re-fire.
	InputProcessKey(KEY_W, true)
	assert.Equal(t, 1, pressed)

	InputUpdate()
	assert.True(t, InputWasKeyDown(KEY_W))

	InputProcessKey(KEY_W, false)
	assert.True(t, InputIsKeyUp(KEY_W))
	assert.True(t, InputWasKeyDown(KEY_W))
}

func TestInputMouse(t *testing.T) {
	setupEvents(t)
	require.NoError(t, InputInitialize())

	InputProcessButton(BUTTON_LEFT, true)
	assert.True(t, InputIsButtonDown(BUTTON_LEFT))

	InputProcessMouseMove(120, 80)
	x, y := InputGetMousePosition()
	assert.Equal(t, int16(120), x)
	assert.Equal(t, int16(80), y)

	InputUpdate()
	InputProcessButton(BUTTON_LEFT, false)
	assert.False(t, InputIsButtonDown(BUTTON_LEFT))
	assert.True(t, InputWasButtonDown(BUTTON_LEFT))
}

func TestMetricsRollingAverage(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	for i := 0; i < 60; i++ {
		MetricsUpdate(1.0 / 60.0)
	}
	fps, frameTime := MetricsFrame()
	assert.InDelta(t, 60, fps, 2)
	assert.InDelta(t, 16.6, frameTime, 0.5)
}
