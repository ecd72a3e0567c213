package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_PAUSE     KeyCode = 0x13
	KEY_CAPITAL   KeyCode = 0x14
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_NUMPAD0   KeyCode = 0x60
	KEY_NUMPAD1   KeyCode = 0x61
	KEY_NUMPAD2   KeyCode = 0x62
	KEY_NUMPAD3   KeyCode = 0x63
	KEY_NUMPAD4   KeyCode = 0x64
	KEY_NUMPAD5   KeyCode = 0x65
	KEY_NUMPAD6   KeyCode = 0x66
	KEY_NUMPAD7   KeyCode = 0x67
	KEY_NUMPAD8   KeyCode = 0x68
	KEY_NUMPAD9   KeyCode = 0x69
	KEY_MAX_KEYS  KeyCode = 0xFF
)

type keyboardState struct {
	keys [KEY_MAX_KEYS]bool
}

type mouseState struct {
	x, y    int16
	buttons [BUTTON_MAX_BUTTONS]bool
}

type inputState struct {
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
}

var onceInput sync.Once
var inState *inputState

func InputInitialize() error {
	onceInput.Do(func() {
		inState = &inputState{}
	})
	return nil
}

func InputShutdown() error {
	return nil
}

// InputUpdate copies the current frame states over the previous ones.
// Called once per frame, after game update.
func InputUpdate() {
	if inState == nil {
		return
	}
	inState.keyboardPrevious = inState.keyboardCurrent
	inState.mousePrevious = inState.mouseCurrent
}

// InputProcessKey records a key state change and fires the matching event.
func InputProcessKey(key KeyCode, pressed bool) {
	if inState == nil || inState.keyboardCurrent.keys[key] == pressed {
		return
	}
	inState.keyboardCurrent.keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{Type: code, Data: key})
}

func InputProcessButton(button Button, pressed bool) {
	if inState == nil || inState.mouseCurrent.buttons[button] == pressed {
		return
	}
	inState.mouseCurrent.buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{Type: code, Data: button})
}

func InputProcessMouseMove(x, y int16) {
	if inState == nil || (inState.mouseCurrent.x == x && inState.mouseCurrent.y == y) {
		return
	}
	inState.mouseCurrent.x = x
	inState.mouseCurrent.y = y
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED, Data: [2]int16{x, y}})
}

func InputProcessMouseWheel(zDelta int8) {
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL, Data: zDelta})
}

func InputIsKeyDown(key KeyCode) bool {
	return inState != nil && inState.keyboardCurrent.keys[key]
}

func InputIsKeyUp(key KeyCode) bool {
	return inState == nil || !inState.keyboardCurrent.keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	return inState != nil && inState.keyboardPrevious.keys[key]
}

func InputIsButtonDown(button Button) bool {
	return inState != nil && inState.mouseCurrent.buttons[button]
}

func InputWasButtonDown(button Button) bool {
	return inState != nil && inState.mousePrevious.buttons[button]
}

func InputGetMousePosition() (int16, int16) {
	if inState == nil {
		return 0, 0
	}
	return inState.mouseCurrent.x, inState.mouseCurrent.y
}
