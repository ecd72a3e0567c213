package renderer

// HeadlessBackend records submitted frame packets without touching a
// graphics API. It backs tests and server-side runs.
type HeadlessBackend struct {
	width  uint32
	height uint32

	initialized bool
	inFrame     bool

	// Frames keeps every packet submitted since Initialize.
	Frames []FramePacket
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(appName string, width, height uint32) error {
	b.width = width
	b.height = height
	b.initialized = true
	b.Frames = nil
	return nil
}

func (b *HeadlessBackend) Shutdown() error {
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) Resized(width, height uint32) {
	b.width = width
	b.height = height
}

func (b *HeadlessBackend) BeginFrame(deltaTime float64) (bool, error) {
	if !b.initialized {
		return false, nil
	}
	b.inFrame = true
	return true, nil
}

func (b *HeadlessBackend) DrawFrame(packet *FramePacket) error {
	if b.inFrame {
		b.Frames = append(b.Frames, *packet)
	}
	return nil
}

func (b *HeadlessBackend) EndFrame() error {
	b.inFrame = false
	return nil
}

// LastFrame returns the most recently recorded packet.
func (b *HeadlessBackend) LastFrame() (FramePacket, bool) {
	if len(b.Frames) == 0 {
		return FramePacket{}, false
	}
	return b.Frames[len(b.Frames)-1], true
}
