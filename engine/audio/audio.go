package audio

import (
	stdmath "math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

// System plays decoded sound payloads through the platform speaker. Failure
// to open an audio device degrades gracefully: Play becomes a no-op and the
// engine keeps running.
type System struct {
	mutex      sync.Mutex
	sampleRate beep.SampleRate
	enabled    bool
	volume     float64
}

// NewSystem opens the speaker at the given sample rate with a buffer sized
// for bufferLen of latency.
func NewSystem(sampleRate int, bufferLen time.Duration) *System {
	s := &System{
		sampleRate: beep.SampleRate(sampleRate),
		volume:     1,
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(bufferLen)); err != nil {
		core.LogWarn("audio disabled, speaker failed to open: %v", err)
		return s
	}
	s.enabled = true
	return s
}

func (s *System) Enabled() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.enabled
}

// SetVolume scales playback volume for sounds started afterwards; 1 is
// unchanged, 0 is silent.
func (s *System) SetVolume(volume float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if volume < 0 {
		volume = 0
	}
	s.volume = volume
}

// Play starts the sound from the beginning. A handle that is not ready is
// skipped silently, matching the draw-side behaviour.
func (s *System) Play(sound resources.Sound) {
	payload := sound.Payload()
	if payload == nil {
		return
	}

	s.mutex.Lock()
	enabled := s.enabled
	volume := s.volume
	s.mutex.Unlock()
	if !enabled {
		return
	}

	streamer := payload.Buffer.Streamer(0, payload.Buffer.Len())
	resampled := resample(streamer, payload.Format.SampleRate, s.sampleRate)
	speaker.Play(&effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeToExponent(volume),
		Silent:   volume == 0,
	})
}

// Shutdown silences everything currently playing.
func (s *System) Shutdown() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.enabled {
		speaker.Clear()
		s.enabled = false
	}
}

func resample(streamer beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to {
		return streamer
	}
	return beep.Resample(4, from, to, streamer)
}

// volumeToExponent maps a linear 0..1 volume onto the exponential scale the
// volume effect expects.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return stdmath.Log2(volume)
}
