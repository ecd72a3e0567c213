package importers

import (
	"bytes"
	"fmt"

	"github.com/faiface/beep"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

// AudioImporter decodes wav and ogg/vorbis files into fully buffered sound
// payloads. Streaming from disk is deliberately avoided; clips live in memory
// so playback never touches the filesystem.
type AudioImporter struct{}

func (AudioImporter) Extensions() []string {
	return []string{"wav", "ogg"}
}

func (AudioImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch {
	case bytes.HasPrefix(data, []byte("RIFF")):
		streamer, format, err = wav.Decode(&byteReadCloser{bytes.NewReader(data)})
	case bytes.HasPrefix(data, []byte("OggS")):
		streamer, format, err = vorbis.Decode(&byteReadCloser{bytes.NewReader(data)})
	default:
		return nil, fmt.Errorf("%w: unrecognized audio container", core.ErrDecodeFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &resources.SoundPayload{
		Name:   options["name"],
		Format: format,
		Buffer: buffer,
	}, nil
}

// byteReadCloser adapts an in-memory reader to the ReadCloser the beep
// decoders require.
type byteReadCloser struct {
	*bytes.Reader
}

func (*byteReadCloser) Close() error { return nil }
