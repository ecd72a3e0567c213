package engine

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/emberengine/ember/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`

	// Directories searched for resources, in order.
	AssetPaths []string `toml:"asset_paths"`
	// Reload resources when their files change on disk.
	HotReload bool `toml:"hot_reload"`
	// How long unreferenced resources stay cached before eviction.
	ResourceTTL time.Duration `toml:"resource_ttl"`
	// Background workers decoding resources.
	LoaderWorkers int `toml:"loader_workers"`

	// Audio output sample rate; zero disables audio.
	AudioSampleRate int `toml:"audio_sample_rate"`
}

// DefaultApplicationConfig returns a runnable windowed configuration.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:       100,
		StartPosY:       100,
		StartWidth:      1280,
		StartHeight:     720,
		Name:            "Ember Application",
		AssetPaths:      []string{"assets"},
		HotReload:       true,
		ResourceTTL:     5 * time.Minute,
		LoaderWorkers:   2,
		AudioSampleRate: 44100,
	}
}

// LoadApplicationConfig reads a TOML config file over the defaults. A
// missing file is not an error; the defaults apply.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogDebug("no config file at '%s', using defaults", path)
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		core.LogError("invalid config file '%s': %v", path, err)
		return nil, err
	}
	return config, nil
}
