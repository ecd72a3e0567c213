package importers

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

// TileSetImporter parses .tileset TOML files describing a tile atlas.
type TileSetImporter struct{}

func (TileSetImporter) Extensions() []string {
	return []string{"tileset"}
}

func (TileSetImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	var payload resources.TileSetPayload
	if err := toml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	if payload.Atlas == "" {
		return nil, fmt.Errorf("%w: tileset has no atlas", core.ErrDecodeFailed)
	}
	if payload.TileWidth == 0 || payload.TileHeight == 0 || payload.Columns == 0 {
		return nil, fmt.Errorf("%w: tileset has zero tile dimensions", core.ErrDecodeFailed)
	}
	return &payload, nil
}

// TileMapImporter parses .tilemap TOML files: a tileset reference plus one or
// more layer grids.
type TileMapImporter struct{}

func (TileMapImporter) Extensions() []string {
	return []string{"tilemap"}
}

func (TileMapImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	var payload resources.TileMapPayload
	if err := toml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	if payload.TileSet == "" {
		return nil, fmt.Errorf("%w: tilemap has no tileset", core.ErrDecodeFailed)
	}
	if len(payload.Layers) == 0 {
		return nil, fmt.Errorf("%w: tilemap has no layers", core.ErrDecodeFailed)
	}
	for _, layer := range payload.Layers {
		if uint32(len(layer.Tiles)) != layer.Columns*layer.Rows {
			return nil, fmt.Errorf("%w: layer '%s' has %d tiles, want %d",
				core.ErrDecodeFailed, layer.Name, len(layer.Tiles), layer.Columns*layer.Rows)
		}
	}
	return &payload, nil
}

// RegisterDefaults installs the built-in importers. Registration order is the
// reverse of lookup priority, so applications registering afterwards win.
func RegisterDefaults(registry *resources.Registry) {
	registry.Register(ImageImporter{})
	registry.Register(FontImporter{})
	registry.Register(AudioImporter{})
	registry.Register(MeshImporter{})
	registry.Register(TileSetImporter{})
	registry.Register(TileMapImporter{})
}
