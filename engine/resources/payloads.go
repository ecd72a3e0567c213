package resources

import (
	"github.com/faiface/beep"
	"github.com/fzipp/bmfont"

	"github.com/emberengine/ember/engine/math"
)

/** @brief The name of the default texture. */
const DefaultTextureName string = "default"

// TexturePayload is the decoded pixel data for a texture resource.
type TexturePayload struct {
	Name            string
	Width           uint32
	Height          uint32
	ChannelCount    uint8
	HasTransparency bool
	Pixels          []uint8
}

// NewDefaultTexture creates a 256x256 blue/white checkerboard pattern in
// code, so the fallback never depends on an asset being present.
func NewDefaultTexture() *TexturePayload {
	texDimension := uint32(256)
	channels := uint32(4)
	pixelCount := texDimension * texDimension

	pixels := make([]uint8, pixelCount*channels)
	for i := range pixels {
		pixels[i] = 255
	}

	for row := uint32(0); row < texDimension; row++ {
		for col := uint32(0); col < texDimension; col++ {
			index := (row*texDimension + col) * channels
			if (row%2 != 0) == (col%2 != 0) {
				pixels[index+0] = 0
				pixels[index+1] = 0
			}
		}
	}

	return &TexturePayload{
		Name:         DefaultTextureName,
		Width:        texDimension,
		Height:       texDimension,
		ChannelCount: uint8(channels),
		Pixels:       pixels,
	}
}

// GeometryPayload holds vertex and index data ready for backend upload.
type GeometryPayload struct {
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
}

// FontPayload wraps a parsed BMFont descriptor. The page atlas textures are
// separate resources; PageFile resolves their paths.
type FontPayload struct {
	Descriptor *bmfont.Descriptor
}

func (f *FontPayload) PageFile(id int) string {
	if page, ok := f.Descriptor.Pages[id]; ok {
		return page.File
	}
	return ""
}

// SoundPayload is a fully decoded, in-memory audio clip.
type SoundPayload struct {
	Name   string
	Format beep.Format
	Buffer *beep.Buffer
}

// Tile flip flags packed into the high bits of a raw tile id, Tiled-style.
const (
	tileFlipXBit uint32 = 1 << 31
	tileFlipYBit uint32 = 1 << 30
	tileIDMask   uint32 = ^(tileFlipXBit | tileFlipYBit)
)

// Tile references one cell of a tile map layer.
type Tile struct {
	ID    uint32
	FlipX bool
	FlipY bool
}

// DecodeTile unpacks a raw tile value from a tile map file.
func DecodeTile(raw uint32) Tile {
	return Tile{
		ID:    raw & tileIDMask,
		FlipX: raw&tileFlipXBit != 0,
		FlipY: raw&tileFlipYBit != 0,
	}
}

// TileSetPayload describes a tile atlas: which texture it uses, its pixel
// dimensions and the fixed tile size.
type TileSetPayload struct {
	Atlas       string `toml:"atlas"`
	AtlasWidth  uint32 `toml:"atlas_width"`
	AtlasHeight uint32 `toml:"atlas_height"`
	TileWidth   uint32 `toml:"tile_width"`
	TileHeight  uint32 `toml:"tile_height"`
	Columns     uint32 `toml:"columns"`
}

// TileRect returns the pixel-space rectangle of a tile id within the atlas.
func (ts *TileSetPayload) TileRect(id uint32) (x, y, w, h uint32) {
	col := id % ts.Columns
	row := id / ts.Columns
	return col * ts.TileWidth, row * ts.TileHeight, ts.TileWidth, ts.TileHeight
}

// TileMapLayerData is the on-disk form of one layer: a row-major grid of raw
// tile values. A zero value marks an empty cell.
type TileMapLayerData struct {
	Name    string   `toml:"name"`
	Columns uint32   `toml:"columns"`
	Rows    uint32   `toml:"rows"`
	Tiles   []uint32 `toml:"tiles"`
}

// TileMapPayload is the decoded form of a tile map resource.
type TileMapPayload struct {
	TileSet string              `toml:"tileset"`
	Layers  []*TileMapLayerData `toml:"layers"`
}
