package importers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageImporterDecodesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := ImageImporter{}.Import(encodePNG(t, img), "", nil)
	require.NoError(t, err)

	texture := out.(*resources.TexturePayload)
	assert.Equal(t, uint32(2), texture.Width)
	assert.Equal(t, uint32(2), texture.Height)
	assert.Equal(t, uint8(4), texture.ChannelCount)
	assert.False(t, texture.HasTransparency)
	assert.Len(t, texture.Pixels, 16)
	assert.Equal(t, uint8(255), texture.Pixels[0], "top-left is red")
}

func TestImageImporterDetectsTransparency(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 128})

	out, err := ImageImporter{}.Import(encodePNG(t, img), "", nil)
	require.NoError(t, err)
	assert.True(t, out.(*resources.TexturePayload).HasTransparency)
}

func TestImageImporterFlipY(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 10, A: 255})
	img.Set(0, 1, color.RGBA{R: 200, A: 255})

	out, err := ImageImporter{}.Import(encodePNG(t, img), "", resources.Options{"flip_y": "true"})
	require.NoError(t, err)

	texture := out.(*resources.TexturePayload)
	assert.Equal(t, uint8(200), texture.Pixels[0], "rows swapped")
	assert.Equal(t, uint8(10), texture.Pixels[4])
}

func TestImageImporterRejectsGarbage(t *testing.T) {
	_, err := ImageImporter{}.Import([]byte("not an image"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)
}

func TestMeshImporterParsesOBJ(t *testing.T) {
	obj := `
# simple quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`
	out, err := MeshImporter{}.Import([]byte(obj), "", nil)
	require.NoError(t, err)

	mesh := out.(*resources.GeometryPayload)
	assert.Equal(t, "quad", mesh.Name)
	assert.Len(t, mesh.Vertices, 4, "shared triplets deduplicate")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices, "quads fan-triangulate")
	assert.InDelta(t, 1, mesh.Vertices[0].Normal.Z, 1e-5)
}

func TestMeshImporterNegativeIndices(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	out, err := MeshImporter{}.Import([]byte(obj), "", nil)
	require.NoError(t, err)
	assert.Len(t, out.(*resources.GeometryPayload).Vertices, 3)
}

func TestMeshImporterRejectsBadFiles(t *testing.T) {
	_, err := MeshImporter{}.Import([]byte("v 1 2"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)

	_, err = MeshImporter{}.Import([]byte("# comment only"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)

	_, err = MeshImporter{}.Import([]byte("v 0 0 0\nf 1 2 3"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed, "face index out of range")
}

func TestTileSetImporter(t *testing.T) {
	data := []byte(`
atlas = "atlas.png"
atlas_width = 128
atlas_height = 64
tile_width = 16
tile_height = 16
columns = 8
`)
	out, err := TileSetImporter{}.Import(data, "", nil)
	require.NoError(t, err)

	tileSet := out.(*resources.TileSetPayload)
	assert.Equal(t, "atlas.png", tileSet.Atlas)

	x, y, w, h := tileSet.TileRect(9)
	assert.Equal(t, uint32(16), x)
	assert.Equal(t, uint32(16), y)
	assert.Equal(t, uint32(16), w)
	assert.Equal(t, uint32(16), h)
}

func TestTileSetImporterValidates(t *testing.T) {
	_, err := TileSetImporter{}.Import([]byte(`atlas = ""`), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)

	_, err = TileSetImporter{}.Import([]byte(`atlas = "a.png"`), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed, "zero tile dimensions")

	_, err = TileSetImporter{}.Import([]byte("not toml ["), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)
}

func TestTileMapImporter(t *testing.T) {
	data := []byte(`
tileset = "level.tileset"

[[layers]]
name = "ground"
columns = 2
rows = 2
tiles = [1, 2, 3, 4]
`)
	out, err := TileMapImporter{}.Import(data, "", nil)
	require.NoError(t, err)

	tileMap := out.(*resources.TileMapPayload)
	assert.Equal(t, "level.tileset", tileMap.TileSet)
	require.Len(t, tileMap.Layers, 1)
	assert.Equal(t, uint32(2), tileMap.Layers[0].Columns)
}

func TestTileMapImporterValidatesGridSize(t *testing.T) {
	data := []byte(`
tileset = "level.tileset"

[[layers]]
name = "ground"
columns = 2
rows = 2
tiles = [1, 2, 3]
`)
	_, err := TileMapImporter{}.Import(data, "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)
}

func TestAudioImporterRejectsUnknownContainer(t *testing.T) {
	_, err := AudioImporter{}.Import([]byte("garbage bytes"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)
}

func TestRegisterDefaultsCoversFormats(t *testing.T) {
	registry := resources.NewRegistry()
	RegisterDefaults(registry)

	for _, ext := range []string{"png", "jpg", "bmp", "fnt", "wav", "ogg", "obj", "tileset", "tilemap"} {
		_, found := registry.ForExtension(ext)
		assert.True(t, found, "no importer for %s", ext)
	}
}
