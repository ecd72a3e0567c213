package tilemap

import (
	"path"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/resources"
)

type layerState uint8

const (
	layerClean layerState = iota
	layerNeedsRebuild
	layerRebuilding
)

// Layer is one renderable grid of tiles. Geometry is rebuilt lazily: edits
// mark the layer dirty and the next Draw rebuilds its mesh.
type Layer struct {
	name    string
	columns uint32
	rows    uint32
	tiles   []resources.Tile

	state    layerState
	geometry resources.Geometry
	visible  bool
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) SetVisible(visible bool) { l.visible = visible }

// Tile returns the tile at (column, row).
func (l *Layer) Tile(column, row uint32) (resources.Tile, bool) {
	if column >= l.columns || row >= l.rows {
		return resources.Tile{}, false
	}
	return l.tiles[row*l.columns+column], true
}

// SetTile replaces the tile at (column, row) and marks the layer for a
// geometry rebuild.
func (l *Layer) SetTile(column, row uint32, tile resources.Tile) bool {
	if column >= l.columns || row >= l.rows {
		return false
	}
	l.tiles[row*l.columns+column] = tile
	if l.state == layerClean {
		l.state = layerNeedsRebuild
	}
	return true
}

// Component loads a tile map resource and renders its layers through a
// canvas. Setup happens in two phases: first the map file resolves, then the
// tileset it references plus the atlas texture, and only when everything is
// ready are the layers built.
type Component struct {
	manager *resources.Manager

	mapHandle resources.TileMap
	tileSet   resources.TileSet
	atlas     resources.Texture

	// needsSetup flips false after the one-time layer construction.
	needsSetup bool
	layers     []*Layer

	tileWidth  uint32
	tileHeight uint32
}

func NewComponent(manager *resources.Manager, mapPath string) *Component {
	return &Component{
		manager:    manager,
		mapHandle:  manager.AcquireTileMap(mapPath, nil),
		needsSetup: true,
	}
}

// Ready reports whether the map, its tileset and the atlas texture have all
// loaded and the layers are built.
func (c *Component) Ready() bool {
	return !c.needsSetup
}

func (c *Component) Layers() []*Layer {
	return c.layers
}

func (c *Component) Layer(name string) *Layer {
	for _, layer := range c.layers {
		if layer.name == name {
			return layer
		}
	}
	return nil
}

// Update advances the two-phase setup. Call once per frame before Draw.
func (c *Component) Update() {
	if !c.needsSetup {
		return
	}
	payload := c.mapHandle.Payload()
	if payload == nil {
		return
	}

	if !c.tileSet.Valid() {
		tileSetPath := path.Join(path.Dir(c.mapHandle.Key().Path), payload.TileSet)
		c.tileSet = c.manager.AcquireTileSet(tileSetPath, nil)
		return
	}

	tileSet := c.tileSet.Payload()
	if tileSet == nil {
		if c.tileSet.State() == resources.StateFailed {
			// Setup cannot proceed and the map was declared ready.
			core.LogFatal("tilemap '%s' references unloadable tileset '%s': %v",
				c.mapHandle.Key(), payload.TileSet, c.tileSet.Err())
		}
		return
	}

	if !c.atlas.Valid() {
		atlasPath := path.Join(path.Dir(c.tileSet.Key().Path), tileSet.Atlas)
		c.atlas = c.manager.AcquireTexture(atlasPath, nil)
		return
	}
	if !c.atlas.Ready() {
		return
	}

	c.setupLayers(payload)
	c.tileWidth = tileSet.TileWidth
	c.tileHeight = tileSet.TileHeight
	c.needsSetup = false
}

func (c *Component) setupLayers(payload *resources.TileMapPayload) {
	c.layers = make([]*Layer, 0, len(payload.Layers))
	for _, data := range payload.Layers {
		layer := &Layer{
			name:    data.Name,
			columns: data.Columns,
			rows:    data.Rows,
			tiles:   make([]resources.Tile, len(data.Tiles)),
			state:   layerNeedsRebuild,
			visible: true,
		}
		for i, raw := range data.Tiles {
			layer.tiles[i] = resources.DecodeTile(raw)
		}
		c.layers = append(c.layers, layer)
	}
}

// Draw submits every visible layer to the canvas, rebuilding dirty layer
// geometry first. depth orders the whole map against other canvas content;
// layers stack in file order on top of it.
func (c *Component) Draw(canvas *renderer.Canvas, origin math.Vec2, depth float32) {
	if c.needsSetup {
		return
	}
	tileSet := c.tileSet.Payload()
	if tileSet == nil {
		// The tileset was ready when setup completed; losing it afterwards
		// means the cache was torn down under a live component.
		core.LogFatal("tilemap '%s' lost its tileset after setup", c.mapHandle.Key())
		return
	}

	for i, layer := range c.layers {
		if layer.state == layerNeedsRebuild {
			c.rebuildLayer(layer, tileSet)
		}
		if !layer.visible || !layer.geometry.Valid() {
			continue
		}
		layerDepth := depth - float32(i)*0.01
		c.drawLayer(canvas, layer, origin, layerDepth)
	}
}

// rebuildLayer produces two triangles per non-empty cell, sharing the
// diagonal between vertex 0 and vertex 2 of the cell quad.
func (c *Component) rebuildLayer(layer *Layer, tileSet *resources.TileSetPayload) {
	layer.state = layerRebuilding

	atlasW := float32(tileSet.AtlasWidth)
	atlasH := float32(tileSet.AtlasHeight)
	tileW := float32(tileSet.TileWidth)
	tileH := float32(tileSet.TileHeight)
	white := math.NewVec4One()

	var (
		vertices []math.Vertex3D
		indices  []uint32
	)
	for row := uint32(0); row < layer.rows; row++ {
		for col := uint32(0); col < layer.columns; col++ {
			tile := layer.tiles[row*layer.columns+col]
			if tile.ID == 0 {
				continue
			}
			px, py, pw, ph := tileSet.TileRect(tile.ID - 1)

			u0 := float32(px) / atlasW
			v0 := float32(py) / atlasH
			u1 := float32(px+pw) / atlasW
			v1 := float32(py+ph) / atlasH
			if tile.FlipX {
				u0, u1 = u1, u0
			}
			if tile.FlipY {
				v0, v1 = v1, v0
			}

			x0 := float32(col) * tileW
			y0 := float32(row) * tileH
			x1 := x0 + tileW
			y1 := y0 + tileH

			base := uint32(len(vertices))
			vertices = append(vertices,
				math.Vertex3D{Position: math.NewVec3(x0, y0, 0), Texcoord: math.NewVec2(u0, v0), Colour: white},
				math.Vertex3D{Position: math.NewVec3(x1, y0, 0), Texcoord: math.NewVec2(u1, v0), Colour: white},
				math.Vertex3D{Position: math.NewVec3(x1, y1, 0), Texcoord: math.NewVec2(u1, v1), Colour: white},
				math.Vertex3D{Position: math.NewVec3(x0, y1, 0), Texcoord: math.NewVec2(u0, v1), Colour: white},
			)
			indices = append(indices, base, base+1, base+2, base+2, base+3, base)
		}
	}

	old := layer.geometry
	if len(vertices) > 0 {
		layer.geometry = c.manager.WrapGeometry(&resources.GeometryPayload{
			Name:     "tilemap_" + layer.name,
			Vertices: vertices,
			Indices:  indices,
		})
	} else {
		layer.geometry = resources.Geometry{}
	}
	if old.Valid() {
		old.Release()
	}
	layer.state = layerClean
}

func (c *Component) drawLayer(canvas *renderer.Canvas, layer *Layer, origin math.Vec2, depth float32) {
	canvas.InsertGeometry(layer.geometry, c.atlas, origin, depth)
}

// Shutdown releases every handle the component holds.
func (c *Component) Shutdown() {
	for _, layer := range c.layers {
		if layer.geometry.Valid() {
			layer.geometry.Release()
		}
	}
	c.layers = nil
	if c.atlas.Valid() {
		c.atlas.Release()
	}
	if c.tileSet.Valid() {
		c.tileSet.Release()
	}
	c.mapHandle.Release()
}
