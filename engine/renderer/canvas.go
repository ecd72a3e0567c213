package renderer

import (
	"path"
	"sort"

	"github.com/fzipp/bmfont"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

// Canvas accumulates 2D draw commands for one frame. Inserts against handles
// that are not ready yet are silent no-ops, so callers draw unconditionally
// while resources stream in. Depth maps onto the z axis as z = -depth, so
// larger depths sit further from the camera.
type Canvas struct {
	manager *resources.Manager

	view       math.Mat4
	projection math.Mat4
	viewport   Viewport
	scissor    Scissor

	quad     resources.Geometry
	pages    map[string]resources.Texture
	commands []DrawCommand

	// transient synthetic geometries built this frame; inFlight ones belong
	// to the previous consumed frame and are released on the next Consume.
	transient []resources.Geometry
	inFlight  []resources.Geometry
}

func NewCanvas(manager *resources.Manager) *Canvas {
	c := &Canvas{
		manager:    manager,
		view:       math.NewMat4Identity(),
		projection: math.NewMat4Identity(),
		pages:      make(map[string]resources.Texture),
	}
	c.quad = manager.WrapGeometry(unitQuad())
	return c
}

// unitQuad spans [0,1]x[0,1] with v flipped so texture origin is top-left.
func unitQuad() *resources.GeometryPayload {
	white := math.NewVec4One()
	return &resources.GeometryPayload{
		Name: "canvas_quad",
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(0, 0, 0), Texcoord: math.NewVec2(0, 1), Colour: white},
			{Position: math.NewVec3(1, 0, 0), Texcoord: math.NewVec2(1, 1), Colour: white},
			{Position: math.NewVec3(1, 1, 0), Texcoord: math.NewVec2(1, 0), Colour: white},
			{Position: math.NewVec3(0, 1, 0), Texcoord: math.NewVec2(0, 0), Colour: white},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

func (c *Canvas) SetCamera(view, projection math.Mat4) {
	c.view = view
	c.projection = projection
}

func (c *Canvas) SetViewport(viewport Viewport) {
	c.viewport = viewport
}

func (c *Canvas) SetScissor(scissor Scissor) {
	c.scissor = scissor
}

// HasContent reports whether any insert succeeded since the last Consume.
func (c *Canvas) HasContent() bool {
	return len(c.commands) > 0
}

// InsertSprite draws texture as an axis-aligned quad at position with the
// given pixel size. A texture that is still loading or failed is skipped.
func (c *Canvas) InsertSprite(texture resources.Texture, position, size math.Vec2, depth float32, tint math.Vec4) {
	if !texture.Ready() {
		return
	}
	transform := math.NewMat4Translation(math.NewVec3(position.X, position.Y, -depth)).
		Mul(math.NewMat4Scale(math.NewVec3(size.X, size.Y, 1)))

	c.commands = append(c.commands, DrawCommand{
		Geometries: []resources.Geometry{c.quad},
		Transforms: []math.Mat4{transform},
		Material: &Material{
			Shader:       ShaderBuiltinUI,
			Channels:     [MaxMaterialChannels]MaterialChannel{ChannelDiffuse: {Texture: texture}},
			DiffuseColor: tint,
		},
		Flags:   SpritePipelineFlags,
		SortKey: depth,
	})
}

// InsertText lays out text with a BMFont face and draws one quad per glyph.
// The whole call is a no-op until both the font descriptor and its first page
// atlas are ready.
func (c *Canvas) InsertText(font resources.Font, text string, position math.Vec2, depth float32, tint math.Vec4) {
	payload := font.Payload()
	if payload == nil {
		return
	}
	page := c.pageTexture(font, payload)
	pagePayload := page.Payload()
	if pagePayload == nil {
		return
	}

	desc := payload.Descriptor
	scaleW := float32(desc.Common.ScaleW)
	scaleH := float32(desc.Common.ScaleH)

	var (
		vertices []math.Vertex3D
		indices  []uint32
		penX     = position.X
		penY     = position.Y
		prev     rune
	)
	for i, r := range text {
		if r == '\n' {
			penX = position.X
			penY += float32(desc.Common.LineHeight)
			prev = 0
			continue
		}
		ch, ok := desc.Chars[r]
		if !ok {
			continue
		}
		if i > 0 {
			if k, ok := desc.Kerning[bmfont.CharPair{First: prev, Second: r}]; ok {
				penX += float32(k.Amount)
			}
		}

		x0 := penX + float32(ch.XOffset)
		y0 := penY + float32(ch.YOffset)
		x1 := x0 + float32(ch.Width)
		y1 := y0 + float32(ch.Height)

		u0 := float32(ch.X) / scaleW
		v0 := float32(ch.Y) / scaleH
		u1 := float32(ch.X+ch.Width) / scaleW
		v1 := float32(ch.Y+ch.Height) / scaleH

		base := uint32(len(vertices))
		vertices = append(vertices,
			math.Vertex3D{Position: math.NewVec3(x0, y0, 0), Texcoord: math.NewVec2(u0, v0), Colour: tint},
			math.Vertex3D{Position: math.NewVec3(x1, y0, 0), Texcoord: math.NewVec2(u1, v0), Colour: tint},
			math.Vertex3D{Position: math.NewVec3(x1, y1, 0), Texcoord: math.NewVec2(u1, v1), Colour: tint},
			math.Vertex3D{Position: math.NewVec3(x0, y1, 0), Texcoord: math.NewVec2(u0, v1), Colour: tint},
		)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)

		penX += float32(ch.XAdvance)
		prev = r
	}
	if len(vertices) == 0 {
		return
	}

	geometry := c.manager.WrapGeometry(&resources.GeometryPayload{
		Name:     "canvas_text",
		Vertices: vertices,
		Indices:  indices,
	})
	c.transient = append(c.transient, geometry)

	c.commands = append(c.commands, DrawCommand{
		Geometries: []resources.Geometry{geometry},
		Transforms: []math.Mat4{math.NewMat4Translation(math.NewVec3(0, 0, -depth))},
		Material: &Material{
			Shader:       ShaderBuiltinUI,
			Channels:     [MaxMaterialChannels]MaterialChannel{ChannelDiffuse: {Texture: page}},
			DiffuseColor: tint,
		},
		Flags:   SpritePipelineFlags,
		SortKey: depth,
	})
}

// InsertGeometry draws a prebuilt geometry whose vertices are already in
// canvas pixel space, textured with texture, offset by origin.
func (c *Canvas) InsertGeometry(geometry resources.Geometry, texture resources.Texture, origin math.Vec2, depth float32) {
	if !geometry.Ready() || !texture.Ready() {
		return
	}
	c.commands = append(c.commands, DrawCommand{
		Geometries: []resources.Geometry{geometry},
		Transforms: []math.Mat4{math.NewMat4Translation(math.NewVec3(origin.X, origin.Y, -depth))},
		Material: &Material{
			Shader:       ShaderBuiltinUI,
			Channels:     [MaxMaterialChannels]MaterialChannel{ChannelDiffuse: {Texture: texture}},
			DiffuseColor: math.NewVec4One(),
		},
		Flags:   SpritePipelineFlags,
		SortKey: depth,
	})
}

// InsertLines draws a polyline through points.
func (c *Canvas) InsertLines(points []math.Vec2, depth float32, color math.Vec4) {
	if len(points) < 2 {
		return
	}
	vertices := make([]math.Vertex3D, len(points))
	indices := make([]uint32, 0, (len(points)-1)*2)
	for i, p := range points {
		vertices[i] = math.Vertex3D{Position: math.NewVec3(p.X, p.Y, 0), Colour: color}
		if i > 0 {
			indices = append(indices, uint32(i-1), uint32(i))
		}
	}
	c.insertPrimitives(vertices, indices, depth, color, TOPOLOGY_LINES)
}

// InsertPoints draws each point as a single vertex.
func (c *Canvas) InsertPoints(points []math.Vec2, depth float32, color math.Vec4) {
	if len(points) == 0 {
		return
	}
	vertices := make([]math.Vertex3D, len(points))
	indices := make([]uint32, len(points))
	for i, p := range points {
		vertices[i] = math.Vertex3D{Position: math.NewVec3(p.X, p.Y, 0), Colour: color}
		indices[i] = uint32(i)
	}
	c.insertPrimitives(vertices, indices, depth, color, TOPOLOGY_POINTS)
}

func (c *Canvas) insertPrimitives(vertices []math.Vertex3D, indices []uint32, depth float32, color math.Vec4, topology Topology) {
	geometry := c.manager.WrapGeometry(&resources.GeometryPayload{
		Name:     "canvas_primitives",
		Vertices: vertices,
		Indices:  indices,
	})
	c.transient = append(c.transient, geometry)

	flags := SpritePipelineFlags
	flags.Topology = topology

	c.commands = append(c.commands, DrawCommand{
		Geometries: []resources.Geometry{geometry},
		Transforms: []math.Mat4{math.NewMat4Translation(math.NewVec3(0, 0, -depth))},
		Material:   &Material{Shader: ShaderBuiltinUI, DiffuseColor: color},
		Flags:      flags,
		SortKey:    depth,
	})
}

// Consume returns the frame's commands sorted back to front and batched, and
// resets the canvas for the next frame. Synthetic geometries from the
// previous consumed frame are released here; by now the backend has drawn
// them.
func (c *Canvas) Consume() ([]DrawCommand, Viewport, Scissor) {
	for _, g := range c.inFlight {
		g.Release()
	}
	c.inFlight = c.transient
	c.transient = nil

	commands := c.commands
	c.commands = nil

	sort.SliceStable(commands, func(i, j int) bool {
		return commands[i].SortKey > commands[j].SortKey
	})
	return batchCommands(commands), c.viewport, c.scissor
}

// View and Projection expose the camera set for this canvas.
func (c *Canvas) View() math.Mat4       { return c.view }
func (c *Canvas) Projection() math.Mat4 { return c.projection }

// Shutdown releases the shared quad and any outstanding synthetic geometry.
func (c *Canvas) Shutdown() {
	for _, g := range c.inFlight {
		g.Release()
	}
	for _, g := range c.transient {
		g.Release()
	}
	c.inFlight = nil
	c.transient = nil
	c.quad.Release()
}

// pageTexture resolves the font's first page atlas next to the descriptor
// file and caches the handle for reuse across frames.
func (c *Canvas) pageTexture(font resources.Font, payload *resources.FontPayload) resources.Texture {
	file := payload.PageFile(0)
	if file == "" {
		core.LogWarn("font '%s' has no page 0", font.Key())
		return resources.Texture{}
	}
	pagePath := path.Join(path.Dir(font.Key().Path), file)
	if cached, ok := c.pages[pagePath]; ok {
		return cached
	}
	texture := c.manager.AcquireTexture(pagePath, nil)
	c.pages[pagePath] = texture
	return texture
}
