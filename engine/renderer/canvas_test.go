package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

func TestCanvasSkipsUnreadyTexture(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	var missing resources.Texture
	c.InsertSprite(missing, math.NewVec2(0, 0), math.NewVec2(32, 32), 1, math.NewVec4One())

	assert.False(t, c.HasContent())
}

func TestCanvasSpriteCommand(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	texture := m.WrapTexture(resources.NewDefaultTexture())
	c.InsertSprite(texture, math.NewVec2(10, 20), math.NewVec2(64, 32), 3, math.NewVec4One())
	require.True(t, c.HasContent())

	commands, _, _ := c.Consume()
	require.Len(t, commands, 1)

	cmd := commands[0]
	assert.Equal(t, SpritePipelineFlags, cmd.Flags)
	assert.Equal(t, float32(3), cmd.SortKey)
	require.Len(t, cmd.Transforms, 1)

	// Depth maps onto z as z = -depth.
	origin := math.NewVec3Zero().Transform(cmd.Transforms[0])
	assert.InDelta(t, 10, origin.X, 1e-5)
	assert.InDelta(t, 20, origin.Y, 1e-5)
	assert.InDelta(t, -3, origin.Z, 1e-5)

	// The unit quad corner scales out to the sprite size.
	corner := math.NewVec3(1, 1, 0).Transform(cmd.Transforms[0])
	assert.InDelta(t, 74, corner.X, 1e-5)
	assert.InDelta(t, 52, corner.Y, 1e-5)
}

func TestCanvasConsumeSortsBackToFront(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)
	texture := m.WrapTexture(resources.NewDefaultTexture())

	// Distinct tints keep the commands from batching.
	c.InsertSprite(texture, math.NewVec2Zero(), math.NewVec2One(), 1, math.NewVec4(1, 0, 0, 1))
	c.InsertSprite(texture, math.NewVec2Zero(), math.NewVec2One(), 9, math.NewVec4(0, 1, 0, 1))
	c.InsertSprite(texture, math.NewVec2Zero(), math.NewVec2One(), 5, math.NewVec4(0, 0, 1, 1))

	commands, _, _ := c.Consume()
	require.Len(t, commands, 3)
	assert.Equal(t, float32(9), commands[0].SortKey)
	assert.Equal(t, float32(5), commands[1].SortKey)
	assert.Equal(t, float32(1), commands[2].SortKey)
}

func TestCanvasConsumeResets(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)
	texture := m.WrapTexture(resources.NewDefaultTexture())

	c.InsertSprite(texture, math.NewVec2Zero(), math.NewVec2One(), 1, math.NewVec4One())
	first, _, _ := c.Consume()
	assert.Len(t, first, 1)

	assert.False(t, c.HasContent())
	second, _, _ := c.Consume()
	assert.Empty(t, second)
}

func TestCanvasLines(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	c.InsertLines([]math.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 2, math.NewVec4One())
	require.True(t, c.HasContent())

	commands, _, _ := c.Consume()
	require.Len(t, commands, 1)
	assert.Equal(t, TOPOLOGY_LINES, commands[0].Flags.Topology)

	payload := commands[0].Geometries[0].Payload()
	require.NotNil(t, payload)
	assert.Len(t, payload.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 1, 2}, payload.Indices)
}

func TestCanvasLinesNeedTwoPoints(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	c.InsertLines([]math.Vec2{{X: 1, Y: 1}}, 0, math.NewVec4One())
	assert.False(t, c.HasContent())
}

func TestCanvasPoints(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	c.InsertPoints([]math.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}, 0, math.NewVec4One())
	commands, _, _ := c.Consume()
	require.Len(t, commands, 1)
	assert.Equal(t, TOPOLOGY_POINTS, commands[0].Flags.Topology)

	payload := commands[0].Geometries[0].Payload()
	require.NotNil(t, payload)
	assert.Len(t, payload.Vertices, 2)
}

func TestCanvasTransientGeometryReleased(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	c.InsertPoints([]math.Vec2{{X: 1, Y: 1}}, 0, math.NewVec4One())
	commands, _, _ := c.Consume()
	require.Len(t, commands, 1)
	key := commands[0].Geometries[0].Key()

	m.Update(0)
	assert.Equal(t, uint32(1), m.RefCount(key), "held until the next frame is consumed")

	c.InsertPoints([]math.Vec2{{X: 2, Y: 2}}, 0, math.NewVec4One())
	c.Consume()
	m.Update(0)
	assert.Equal(t, uint32(0), m.RefCount(key))
}

func TestCanvasViewportAndScissorPassThrough(t *testing.T) {
	m := testManager(t)
	c := NewCanvas(m)

	viewport := Viewport{Width: 800, Height: 600}
	scissor := Scissor{X: 10, Y: 10, Width: 100, Height: 100, Enabled: true}
	c.SetViewport(viewport)
	c.SetScissor(scissor)

	_, gotViewport, gotScissor := c.Consume()
	assert.Equal(t, viewport, gotViewport)
	assert.Equal(t, scissor, gotScissor)
}
