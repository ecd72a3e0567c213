package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

func testManager(t *testing.T) *resources.Manager {
	t.Helper()
	m, err := resources.NewManager(&resources.Config{
		Storage: nopStorage{},
		Workers: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown() })
	return m
}

type nopStorage struct{}

func (nopStorage) Locate(path string) (string, error) { return path, nil }
func (nopStorage) Load(path string) ([]byte, error)   { return nil, nil }

func spriteCommand(g resources.Geometry, material *Material, depth float32) DrawCommand {
	return DrawCommand{
		Geometries: []resources.Geometry{g},
		Transforms: []math.Mat4{math.NewMat4Translation(math.NewVec3(0, 0, -depth))},
		Material:   material,
		Flags:      SpritePipelineFlags,
		SortKey:    depth,
	}
}

func TestBatchMergesAdjacentCompatible(t *testing.T) {
	m := testManager(t)
	g := m.WrapGeometry(&resources.GeometryPayload{Name: "g", Vertices: make([]math.Vertex3D, 3), Indices: []uint32{0, 1, 2}})
	material := &Material{DiffuseColor: math.NewVec4One()}

	in := []DrawCommand{
		spriteCommand(g, material, 1),
		spriteCommand(g, material, 1),
		spriteCommand(g, material, 1),
	}
	out := batchCommands(in)

	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].InstanceCount())
	assert.Len(t, out[0].Geometries, 3)
}

func TestBatchKeepsIncompatibleSeparate(t *testing.T) {
	m := testManager(t)
	g := m.WrapGeometry(&resources.GeometryPayload{Name: "g", Vertices: make([]math.Vertex3D, 3), Indices: []uint32{0, 1, 2}})

	red := &Material{DiffuseColor: math.NewVec4(1, 0, 0, 1)}
	blue := &Material{DiffuseColor: math.NewVec4(0, 0, 1, 1)}

	in := []DrawCommand{
		spriteCommand(g, red, 1),
		spriteCommand(g, blue, 1),
		spriteCommand(g, red, 1),
	}
	out := batchCommands(in)

	// red/blue/red cannot merge across the blue command: only adjacent runs
	// collapse, so order is preserved.
	require.Len(t, out, 3)
	assert.True(t, out[0].Material.Equal(red))
	assert.True(t, out[1].Material.Equal(blue))
	assert.True(t, out[2].Material.Equal(red))
}

func TestBatchComparesUniformsStructurally(t *testing.T) {
	m := testManager(t)
	g := m.WrapGeometry(&resources.GeometryPayload{Name: "g", Vertices: make([]math.Vertex3D, 3), Indices: []uint32{0, 1, 2}})

	a := &Material{Uniforms: map[string]math.Vec4{"glow": math.NewVec4(1, 1, 0, 1)}}
	b := &Material{Uniforms: map[string]math.Vec4{"glow": math.NewVec4(1, 1, 0, 1)}}
	c := &Material{Uniforms: map[string]math.Vec4{"glow": math.NewVec4(0, 0, 0, 1)}}

	out := batchCommands([]DrawCommand{
		spriteCommand(g, a, 1),
		spriteCommand(g, b, 1),
		spriteCommand(g, c, 1),
	})
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].InstanceCount())
	assert.Equal(t, 1, out[1].InstanceCount())
}

func TestBatchRespectsPipelineFlags(t *testing.T) {
	m := testManager(t)
	g := m.WrapGeometry(&resources.GeometryPayload{Name: "g", Vertices: make([]math.Vertex3D, 3), Indices: []uint32{0, 1, 2}})
	material := &Material{}

	lines := spriteCommand(g, material, 1)
	lines.Flags.Topology = TOPOLOGY_LINES

	out := batchCommands([]DrawCommand{
		spriteCommand(g, material, 1),
		lines,
	})
	require.Len(t, out, 2)
}

func TestBatchDoesNotAliasInput(t *testing.T) {
	m := testManager(t)
	g := m.WrapGeometry(&resources.GeometryPayload{Name: "g", Vertices: make([]math.Vertex3D, 3), Indices: []uint32{0, 1, 2}})
	material := &Material{}

	in := []DrawCommand{
		spriteCommand(g, material, 1),
		spriteCommand(g, material, 2),
	}
	out := batchCommands(in)
	require.Len(t, out, 1)

	assert.Len(t, in[0].Transforms, 1, "input commands stay immutable")
	assert.Len(t, out[0].Transforms, 2)
}

func TestMaterialEqual(t *testing.T) {
	a := &Material{DiffuseColor: math.NewVec4One(), Shininess: 8}
	b := &Material{DiffuseColor: math.NewVec4One(), Shininess: 8}
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))

	b.Shininess = 16
	assert.False(t, a.Equal(b))

	var nilMaterial *Material
	assert.False(t, a.Equal(nilMaterial))
	assert.True(t, nilMaterial.Equal(nil))
}
