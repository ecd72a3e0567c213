package renderer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

func sceneGeometry(t *testing.T, m *resources.Manager) resources.Geometry {
	t.Helper()
	return m.WrapGeometry(&resources.GeometryPayload{
		Name:     "cube",
		Vertices: make([]math.Vertex3D, 8),
		Indices:  make([]uint32, 36),
	})
}

func TestSceneSkipsUnreadyGeometry(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)

	var missing resources.Geometry
	s.InsertMesh(missing, &Material{}, math.NewMat4Identity())
	assert.False(t, s.HasContent())
}

func TestSceneSkipsUnreadyMaterialTexture(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)
	g := sceneGeometry(t, m)

	// An acquired but never-loaded texture leaves the material not ready.
	pending := m.AcquireTexture("textures/never.xyz", nil)
	material := &Material{Channels: [MaxMaterialChannels]MaterialChannel{
		ChannelDiffuse: {Texture: pending},
	}}
	s.InsertMesh(g, material, math.NewMat4Identity())
	assert.False(t, s.HasContent())

	s.InsertMesh(g, &Material{}, math.NewMat4Identity())
	assert.True(t, s.HasContent())
}

func TestSceneMeshCommand(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)
	g := sceneGeometry(t, m)

	transform := math.NewMat4Translation(math.NewVec3(1, 2, 3))
	s.InsertMesh(g, nil, transform)

	commands, lights, _ := s.Consume()
	require.Len(t, commands, 1)
	assert.Empty(t, lights)
	assert.Equal(t, DefaultPipelineFlags, commands[0].Flags)
	assert.Equal(t, transform, commands[0].Transforms[0])
}

func TestSceneTranslucentMaterialChangesPipeline(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)
	g := sceneGeometry(t, m)

	s.InsertMesh(g, &Material{DiffuseColor: math.NewVec4(1, 1, 1, 0.5)}, math.NewMat4Identity())
	commands, _, _ := s.Consume()
	require.Len(t, commands, 1)
	assert.Equal(t, BLEND_MODE_ALPHA, commands[0].Flags.Blend)
	assert.False(t, commands[0].Flags.DepthWrite)
	assert.True(t, commands[0].Flags.DepthTest)
}

func TestSceneSkinnedMesh(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)
	g := sceneGeometry(t, m)

	bones := []math.Mat4{
		math.NewMat4Translation(math.NewVec3(0, 1, 0)),
		math.NewMat4Translation(math.NewVec3(0, 2, 0)),
	}
	s.InsertSkinnedMesh(g, nil, math.NewMat4Identity(), bones)

	commands, _, _ := s.Consume()
	require.Len(t, commands, 1)
	assert.Equal(t, 2, commands[0].InstanceCount())
}

func TestSceneLightsLifecycle(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)

	sun := s.AddLight(NewDirectionalLight(math.NewVec3(0, -1, 0), math.NewVec4One()))
	lamp := s.AddLight(NewPointLight(math.NewVec3(1, 2, 3), math.NewVec4(1, 0.5, 0, 1), 10))
	torch := s.AddLight(NewSpotLight(math.NewVec3(0, 2, 0), math.NewVec3(0, -2, 0), math.NewVec4One(), 8))
	require.NotEqual(t, sun, lamp)

	lights := s.Lights()
	require.Len(t, lights, 3)
	assert.Equal(t, sun, lights[0].ID)
	assert.Equal(t, lamp, lights[1].ID)
	assert.Equal(t, torch, lights[2].ID)
	assert.Equal(t, LIGHT_TYPE_SPOT, lights[2].Type)
	assert.InDelta(t, -1, lights[2].Direction.Y, 1e-5, "direction normalized")

	assert.True(t, s.RemoveLight(sun))
	assert.False(t, s.RemoveLight(sun))
	assert.False(t, s.RemoveLight(uuid.New()))
	assert.Len(t, s.Lights(), 2)
}

func TestSceneLightsSurviveConsume(t *testing.T) {
	m := testManager(t)
	s := NewScene(m)
	g := sceneGeometry(t, m)

	s.AddLight(NewDirectionalLight(math.NewVec3(0, -1, 0), math.NewVec4One()))
	s.InsertMesh(g, nil, math.NewMat4Identity())

	commands, lights, _ := s.Consume()
	assert.Len(t, commands, 1)
	assert.Len(t, lights, 1)

	// Commands reset between frames, lights persist.
	commands, lights, _ = s.Consume()
	assert.Empty(t, commands)
	assert.Len(t, lights, 1)
}
