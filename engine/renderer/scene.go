package renderer

import (
	"github.com/google/uuid"

	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

// Scene accumulates 3D draw commands for one frame. Like Canvas, inserts
// against handles that are not ready yet are silent no-ops. Lights persist
// across frames until removed.
type Scene struct {
	manager *resources.Manager

	view       math.Mat4
	projection math.Mat4
	viewport   Viewport

	commands []DrawCommand

	lights     map[uuid.UUID]Light
	lightOrder []uuid.UUID
}

func NewScene(manager *resources.Manager) *Scene {
	return &Scene{
		manager:    manager,
		view:       math.NewMat4Identity(),
		projection: math.NewMat4Identity(),
		lights:     make(map[uuid.UUID]Light),
	}
}

func (s *Scene) SetCamera(view, projection math.Mat4) {
	s.view = view
	s.projection = projection
}

func (s *Scene) SetViewport(viewport Viewport) {
	s.viewport = viewport
}

func (s *Scene) HasContent() bool {
	return len(s.commands) > 0
}

// InsertMesh draws geometry with material under a world transform. Skipped
// silently while the geometry or any material texture is still loading.
func (s *Scene) InsertMesh(geometry resources.Geometry, material *Material, transform math.Mat4) {
	if !geometry.Ready() || !materialReady(material) {
		return
	}
	flags := DefaultPipelineFlags
	if material != nil && material.DiffuseColor.W < 1 {
		flags.Blend = BLEND_MODE_ALPHA
		flags.DepthWrite = false
	}
	s.commands = append(s.commands, DrawCommand{
		Geometries: []resources.Geometry{geometry},
		Transforms: []math.Mat4{transform},
		Material:   material,
		Flags:      flags,
	})
}

// InsertSkinnedMesh draws geometry once per bone transform as separate
// instances. Proper GPU skinning is a backend concern; the command stream
// only carries the per-bone world matrices.
func (s *Scene) InsertSkinnedMesh(geometry resources.Geometry, material *Material, transform math.Mat4, bones []math.Mat4) {
	if !geometry.Ready() || !materialReady(material) {
		return
	}
	if len(bones) == 0 {
		s.InsertMesh(geometry, material, transform)
		return
	}
	transforms := make([]math.Mat4, len(bones))
	geometries := make([]resources.Geometry, len(bones))
	for i, bone := range bones {
		transforms[i] = transform.Mul(bone)
		geometries[i] = geometry
	}
	s.commands = append(s.commands, DrawCommand{
		Geometries: geometries,
		Transforms: transforms,
		Material:   material,
		Flags:      DefaultPipelineFlags,
	})
}

// AddLight registers the light and returns its id. Adding a light with the
// zero id allocates one. Lights travel in the frame packet for backends that
// shade; the headless backend records them without effect.
func (s *Scene) AddLight(light Light) uuid.UUID {
	if light.ID == uuid.Nil {
		light.ID = uuid.New()
	}
	if _, exists := s.lights[light.ID]; !exists {
		s.lightOrder = append(s.lightOrder, light.ID)
	}
	s.lights[light.ID] = light
	return light.ID
}

func (s *Scene) RemoveLight(id uuid.UUID) bool {
	if _, exists := s.lights[id]; !exists {
		return false
	}
	delete(s.lights, id)
	for i, lid := range s.lightOrder {
		if lid == id {
			s.lightOrder = append(s.lightOrder[:i], s.lightOrder[i+1:]...)
			break
		}
	}
	return true
}

// Lights returns the registered lights in insertion order.
func (s *Scene) Lights() []Light {
	out := make([]Light, 0, len(s.lights))
	for _, id := range s.lightOrder {
		out = append(out, s.lights[id])
	}
	return out
}

// Consume returns the frame's commands batched in submission order and
// resets the command list. Lights are not cleared.
func (s *Scene) Consume() ([]DrawCommand, []Light, Viewport) {
	commands := s.commands
	s.commands = nil
	return batchCommands(commands), s.Lights(), s.viewport
}

func (s *Scene) View() math.Mat4       { return s.view }
func (s *Scene) Projection() math.Mat4 { return s.projection }

func materialReady(material *Material) bool {
	if material == nil {
		return true
	}
	for _, channel := range material.Channels {
		if channel.Texture.Valid() && !channel.Texture.Ready() {
			return false
		}
	}
	return true
}
