package renderer

import (
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

type CullMode uint8

const (
	CULL_MODE_NONE  CullMode = 0x0
	CULL_MODE_BACK  CullMode = 0x1
	CULL_MODE_FRONT CullMode = 0x2
)

type Topology uint8

const (
	TOPOLOGY_TRIANGLES Topology = 0x0
	TOPOLOGY_LINES     Topology = 0x1
	TOPOLOGY_POINTS    Topology = 0x2
)

type Winding uint8

const (
	WINDING_COUNTER_CLOCKWISE Winding = 0x0
	WINDING_CLOCKWISE         Winding = 0x1
)

type BlendMode uint8

const (
	BLEND_MODE_OPAQUE BlendMode = 0x0
	BLEND_MODE_ALPHA  BlendMode = 0x1
	BLEND_MODE_ADD    BlendMode = 0x2
)

// PipelineFlags is the fixed-function state a draw command requires. The
// struct is comparable; commands batch only when their flags are equal.
type PipelineFlags struct {
	CullMode   CullMode
	Topology   Topology
	Winding    Winding
	Blend      BlendMode
	DepthTest  bool
	DepthWrite bool
}

// DefaultPipelineFlags is the 3D opaque mesh state.
var DefaultPipelineFlags = PipelineFlags{
	CullMode:   CULL_MODE_BACK,
	Topology:   TOPOLOGY_TRIANGLES,
	Winding:    WINDING_COUNTER_CLOCKWISE,
	Blend:      BLEND_MODE_OPAQUE,
	DepthTest:  true,
	DepthWrite: true,
}

// SpritePipelineFlags is the 2D alpha-blended state used by canvases.
var SpritePipelineFlags = PipelineFlags{
	CullMode:  CULL_MODE_NONE,
	Topology:  TOPOLOGY_TRIANGLES,
	Winding:   WINDING_COUNTER_CLOCKWISE,
	Blend:     BLEND_MODE_ALPHA,
	DepthTest: true,
}

// MaterialChannel binds one texture slot of a material. Color multiplies the
// sampled texel; Scale and Offset remap texture coordinates before sampling.
type MaterialChannel struct {
	Texture resources.Texture
	Sampler SamplerFlags
	Color   math.Vec4
	Scale   math.Vec2
	Offset  math.Vec2
}

type SamplerFlags struct {
	FilterNearest bool
	RepeatU       bool
	RepeatV       bool
}

const MaxMaterialChannels = 4

const (
	ChannelDiffuse  = 0
	ChannelNormal   = 1
	ChannelSpecular = 2
	ChannelEmissive = 3
)

// Builtin shader names backends are expected to provide.
const (
	ShaderBuiltinMaterial = "Shader.Builtin.Material"
	ShaderBuiltinUI       = "Shader.Builtin.UI"
)

// Material is the surface description attached to a draw command. Materials
// compare structurally for batching; the uniform map must match key for key.
// An empty Shader selects Shader.Builtin.Material.
type Material struct {
	Shader       string
	Channels     [MaxMaterialChannels]MaterialChannel
	DiffuseColor math.Vec4
	Shininess    float32
	Uniforms     map[string]math.Vec4
}

// Equal reports whether two materials would produce identical backend state.
func (m *Material) Equal(other *Material) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.Shader != other.Shader || m.Channels != other.Channels || m.DiffuseColor != other.DiffuseColor || m.Shininess != other.Shininess {
		return false
	}
	if len(m.Uniforms) != len(other.Uniforms) {
		return false
	}
	for k, v := range m.Uniforms {
		if ov, ok := other.Uniforms[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// DrawCommand is one immutable unit of GPU work: a set of geometries drawn
// with per-instance transforms under a single material and pipeline state.
// Builders produce commands; nothing mutates them afterwards.
type DrawCommand struct {
	Geometries []resources.Geometry
	Transforms []math.Mat4
	Material   *Material
	Flags      PipelineFlags
	// SortKey orders commands within a frame; canvases derive it from depth.
	SortKey float32
}

// InstanceCount returns how many instances the command draws.
func (c *DrawCommand) InstanceCount() int {
	return len(c.Transforms)
}
