package renderer

import (
	"github.com/google/uuid"

	"github.com/emberengine/ember/engine/math"
)

type LightType uint8

const (
	LIGHT_TYPE_DIRECTIONAL LightType = 0x0
	LIGHT_TYPE_POINT       LightType = 0x1
	LIGHT_TYPE_SPOT        LightType = 0x2
)

// Light describes one scene light. Lights are carried through the frame
// packet for backends that implement shading; the reference pipeline accepts
// and forwards them without consuming them.
type Light struct {
	ID        uuid.UUID
	Type      LightType
	Position  math.Vec3
	Direction math.Vec3
	Color     math.Vec4
	Intensity float32
	Range     float32
}

func NewDirectionalLight(direction math.Vec3, color math.Vec4) Light {
	return Light{
		ID:        uuid.New(),
		Type:      LIGHT_TYPE_DIRECTIONAL,
		Direction: direction.Normalized(),
		Color:     color,
		Intensity: 1,
	}
}

func NewPointLight(position math.Vec3, color math.Vec4, lightRange float32) Light {
	return Light{
		ID:        uuid.New(),
		Type:      LIGHT_TYPE_POINT,
		Position:  position,
		Color:     color,
		Intensity: 1,
		Range:     lightRange,
	}
}

func NewSpotLight(position, direction math.Vec3, color math.Vec4, lightRange float32) Light {
	return Light{
		ID:        uuid.New(),
		Type:      LIGHT_TYPE_SPOT,
		Position:  position,
		Direction: direction.Normalized(),
		Color:     color,
		Intensity: 1,
		Range:     lightRange,
	}
}
