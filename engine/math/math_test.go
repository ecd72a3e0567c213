package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.InDelta(t, 32, a.Dot(b), 1e-5)

	cross := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0))
	assert.True(t, cross.Compare(NewVec3(0, 0, 1), 1e-6))
}

func TestVec3Normalized(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalized()
	assert.InDelta(t, 1, n.Length(), 1e-6)

	zero := NewVec3Zero().Normalized()
	assert.Equal(t, NewVec3Zero(), zero)
}

func TestMat4IdentityMul(t *testing.T) {
	i := NewMat4Identity()
	m := NewMat4Translation(NewVec3(1, 2, 3))

	assert.Equal(t, m, i.Mul(m))
	assert.Equal(t, m, m.Mul(i))
}

func TestMat4MulAppliesRightFirst(t *testing.T) {
	translate := NewMat4Translation(NewVec3(10, 0, 0))
	scale := NewMat4Scale(NewVec3(2, 2, 2))

	// T * S scales first, then translates.
	p := NewVec3(1, 1, 1).Transform(translate.Mul(scale))
	assert.True(t, p.Compare(NewVec3(12, 2, 2), 1e-5))

	// S * T translates first, then scales.
	p = NewVec3(1, 1, 1).Transform(scale.Mul(translate))
	assert.True(t, p.Compare(NewVec3(22, 2, 2), 1e-5))
}

func TestMat4Inverse(t *testing.T) {
	m := NewMat4Translation(NewVec3(5, -3, 2)).Mul(NewMat4EulerY(0.7))
	round := m.Mul(m.Inverse())

	identity := NewMat4Identity()
	for i := range round.Data {
		assert.InDelta(t, identity.Data[i], round.Data[i], 1e-5)
	}
}

func TestComposeTRS(t *testing.T) {
	m := ComposeTRS(NewVec3(10, 0, 0), NewQuatIdentity(), NewVec3(2, 2, 2))
	p := NewVec3(1, 0, 0).Transform(m)
	assert.True(t, p.Compare(NewVec3(12, 0, 0), 1e-5))
}

func TestQuaternionAxisAngleRotation(t *testing.T) {
	// Quarter turn around Y sends +X to -Z.
	q := NewQuatFromAxisAngle(NewVec3(0, 1, 0), DegToRad(90))
	p := NewVec3(1, 0, 0).Transform(q.ToMat4())
	assert.True(t, p.Compare(NewVec3(0, 0, -1), 1e-5), "got %+v", p)
}

func TestTransformHierarchy(t *testing.T) {
	parent := TransformFromPosition(NewVec3(10, 0, 0))
	child := TransformFromPosition(NewVec3(0, 5, 0))
	child.Parent = parent

	world := child.GetWorld()
	p := NewVec3Zero().Transform(world)
	assert.True(t, p.Compare(NewVec3(10, 5, 0), 1e-5))
}

func TestTransformDirtyTracking(t *testing.T) {
	tr := TransformCreate()
	tr.GetLocal()
	require.False(t, tr.IsDirty)

	tr.SetPosition(NewVec3(1, 2, 3))
	assert.True(t, tr.IsDirty)

	local := tr.GetLocal()
	p := NewVec3Zero().Transform(local)
	assert.True(t, p.Compare(NewVec3(1, 2, 3), 1e-5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-5, 0, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
}

func TestDegRadRoundTrip(t *testing.T) {
	assert.InDelta(t, 180, RadToDeg(DegToRad(180)), 1e-4)
	assert.InDelta(t, Pi, DegToRad(180), 1e-6)
}

func TestOrthographicMapsCorners(t *testing.T) {
	m := NewMat4Orthographic(0, 800, 600, 0, -1, 1)

	topLeft := NewVec3(0, 0, 0).Transform(m)
	assert.True(t, topLeft.Compare(NewVec3(-1, 1, 0), 1e-5), "got %+v", topLeft)

	bottomRight := NewVec3(800, 600, 0).Transform(m)
	assert.True(t, bottomRight.Compare(NewVec3(1, -1, 0), 1e-5), "got %+v", bottomRight)
}
