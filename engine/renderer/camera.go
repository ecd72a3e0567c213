package renderer

import (
	"github.com/emberengine/ember/engine/math"
)

// Camera holds a view transform as position plus euler rotation and caches
// the derived view matrix until either changes.
type Camera struct {
	position      math.Vec3
	eulerRotation math.Vec3
	viewMatrix    math.Mat4
	isDirty       bool
}

func NewCamera() *Camera {
	return &Camera{
		position:      math.NewVec3Zero(),
		eulerRotation: math.NewVec3Zero(),
		viewMatrix:    math.NewMat4Identity(),
		isDirty:       false,
	}
}

func (c *Camera) Reset() {
	c.position = math.NewVec3Zero()
	c.eulerRotation = math.NewVec3Zero()
	c.isDirty = false
	c.viewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.eulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.eulerRotation = rotation
	c.isDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.isDirty {
		rotation := math.NewMat4EulerX(c.eulerRotation.X).
			Mul(math.NewMat4EulerY(c.eulerRotation.Y)).
			Mul(math.NewMat4EulerZ(c.eulerRotation.Z))
		translation := math.NewMat4Translation(c.position)
		c.viewMatrix = translation.Mul(rotation).Inverse()
		c.isDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) Forward() math.Vec3 {
	return c.GetView().Forward()
}

func (c *Camera) Backward() math.Vec3 {
	return c.GetView().Backward()
}

func (c *Camera) Left() math.Vec3 {
	return c.GetView().Left()
}

func (c *Camera) Right() math.Vec3 {
	return c.GetView().Right()
}

func (c *Camera) MoveForward(amount float32) {
	direction := c.Forward()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) MoveBackward(amount float32) {
	direction := c.Backward()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) MoveLeft(amount float32) {
	direction := c.Left()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) MoveRight(amount float32) {
	direction := c.Right()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) MoveUp(amount float32) {
	direction := math.NewVec3Up()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) MoveDown(amount float32) {
	direction := math.NewVec3Down()
	direction = direction.MulScalar(amount)
	c.position = c.position.Add(direction)
	c.isDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.eulerRotation.Y += amount
	c.isDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.eulerRotation.X += amount

	// Avoid gimbal lock.
	limit := math.DegToRad(89.0)
	c.eulerRotation.X = math.Clamp(c.eulerRotation.X, -limit, limit)

	c.isDirty = true
}
