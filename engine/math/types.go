package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Quaternion is used to represent rotational orientation.
type Quaternion Vec4

// Mat4 is a 4x4 column-major matrix, typically used to represent object
// transformations.
type Mat4 struct {
	Data [16]float32
}

// Extents2D represents the extents of a 2d object.
type Extents2D struct {
	Min Vec2
	Max Vec2
}

// Extents3D represents the extents of a 3d object.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Vertex3D represents a single vertex in 3D space.
type Vertex3D struct {
	Position Vec3
	Normal   Vec3
	Texcoord Vec2
	Colour   Vec4
}

// Vertex2D represents a single vertex in 2D space.
type Vertex2D struct {
	Position Vec2
	Texcoord Vec2
}

// Transform represents the position, rotation and scale of an object in the
// world. Transforms can have a parent whose own transform is then taken into
// account. The fields should not be edited directly; use the methods so the
// cached local matrix is regenerated.
type Transform struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3
	// IsDirty indicates the local matrix needs to be recalculated.
	IsDirty bool
	Local   Mat4
	Parent  *Transform
}
