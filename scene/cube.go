// Package scene holds the simulation side of the cube field: the cubes and
// their transforms, the camera, pointer unprojection and the placement
// policy. Nothing here touches the GPU; the host reads DrawItems and vertex
// data and binds its own resources.
package scene

import (
	"math"
	"math/rand/v2"

	"cubefield/mat"
)

// Category is the colour and size class a cube is created with.
type Category struct {
	Name     string
	Color    [3]float32
	HalfSize float32
}

var Categories = []Category{
	{Name: "normal", Color: [3]float32{1.0, 1.0, 1.0}, HalfSize: 0.5},
	{Name: "red", Color: [3]float32{1.0, 0.2, 0.2}, HalfSize: 0.5},
	{Name: "blue", Color: [3]float32{0.2, 0.5, 1.0}, HalfSize: 0.5},
}

const (
	minRotSpeed   = 0.8
	rotSpeedRange = 0.6
	twoPi         = 2 * math.Pi
)

// Cube is one entity of the field. Category, texture, axis, speed and
// direction are fixed at construction; only Angle changes afterwards.
type Cube struct {
	Center    mat.Vec3
	HalfSize  float32
	Category  Category
	Texture   int
	Axis      mat.Axis
	Angle     float32
	Direction float32 // +1 or -1
	RotSpeed  float32 // radians per second
}

// NewCube creates a cube at center with its category, texture slot, axis,
// direction and speed drawn uniformly from rng.
func NewCube(center mat.Vec3, textureCount int, rng *rand.Rand) *Cube {
	cat := Categories[rng.IntN(len(Categories))]
	c := &Cube{
		Center:    center,
		HalfSize:  cat.HalfSize,
		Category:  cat,
		Direction: 1,
		Axis:      mat.Axis(rng.IntN(3)),
		RotSpeed:  minRotSpeed + rng.Float32()*rotSpeedRange,
	}
	if textureCount > 0 {
		c.Texture = rng.IntN(textureCount)
	}
	if rng.Float32() >= 0.5 {
		c.Direction = -1
	}
	return c
}

// Update advances the rotation by dt seconds. The angle is folded back into
// (-2π, 2π) so float32 precision holds over long sessions.
func (c *Cube) Update(dt float32) {
	c.Angle += c.Direction * c.RotSpeed * dt
	if c.Angle > twoPi || c.Angle < -twoPi {
		c.Angle -= twoPi * float32(int(c.Angle/twoPi))
	}
}

// ModelMatrix returns T*R: the cube spins about its own center before being
// moved into the world.
func (c *Cube) ModelMatrix() mat.Mat4 {
	t := mat.Translation(c.Center[0], c.Center[1], c.Center[2])
	r := mat.Rotation(c.Axis, c.Angle)
	return mat.Multiply(t, r)
}
