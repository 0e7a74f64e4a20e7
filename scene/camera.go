package scene

import (
	gomath "math"

	"github.com/EngoEngine/glm"

	"cubefield/mat"
)

// maxPitch keeps the camera just short of looking straight up or down.
const maxPitch = 89 * gomath.Pi / 180

// Camera is a free-fly camera. At zero yaw and pitch it looks down -Z.
type Camera struct {
	Position  mat.Vec3
	Yaw       float32
	Pitch     float32
	Rotation  glm.Quat
	MoveSpeed float32 // units per second
	TurnSpeed float32 // radians per second
}

func NewCamera(position mat.Vec3, moveSpeed, turnSpeed float32) *Camera {
	c := &Camera{
		Position:  position,
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
	}
	c.updateRotation()
	return c
}

func (c *Camera) updateRotation() {
	rotx := glm.QuatRotate(c.Pitch, &glm.Vec3{1, 0, 0})
	roty := glm.QuatRotate(c.Yaw, &glm.Vec3{0, 1, 0})
	c.Rotation = roty.Mul(&rotx)
}

// Update turns and moves the camera from the held keys over dt seconds.
func (c *Camera) Update(keys KeySet, dt float32) {
	c.Yaw += keys.axis(KeyYawRight, KeyYawLeft) * c.TurnSpeed * dt
	c.Pitch += keys.axis(KeyPitchDown, KeyPitchUp) * c.TurnSpeed * dt
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	c.updateRotation()

	move := glm.Vec3{
		keys.axis(KeyLeft, KeyRight),
		keys.axis(KeyDown, KeyUp),
		keys.axis(KeyForward, KeyBack),
	}
	if move == (glm.Vec3{}) {
		return
	}
	move = move.Mul(c.MoveSpeed * dt)
	move = c.Rotation.Rotate(&move)
	c.Position = c.Position.Add(&move)
}

// ViewMatrix is the inverse of the camera transform: Rx(-pitch) * Ry(-yaw) * T(-position).
func (c *Camera) ViewMatrix() mat.Mat4 {
	t := mat.Translation(-c.Position[0], -c.Position[1], -c.Position[2])
	return mat.Multiply(mat.RotationX(-c.Pitch), mat.Multiply(mat.RotationY(-c.Yaw), t))
}
