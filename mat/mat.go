// Package mat holds the 4x4 transform math used by the cube field: model,
// view and projection construction, composition, and inversion for
// unprojection. Matrices are column-major [16]float32 values, the same layout
// the GPU uniform buffers expect.
package mat

import (
	"errors"

	"github.com/EngoEngine/glm"
	"github.com/EngoEngine/math"
)

// Mat4 is a column-major 4x4 matrix.
type Mat4 = glm.Mat4

// Vec3 is a point or direction in world space.
type Vec3 = glm.Vec3

// Vec4 is a homogeneous point.
type Vec4 = glm.Vec4

// SingularThreshold is the absolute determinant below which a matrix is
// treated as non-invertible.
const SingularThreshold = 1e-10

// ErrSingular is returned by Invert when the determinant magnitude is below
// SingularThreshold.
var ErrSingular = errors.New("mat: singular matrix")

// Axis selects one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

func (a Axis) unit() Vec3 {
	switch a {
	case AxisY:
		return Vec3{0, 1, 0}
	case AxisZ:
		return Vec3{0, 0, 1}
	}
	return Vec3{1, 0, 0}
}

func Identity() Mat4 {
	return glm.Ident4()
}

// Translation returns the identity with its translation column set to (x, y, z).
func Translation(x, y, z float32) Mat4 {
	return glm.Translate3D(x, y, z)
}

// Rotation returns a right-handed rotation of angle radians about axis.
func Rotation(axis Axis, angle float32) Mat4 {
	u := axis.unit()
	return glm.HomogRotate3D(angle, &u)
}

func RotationX(angle float32) Mat4 { return Rotation(AxisX, angle) }
func RotationY(angle float32) Mat4 { return Rotation(AxisY, angle) }
func RotationZ(angle float32) Mat4 { return Rotation(AxisZ, angle) }

// Perspective returns a right-handed projection mapping view depth onto
// clip z in [-1, 1]. Callers must pass 0 < near < far.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return glm.Perspective(fovY, aspect, near, far)
}

// Multiply returns a*b: b's transform is applied first.
func Multiply(a, b Mat4) Mat4 {
	return a.Mul4(&b)
}

// Divide performs the homogeneous divide. A zero w yields the unscaled xyz.
func Divide(v Vec4) Vec3 {
	if v[3] == 0 {
		return Vec3{v[0], v[1], v[2]}
	}
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

// TransformPoint applies m to the point p (w = 1) and divides by w.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	v := Vec4{p[0], p[1], p[2], 1}
	return Divide(m.Mul4x1(&v))
}

func Determinant(m Mat4) float32 {
	return m.Det()
}

// Invert returns the inverse of m. When |det(m)| is below SingularThreshold,
// or not a number, it returns the zero matrix and ErrSingular; the caller
// decides how to recover.
func Invert(m Mat4) (Mat4, error) {
	if !(math.Abs(m.Det()) >= SingularThreshold) {
		return Mat4{}, ErrSingular
	}
	return m.Inverse(), nil
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vec3) float32 {
	d := a.Sub(&b)
	return d.Len()
}
