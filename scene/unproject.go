package scene

import "cubefield/mat"

// ScreenToNDC converts a pixel position to normalized device coordinates.
// Pixel Y grows downward, NDC Y grows upward.
func ScreenToNDC(px, py, width, height float32) (x, y float32) {
	x = (px/width)*2 - 1
	y = -(py/height)*2 + 1
	return x, y
}

// Ray is the world-space segment between the near and far clip planes under
// a pixel. Dir is far-near and is not normalized.
type Ray struct {
	Origin mat.Vec3
	Dir    mat.Vec3
}

// ScreenToRay maps a pixel through the inverse view-projection onto the near
// (z=-1) and far (z=+1) clip planes.
func ScreenToRay(px, py, width, height float32, invVP mat.Mat4) Ray {
	ndcX, ndcY := ScreenToNDC(px, py, width, height)
	nearClip := mat.Vec4{ndcX, ndcY, -1, 1}
	farClip := mat.Vec4{ndcX, ndcY, 1, 1}
	near := mat.Divide(invVP.Mul4x1(&nearClip))
	far := mat.Divide(invVP.Mul4x1(&farClip))
	return Ray{
		Origin: near,
		Dir:    mat.Vec3{far[0] - near[0], far[1] - near[1], far[2] - near[2]},
	}
}

// AtZ returns the point where the ray crosses the plane z = targetZ. A ray
// parallel to the plane falls back to the origin's X/Y.
func (r Ray) AtZ(targetZ float32) mat.Vec3 {
	var t float32
	if r.Dir[2] != 0 {
		t = (targetZ - r.Origin[2]) / r.Dir[2]
	}
	return mat.Vec3{r.Origin[0] + r.Dir[0]*t, r.Origin[1] + r.Dir[1]*t, targetZ}
}

// Unproject returns the world point under pixel (px, py) on the plane
// z = targetZ. It never fails; callers looking at the plane edge-on get the
// degenerate fallback of Ray.AtZ.
func Unproject(px, py, width, height float32, invVP mat.Mat4, targetZ float32) mat.Vec3 {
	return ScreenToRay(px, py, width, height, invVP).AtZ(targetZ)
}
