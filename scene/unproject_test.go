package scene

import (
	"math"
	"testing"

	"cubefield/mat"
)

const (
	canvasW = 1280
	canvasH = 720
)

// project maps a world point to a pixel, the inverse of Unproject.
func project(vp mat.Mat4, p mat.Vec3) (px, py float32) {
	ndc := mat.TransformPoint(vp, p)
	px = (ndc[0] + 1) / 2 * canvasW
	py = (1 - ndc[1]) / 2 * canvasH
	return px, py
}

func testViewProjection(t *testing.T, cam *Camera) (vp, inv mat.Mat4) {
	t.Helper()
	proj := mat.Perspective(math.Pi/3, float32(canvasW)/canvasH, 0.1, 100)
	vp = mat.Multiply(proj, cam.ViewMatrix())
	inv, err := mat.Invert(vp)
	if err != nil {
		t.Fatalf("Invert(vp) error = %v", err)
	}
	return vp, inv
}

func TestScreenToNDC(t *testing.T) {
	testCases := []struct {
		name         string
		px, py       float32
		wantX, wantY float32
	}{
		{name: "top left", px: 0, py: 0, wantX: -1, wantY: 1},
		{name: "bottom right", px: canvasW, py: canvasH, wantX: 1, wantY: -1},
		{name: "center", px: canvasW / 2, py: canvasH / 2, wantX: 0, wantY: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := ScreenToNDC(tc.px, tc.py, canvasW, canvasH)
			if !almostEqual(x, tc.wantX) || !almostEqual(y, tc.wantY) {
				t.Fatalf("ScreenToNDC() = (%v, %v), want (%v, %v)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	tilted := NewCamera(mat.Vec3{3, -2, 18}, 1, 1)
	tilted.Yaw, tilted.Pitch = 0.2, -0.15

	cameras := map[string]*Camera{
		"straight": NewCamera(mat.Vec3{0, 0, 20}, 1, 1),
		"tilted":   tilted,
	}
	points := []mat.Vec3{
		{0, 0, 0},
		{2.5, -1.25, 0},
		{-4, 3, 1.5},
		{1, 1, -6},
	}
	for name, cam := range cameras {
		t.Run(name, func(t *testing.T) {
			vp, inv := testViewProjection(t, cam)
			for _, p := range points {
				px, py := project(vp, p)
				got := Unproject(px, py, canvasW, canvasH, inv, p[2])
				if !vecNear(got, p, 1e-2) {
					t.Fatalf("Unproject(project(%v)) = %v", p, got)
				}
			}
		})
	}
}

func TestUnprojectCenterPixelHitsLineOfSight(t *testing.T) {
	cam := NewCamera(mat.Vec3{1, 2, 10}, 1, 1)
	_, inv := testViewProjection(t, cam)
	got := Unproject(canvasW/2, canvasH/2, canvasW, canvasH, inv, 0)
	if want := (mat.Vec3{1, 2, 0}); !vecNear(got, want, 1e-3) {
		t.Fatalf("Unproject(center) = %v, want %v", got, want)
	}
}

func TestUnprojectParallelRayFallsBackToNearPoint(t *testing.T) {
	// Every clip point maps onto the plane z = 5, so the ray has no z extent.
	flat := mat.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 5, 1,
	}
	got := Unproject(canvasW/4, canvasH/4, canvasW, canvasH, flat, 0)
	want := mat.Vec3{-0.5, 0.5, 0}
	if !vecNear(got, want, 1e-6) {
		t.Fatalf("Unproject() = %v, want %v", got, want)
	}
}

func TestRayAtZ(t *testing.T) {
	r := Ray{Origin: mat.Vec3{0, 0, 10}, Dir: mat.Vec3{2, 4, -20}}
	got := r.AtZ(0)
	if want := (mat.Vec3{1, 2, 0}); !vecNear(got, want, 1e-6) {
		t.Fatalf("AtZ(0) = %v, want %v", got, want)
	}
}
