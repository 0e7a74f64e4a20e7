package scene

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"cubefield/config"
	"cubefield/mat"
)

func newTestSession() *Session {
	return NewSession(config.Default(), testRand(), quietLogger())
}

func TestClickBeforeFirstFrameIsDropped(t *testing.T) {
	s := newTestSession()
	c, got := s.Click(10, 10)
	if got != RejectedNoProjection || c != nil {
		t.Fatalf("Click() = (%v, %v), want (nil, %v)", c, got, RejectedNoProjection)
	}
	if s.Scene.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Scene.Len())
	}
}

func TestClickPlacesUnderCursor(t *testing.T) {
	s := newTestSession()
	s.Frame(time.Unix(100, 0))

	w, h := s.Size()
	c, got := s.Click(float32(w)/2, float32(h)/2)
	if got != Accepted {
		t.Fatalf("Click(center) = %v, want accepted", got)
	}
	start := config.Default().CameraStart
	if want := (mat.Vec3{start[0], start[1], 0}); !vecNear(c.Center, want, 1e-3) {
		t.Fatalf("cube center = %v, want %v", c.Center, want)
	}

	if _, got := s.Click(float32(w)/2, float32(h)/2); got != RejectedTooClose {
		t.Fatalf("second Click(center) = %v, want %v", got, RejectedTooClose)
	}
}

func TestClickUsesPreviousFrameCamera(t *testing.T) {
	s := newTestSession()
	t0 := time.Unix(100, 0)
	s.Frame(t0)

	// Moving the camera after the frame does not affect the pending click.
	s.Camera.Position = mat.Vec3{5, 5, 20}
	w, h := s.Size()
	c, _ := s.Click(float32(w)/2, float32(h)/2)
	if !vecNear(c.Center, mat.Vec3{0, 0, 0}, 1e-3) {
		t.Fatalf("cube center = %v, want origin", c.Center)
	}

	s.Frame(t0.Add(10 * time.Millisecond))
	c, _ = s.Click(float32(w)/2, float32(h)/2)
	if !vecNear(c.Center, mat.Vec3{5, 5, 0}, 1e-3) {
		t.Fatalf("cube center = %v, want (5,5,0)", c.Center)
	}
}

func TestFrameClampsTimeStep(t *testing.T) {
	s := newTestSession()
	t0 := time.Unix(100, 0)
	s.Frame(t0)
	c, _ := s.Scene.Place(mat.Vec3{})

	s.Frame(t0.Add(5 * time.Second))
	want := c.Direction * c.RotSpeed * float32((33 * time.Millisecond).Seconds())
	if !almostEqual(c.Angle, want) {
		t.Fatalf("Angle after stall = %v, want %v", c.Angle, want)
	}
}

func TestFrameDrawItems(t *testing.T) {
	s := newTestSession()
	s.Scene.Place(mat.Vec3{0, 0, 0})
	s.Scene.Place(mat.Vec3{2, 0, 0})

	items := s.Frame(time.Unix(100, 0))
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	vp := s.ViewProjection()
	for i, it := range items {
		if it.Index != i {
			t.Fatalf("items[%d].Index = %d", i, it.Index)
		}
		want := mat.Multiply(vp, it.Cube.ModelMatrix())
		if it.MVP != want {
			t.Fatalf("items[%d].MVP = %v, want %v", i, it.MVP, want)
		}
	}
}

func TestKeySpawnPlacesOncePerPress(t *testing.T) {
	s := newTestSession()
	s.KeyDown(KeySpawn)
	s.KeyDown(KeySpawn) // key repeat
	if s.Scene.Len() != 1 {
		t.Fatalf("Len() = %d after held spawn key, want 1", s.Scene.Len())
	}
	s.KeyUp(KeySpawn)
	s.KeyDown(KeySpawn)
	if s.Scene.Len() != 2 {
		t.Fatalf("Len() = %d after second press, want 2", s.Scene.Len())
	}
}

func TestHeldKeysMoveCameraPerFrame(t *testing.T) {
	s := newTestSession()
	t0 := time.Unix(100, 0)
	s.Frame(t0)
	s.KeyDown(KeyForward)
	s.Frame(t0.Add(20 * time.Millisecond))
	s.KeyUp(KeyForward)
	s.Frame(t0.Add(40 * time.Millisecond))

	cfg := config.Default()
	want := cfg.CameraStart[2] - cfg.MoveSpeed*0.02
	if !vecNear(s.Camera.Position, mat.Vec3{0, 0, want}, 1e-4) {
		t.Fatalf("Position = %v, want (0,0,%v)", s.Camera.Position, want)
	}
}

func TestResizeIgnoresEmptyCanvas(t *testing.T) {
	s := newTestSession()
	s.Resize(0, 300)
	if w, h := s.Size(); w != 1280 || h != 720 {
		t.Fatalf("Size() = %dx%d, want 1280x720", w, h)
	}
	s.Resize(800, 600)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Fatalf("Size() = %dx%d, want 800x600", w, h)
	}
}

func TestFrameKeepsLastInverseWhileSingular(t *testing.T) {
	var logged bytes.Buffer
	s := NewSession(config.Default(), testRand(), log.New(&logged, "", 0))
	t0 := time.Unix(100, 0)
	s.Frame(t0)
	good := s.invVP

	s.cfg.Near = 1e-12
	for i := 1; i <= 3; i++ {
		s.Frame(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	if s.invVP != good {
		t.Fatalf("inverse VP changed while singular: %v, want %v", s.invVP, good)
	}
	if n := strings.Count(logged.String(), "not invertible"); n != 1 {
		t.Fatalf("singular inverse logged %d times over 3 frames, want 1", n)
	}

	w, h := s.Size()
	c, got := s.Click(float32(w)/2, float32(h)/2)
	if got != Accepted {
		t.Fatalf("Click() with kept inverse = %v, want accepted", got)
	}
	if !vecNear(c.Center, mat.Vec3{0, 0, 0}, 1e-3) {
		t.Fatalf("cube center = %v, want origin", c.Center)
	}

	s.cfg.Near = 0.1
	s.Frame(t0.Add(50 * time.Millisecond))
	s.cfg.Near = 1e-12
	s.Frame(t0.Add(60 * time.Millisecond))
	if n := strings.Count(logged.String(), "not invertible"); n != 2 {
		t.Fatalf("singular inverse logged %d times after recovering, want 2", n)
	}
}
