package scene

import (
	"errors"
	"log"
	gomath "math"
	"math/rand/v2"
	"time"

	"cubefield/config"
	"cubefield/mat"
	"cubefield/texture"
)

// DrawItem is what the rendering boundary needs for one cube in one frame.
type DrawItem struct {
	Index int // stable insertion index of the cube
	Cube  *Cube
	MVP   mat.Mat4
}

// Session is the per-window state: camera, population, held keys and the
// last good inverse view-projection. All methods run on the frame thread.
type Session struct {
	Camera *Camera
	Scene  *Scene

	cfg    config.Config
	keys   KeySet
	clock  Clock
	log    *log.Logger
	width  int
	height int

	vp       mat.Mat4
	invVP    mat.Mat4
	hasInv   bool
	singular bool // the latest VP could not be inverted
}

func NewSession(cfg config.Config, rng *rand.Rand, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	policy := Policy{
		MaxCubes:     cfg.MaxCubes,
		MinDistance:  cfg.MinDistance,
		Retries:      cfg.PlacementRetries,
		SpawnRange:   cfg.SpawnRange,
		SpawnDepth:   cfg.SpawnDepth,
		TextureCount: texture.Count,
	}
	return &Session{
		Camera: NewCamera(mat.Vec3(cfg.CameraStart), cfg.MoveSpeed, cfg.TurnSpeed),
		Scene:  NewScene(policy, rng, logger),
		cfg:    cfg,
		keys:   KeySet{},
		clock:  Clock{Max: cfg.FrameClamp},
		log:    logger,
		width:  cfg.WindowWidth,
		height: cfg.WindowHeight,
	}
}

// Resize records the canvas size used for projection and unprojection.
// Non-positive sizes (a minimized window) are ignored.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}

func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

func (s *Session) KeyDown(k Key) {
	if k == KeySpawn && !s.keys[k] {
		s.Scene.PlaceRandom()
	}
	s.keys[k] = true
}

func (s *Session) KeyUp(k Key) {
	delete(s.keys, k)
}

// Projection returns the perspective matrix for the current canvas size.
func (s *Session) Projection() mat.Mat4 {
	fovY := float32(float64(s.cfg.FovYDegrees) * gomath.Pi / 180)
	aspect := float32(s.width) / float32(s.height)
	return mat.Perspective(fovY, aspect, s.cfg.Near, s.cfg.Far)
}

// ViewProjection is the VP matrix of the most recent frame.
func (s *Session) ViewProjection() mat.Mat4 {
	return s.vp
}

// Frame advances the session to now and returns one DrawItem per cube in
// insertion order. The inverse VP computed here serves pointer events until
// the next frame.
func (s *Session) Frame(now time.Time) []DrawItem {
	dt := s.clock.Tick(now)

	s.Camera.Update(s.keys, dt)
	s.vp = mat.Multiply(s.Projection(), s.Camera.ViewMatrix())

	inv, err := mat.Invert(s.vp)
	switch {
	case err == nil:
		s.invVP, s.hasInv, s.singular = inv, true, false
	case errors.Is(err, mat.ErrSingular):
		if !s.singular {
			s.log.Printf("view-projection not invertible, keeping previous inverse")
		}
		s.singular = true
	}

	s.Scene.Update(dt)

	items := make([]DrawItem, 0, s.Scene.Len())
	for i, c := range s.Scene.Cubes().All() {
		items = append(items, DrawItem{
			Index: i,
			Cube:  c,
			MVP:   mat.Multiply(s.vp, c.ModelMatrix()),
		})
	}
	return items
}

// Click places a cube under the pixel (px, py) on the configured depth
// plane, using the camera of the previous frame.
func (s *Session) Click(px, py float32) (*Cube, Outcome) {
	if !s.hasInv {
		s.log.Printf("click at (%.0f, %.0f) dropped: %s", px, py, RejectedNoProjection)
		return nil, RejectedNoProjection
	}
	p := Unproject(px, py, float32(s.width), float32(s.height), s.invVP, s.cfg.ClickDepth)
	return s.Scene.Place(p)
}
