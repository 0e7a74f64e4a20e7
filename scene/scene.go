package scene

import (
	"log"
	"math/rand/v2"

	"cubefield/mat"
)

// Outcome is the result of a placement request. Rejections are ordinary
// results, not errors.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedFull
	RejectedTooClose
	RejectedNoProjection
	RejectedRetriesExhausted
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedFull:
		return "population full"
	case RejectedTooClose:
		return "too close to another cube"
	case RejectedNoProjection:
		return "no inverse view-projection yet"
	case RejectedRetriesExhausted:
		return "no free spot found"
	}
	return "unknown"
}

// PlacementEvent describes one placement attempt. Cube is nil unless the
// attempt was accepted.
type PlacementEvent struct {
	Position   mat.Vec3
	Cube       *Cube
	Outcome    Outcome
	Population int
}

// Policy bounds where and how many cubes may be placed.
type Policy struct {
	MaxCubes     int
	MinDistance  float32
	Retries      int
	SpawnRange   float32 // half extent of the random box in x and y
	SpawnDepth   float32 // half extent of the random box in z
	TextureCount int
}

// Scene owns the cube population. It is not safe for concurrent use; all
// mutation happens on the frame thread.
type Scene struct {
	policy Policy
	cubes  *Storage[*Cube]
	rng    *rand.Rand
	log    *log.Logger

	// OnPlacement, when set, is called after every Place decision.
	OnPlacement func(PlacementEvent)
}

func NewScene(policy Policy, rng *rand.Rand, logger *log.Logger) *Scene {
	if logger == nil {
		logger = log.Default()
	}
	return &Scene{
		policy: policy,
		cubes:  NewStorage[*Cube](policy.MaxCubes),
		rng:    rng,
		log:    logger,
	}
}

func (s *Scene) Len() int {
	return s.cubes.Len()
}

func (s *Scene) Cubes() *Storage[*Cube] {
	return s.cubes
}

// IsTooClose reports whether any cube center lies strictly within
// MinDistance of p.
func (s *Scene) IsTooClose(p mat.Vec3) bool {
	for _, c := range s.cubes.All() {
		if mat.Distance(c.Center, p) < s.policy.MinDistance {
			return true
		}
	}
	return false
}

// Place adds a freshly randomized cube at p unless the population is full or
// p is too close to an existing cube.
func (s *Scene) Place(p mat.Vec3) (*Cube, Outcome) {
	var c *Cube
	outcome := Accepted
	switch {
	case s.cubes.Full():
		outcome = RejectedFull
	case s.IsTooClose(p):
		outcome = RejectedTooClose
	default:
		c = NewCube(p, s.policy.TextureCount, s.rng)
		s.cubes.Emplace(c)
	}
	if outcome != Accepted {
		s.log.Printf("placement at (%.2f, %.2f, %.2f) rejected: %s", p[0], p[1], p[2], outcome)
	}
	s.notify(PlacementEvent{Position: p, Cube: c, Outcome: outcome, Population: s.cubes.Len()})
	return c, outcome
}

// PlaceRandom samples up to Retries points in the spawn box and places a cube
// at the first one clear of its neighbours. Running out of retries is not
// reported beyond the returned outcome.
func (s *Scene) PlaceRandom() (*Cube, Outcome) {
	for range s.policy.Retries {
		p := mat.Vec3{
			(s.rng.Float32()*2 - 1) * s.policy.SpawnRange,
			(s.rng.Float32()*2 - 1) * s.policy.SpawnRange,
			(s.rng.Float32()*2 - 1) * s.policy.SpawnDepth,
		}
		if !s.IsTooClose(p) {
			return s.Place(p)
		}
	}
	return nil, RejectedRetriesExhausted
}

// Update advances every cube by dt seconds.
func (s *Scene) Update(dt float32) {
	for _, c := range s.cubes.All() {
		c.Update(dt)
	}
}

func (s *Scene) notify(ev PlacementEvent) {
	if s.OnPlacement != nil {
		s.OnPlacement(ev)
	}
}
