// Package feed streams placement decisions to external observers over a
// websocket. It carries events only; nothing in the scene is persisted or
// restored through it.
package feed

import (
	"fmt"

	"cubefield/scene"
)

type Op int

const (
	OpPlaced Op = iota
	OpRejected
)

func (o Op) String() string {
	switch o {
	case OpPlaced:
		return "placed"
	case OpRejected:
		return "rejected"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Event is the wire form of one placement attempt. Category and Texture are
// only meaningful for OpPlaced, Reason only for OpRejected.
type Event struct {
	Op         Op
	Position   [3]float32
	Category   string
	Texture    int
	Reason     string
	Population int
}

func FromPlacement(ev scene.PlacementEvent) Event {
	e := Event{
		Op:         OpRejected,
		Position:   ev.Position,
		Population: ev.Population,
	}
	if ev.Outcome != scene.Accepted || ev.Cube == nil {
		e.Reason = ev.Outcome.String()
		return e
	}
	e.Op = OpPlaced
	e.Category = ev.Cube.Category.Name
	e.Texture = ev.Cube.Texture
	return e
}

func (e Event) String() string {
	p := e.Position
	if e.Op == OpPlaced {
		return fmt.Sprintf("placed %s cube (texture %d) at (%.2f, %.2f, %.2f), population %d",
			e.Category, e.Texture, p[0], p[1], p[2], e.Population)
	}
	return fmt.Sprintf("rejected (%.2f, %.2f, %.2f): %s, population %d",
		p[0], p[1], p[2], e.Reason, e.Population)
}
