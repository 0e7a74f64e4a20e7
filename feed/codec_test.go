package feed

import (
	"errors"
	"reflect"
	"testing"

	"cubefield/mat"
	"cubefield/scene"
)

func TestEncodeDecodeBatch(t *testing.T) {
	testCases := []struct {
		name   string
		events []Event
	}{
		{name: "empty", events: []Event{}},
		{name: "mixed", events: []Event{
			{Op: OpPlaced, Position: [3]float32{1, 2, 3}, Category: "red", Texture: 2, Population: 7},
			{Op: OpRejected, Position: [3]float32{1, 2, 3.1}, Reason: "too close to another cube", Population: 7},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := Encode(tc.events)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(msg)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.events) {
				t.Fatalf("Decode() = %+v, want %+v", got, tc.events)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	msg, err := Encode([]Event{{Op: OpPlaced, Category: "blue"}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, n := range []int{0, headerSize - 1, len(msg) - 1} {
		if _, err := Decode(msg[:n]); !errors.Is(err, ErrShortMessage) {
			t.Fatalf("Decode(%d bytes) error = %v, want %v", n, err, ErrShortMessage)
		}
	}
}

func TestFromPlacement(t *testing.T) {
	cube := &scene.Cube{Category: scene.Categories[1], Texture: 2}
	placed := FromPlacement(scene.PlacementEvent{
		Position:   mat.Vec3{1, 2, 3},
		Cube:       cube,
		Outcome:    scene.Accepted,
		Population: 4,
	})
	want := Event{Op: OpPlaced, Position: [3]float32{1, 2, 3}, Category: cube.Category.Name, Texture: 2, Population: 4}
	if placed != want {
		t.Fatalf("FromPlacement(accepted) = %+v, want %+v", placed, want)
	}

	rejected := FromPlacement(scene.PlacementEvent{
		Position:   mat.Vec3{0, 0, 0},
		Outcome:    scene.RejectedFull,
		Population: 512,
	})
	if rejected.Op != OpRejected || rejected.Reason != scene.RejectedFull.String() || rejected.Category != "" {
		t.Fatalf("FromPlacement(full) = %+v", rejected)
	}
}
