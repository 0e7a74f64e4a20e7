package scene

import "testing"

func TestStorageEmplaceUntilFull(t *testing.T) {
	s := NewStorage[string](2)
	for i, v := range []string{"a", "b"} {
		id, ok := s.Emplace(v)
		if !ok || id != i {
			t.Fatalf("Emplace(%q) = (%d, %v), want (%d, true)", v, id, ok, i)
		}
	}
	if !s.Full() {
		t.Fatalf("Full() = false, want true")
	}
	if id, ok := s.Emplace("c"); ok || id != -1 {
		t.Fatalf("Emplace() when full = (%d, %v), want (-1, false)", id, ok)
	}
	if s.Len() != 2 || s.Cap() != 2 {
		t.Fatalf("Len(), Cap() = %d, %d, want 2, 2", s.Len(), s.Cap())
	}
	if s.Data[1] != "b" {
		t.Fatalf("Data[1] = %q, want \"b\"", s.Data[1])
	}
}

func TestStorageAllKeepsInsertionOrder(t *testing.T) {
	s := NewStorage[int](10)
	for _, v := range []int{5, 3, 9} {
		s.Emplace(v)
	}
	var got []int
	for _, v := range s.All() {
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 5 || got[1] != 3 || got[2] != 9 {
		t.Fatalf("All() = %v, want [5 3 9]", got)
	}

	var first int
	for _, v := range s.All() {
		first = v
		break
	}
	if first != 5 {
		t.Fatalf("early break yielded %d, want 5", first)
	}
}
