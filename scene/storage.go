package scene

import "iter"

// Storage is an insertion-ordered, append-only collection with a fixed
// capacity. Indices returned by Emplace stay valid for the session since
// nothing is ever removed.
type Storage[T any] struct {
	limit int
	Data  []T
}

func NewStorage[T any](limit int) *Storage[T] {
	return &Storage[T]{
		limit: limit,
		Data:  make([]T, 0, min(limit, 64)),
	}
}

// Emplace appends v and returns its index, or false when the storage is full.
func (s *Storage[T]) Emplace(v T) (int, bool) {
	if s.Full() {
		return -1, false
	}
	id := len(s.Data)
	s.Data = append(s.Data, v)
	return id, true
}

func (s *Storage[T]) Len() int {
	return len(s.Data)
}

func (s *Storage[T]) Cap() int {
	return s.limit
}

func (s *Storage[T]) Full() bool {
	return len(s.Data) >= s.limit
}

// All yields every element in insertion order.
func (s *Storage[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for id, v := range s.Data {
			if !yield(id, v) {
				return
			}
		}
	}
}
