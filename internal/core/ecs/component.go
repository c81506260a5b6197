package ecs

// Store is a typed per-entity map keyed by EntityID. The Registry keeps
// its entity values in one.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]*T, 128)}
}

func (s *Store[T]) Set(id EntityID, v *T) { s.data[id] = v }

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	v, ok := s.data[id]
	return v, ok
}

func (s *Store[T]) Remove(id EntityID) { delete(s.data, id) }

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int { return len(s.data) }
