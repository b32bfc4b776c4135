package ecs

// SparseSet is cache-friendly component storage keyed by entity id. The
// dense arrays keep iteration tight; the sparse array maps ids to dense
// indexes with -1 for absent entries.
type SparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int
}

// Has returns true if a component is stored for the entity's id.
func (s *SparseSet[T]) Has(e Entity) bool {
	if s == nil || !e.Valid() {
		return false
	}
	id := int(e.id())
	if id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id()
}

// Get returns the component for the entity, or the zero value.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	var zero T
	if !s.Has(e) {
		return zero, false
	}
	return s.values[s.sparse[int(e.id())-1]], true
}

// Set inserts or updates the component for the entity.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(e) {
		idx := s.sparse[id-1]
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// Remove deletes the component for the entity if present, swapping the
// last dense entry into its slot to keep the arrays packed.
func (s *SparseSet[T]) Remove(e Entity) {
	if !s.Has(e) {
		return
	}
	id := int(e.id())
	idx := s.sparse[id-1]
	last := len(s.dense) - 1
	lastEnt := s.dense[last]

	s.dense[idx] = s.dense[last]
	s.values[idx] = s.values[last]
	s.sparse[int(lastEnt.id())-1] = idx

	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
}

// Entities returns the dense entity list. Callers must not mutate it.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

// Len returns the number of stored components.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
