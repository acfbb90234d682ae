package canvas

import (
	"iter"
)

// =============================================================================
// Store - Placement State
// =============================================================================

// Store is the ordered collection of placed components and the single
// source of truth for canvas state. Insertion order is preserved; the
// generator groups by region but keeps original order within each group.
//
// The store also owns the active region: the process-wide selection state
// read by catalog lookups and select-to-place position computation.
//
// Store is not safe for concurrent use. All mutations happen synchronously
// on the interaction goroutine; see the package documentation.
type Store struct {
	components []PlacedComponent
	active     Region
	nextID     int64
}

// NewStore creates an empty store with the active region set to header.
func NewStore() *Store {
	return &Store{active: DefaultRegion, nextID: 1}
}

// Append assigns a fresh unique id to c, stores the record, and returns
// it. IDs are monotonic and never reused. Append always succeeds.
func (s *Store) Append(c PlacedComponent) PlacedComponent {
	c.ID = s.nextID
	s.nextID++
	s.components = append(s.components, c)
	return c
}

// Remove deletes the record with the matching id. Removing an absent id
// is a no-op, not an error.
func (s *Store) Remove(id int64) {
	for i, c := range s.components {
		if c.ID == id {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

// UpdatePosition clamps pos to the canvas bounds (minus the component
// footprint) and stores it. A stale id is a no-op.
func (s *Store) UpdatePosition(id int64, pos Point, canvas Rect) {
	for i := range s.components {
		if s.components[i].ID == id {
			s.components[i].Position = Clamp(pos, canvas)
			return
		}
	}
}

// Clear empties the store and resets the active region to header.
func (s *Store) Clear() {
	s.components = nil
	s.active = DefaultRegion
}

// Get returns the component with the given id.
func (s *Store) Get(id int64) (PlacedComponent, bool) {
	for _, c := range s.components {
		if c.ID == id {
			return c, true
		}
	}
	return PlacedComponent{}, false
}

// Query returns a lazy sequence of components matching pred, in insertion
// order. The sequence is finite and restartable: it is a pure filter over
// the current contents with no hidden state.
func (s *Store) Query(pred func(PlacedComponent) bool) iter.Seq[PlacedComponent] {
	return func(yield func(PlacedComponent) bool) {
		for _, c := range s.components {
			if pred(c) && !yield(c) {
				return
			}
		}
	}
}

// Components returns a copy of all placed components in insertion order.
func (s *Store) Components() []PlacedComponent {
	out := make([]PlacedComponent, len(s.components))
	copy(out, s.components)
	return out
}

// Len returns the number of placed components.
func (s *Store) Len() int {
	return len(s.components)
}

// CountIn returns the number of components placed in the region.
func (s *Store) CountIn(r Region) int {
	n := 0
	for _, c := range s.components {
		if c.Region == r {
			n++
		}
	}
	return n
}

// ActiveRegion returns the currently selected region.
func (s *Store) ActiveRegion() Region {
	return s.active
}

// SetActiveRegion changes the selected region. Invalid regions are ignored.
func (s *Store) SetActiveRegion(r Region) {
	if r.Valid() {
		s.active = r
	}
}
