package entity

import "sort"

// Store owns the active entity list for one floor (spec §3.1: "entity store
// — stable identity + positional data + component map for every actor,
// corpse, item, door, portal, and hazard tile"). Positions are mutated only
// through Move/Teleport; callers never assign X/Y directly.
//
// Grounded in maps/map.go's MongoMap holding a flat slice of documents
// keyed by ObjectID, looked up both by id and by derived position key.
type Store struct {
	byID map[ID]*Entity
	// order preserves insertion order so iteration (and the scheduler's
	// "stable order by id" requirement, spec §4.1) is reproducible; All()
	// sorts by id on each call.
	order []ID
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[ID]*Entity)}
}

// Add registers a new entity, marking it alive.
func (s *Store) Add(e *Entity) {
	e.alive = true
	s.byID[e.ID] = e
	s.order = append(s.order, e.ID)
}

// Get looks up an entity by id.
func (s *Store) Get(id ID) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Remove deletes an entity from the active list entirely (spec §3.1 "dead
// actors must be removed from the active list... unless transformed
// in-place into a corpse entity").
func (s *Store) Remove(id ID) {
	if e, ok := s.byID[id]; ok {
		e.alive = false
	}
	delete(s.byID, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// All returns every live entity, ordered by ascending ID for determinism
// (spec §4.1: "iterates the enemy-turn actor list in a stable order (by id)").
func (s *Store) All() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.byID[id]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

// At returns every live entity occupying (x, y).
func (s *Store) At(x, y int) []*Entity {
	var out []*Entity
	for _, id := range s.order {
		e, ok := s.byID[id]
		if ok && e.X == x && e.Y == y {
			out = append(out, e)
		}
	}
	return out
}

// BlockerAt returns the first blocking entity at (x, y), if any (spec §3.1
// invariant: "at most one entity occupies a tile when both block").
func (s *Store) BlockerAt(x, y int) (*Entity, bool) {
	for _, e := range s.At(x, y) {
		if e.Blocks {
			return e, true
		}
	}
	return nil, false
}

// Move relocates an entity to (x, y) unconditionally. Callers are
// responsible for blocking/bounds checks beforehand (spec §3.1: "positions
// are mutated only through move/teleport operations").
func (s *Store) Move(e *Entity, x, y int) {
	e.X, e.Y = x, y
}

// Teleport is an alias for Move kept distinct in the API so call sites
// document intent (a teleport bypasses adjacency/path assumptions a plain
// move would carry).
func (s *Store) Teleport(e *Entity, x, y int) {
	e.X, e.Y = x, y
}
