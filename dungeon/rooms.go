// Package dungeon implements the connectivity and corridor engine of
// spec.md §3.6/§4.9: an MST-plus-loops graph over a floor's room centers,
// three corridor-digging styles, and door placement along the dug tiles.
//
// Grounded in original_source/services/connectivity_engine.py, the Python
// module spec.md's §4.9 distills (UnionFind/MST-via-Kruskal, loop sampling,
// the three dig styles, door spacing), reworked into the teacher's
// free-function-plus-small-struct style (ships/formation_combat.go) rather
// than the original's module-level singleton.
package dungeon

// Room is a rectangular room on a floor, identified by its index in the
// floor's room list (MST/loop edges reference rooms by index, spec §4.9).
type Room struct {
	X1, Y1, X2, Y2 int
}

// Center returns the room's integer-rounded center point, the vertex MST
// and corridor digging operate on.
func (r Room) Center() (x, y int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}
