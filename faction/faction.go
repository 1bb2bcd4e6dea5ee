// Package faction implements the hostility matrix and target-priority
// function of spec.md §4.8, kept as its own addressable package (not folded
// into components.FactionTag) since AI target selection (ai.go's hostile
// search and the slime's distance-based pick) consults it independently of
// any one AI's prelude. Shield-wall adjacency compares faction tags
// directly and does not use this package.
//
// Grounded in original_source/services/faction_engine.py, which is likewise
// its own standalone service rather than a method on a monster class.
package faction

import "github.com/hollowmarch/engine/components"

// special faction tags beyond the default-hostile-to-player set named in
// components.FactionTag; kept here (not in package components) since the
// hostility rules, not the storage slot, are this package's concern.
const (
	HostileAll  components.FactionTag = "hostile_all"
	Independent components.FactionTag = "independent"
	Cultist     components.FactionTag = "cultist"
)

// IsHostile reports whether a and b are hostile to one another (spec §4.8).
func IsHostile(a, b components.FactionTag) bool {
	if a == b {
		return false
	}
	switch a {
	case HostileAll:
		return b != HostileAll
	case Independent:
		return b != Independent
	case components.FactionUndead:
		return b != components.FactionUndead
	case Cultist:
		return b != Cultist
	case components.FactionPlayer:
		return true
	}
	// Default factions: hostile to the player and to every faction above
	// that is hostile to them, so the relation stays symmetric.
	switch b {
	case components.FactionPlayer, HostileAll, Independent, components.FactionUndead, Cultist:
		return true
	}
	return false
}

// TargetPriority returns the base priority spec §4.8 assigns to a
// prospective target from the perspective of an actor of faction `self`,
// before distance tie-breaking: 10 for the player, a mid value for living
// faction members seen by undead, a lower value for slime-like hostiles
// (callers pass isSlimeLike for that actor), 0 for non-hostile pairs.
func TargetPriority(self, target components.FactionTag, isSlimeLike bool) int {
	if !IsHostile(self, target) {
		return 0
	}
	if target == components.FactionPlayer {
		return 10
	}
	if isSlimeLike {
		return 3
	}
	if self == components.FactionUndead && target != components.FactionUndead {
		return 6
	}
	return 5
}

// Candidate is one prospective target as seen by the target-priority
// ranking (spec §4.8: "tie-broken by smallest distance, further tie-broken
// by (y, x) for determinism").
type Candidate struct {
	Faction  components.FactionTag
	Distance float64
	X, Y     int
}

// PickTarget returns the index into candidates of the highest-priority
// target, or -1 if none are hostile. Ties break by smallest distance, then
// by (y, x) ascending, for determinism (spec §4.8).
func PickTarget(self components.FactionTag, candidates []Candidate, isSlimeLike bool) int {
	best := -1
	var bestPriority int
	var bestDist float64
	var bestY, bestX int
	for i, c := range candidates {
		p := TargetPriority(self, c.Faction, isSlimeLike)
		if p <= 0 {
			continue
		}
		if best == -1 ||
			p > bestPriority ||
			(p == bestPriority && c.Distance < bestDist) ||
			(p == bestPriority && c.Distance == bestDist && (c.Y < bestY || (c.Y == bestY && c.X < bestX))) {
			best = i
			bestPriority = p
			bestDist = c.Distance
			bestY = c.Y
			bestX = c.X
		}
	}
	return best
}
