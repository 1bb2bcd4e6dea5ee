// Package floorstate implements the floor-state snapshot/restore machinery
// of spec.md §3.7/§4.10: captured on stair use, restored when a
// previously-visited floor is re-entered, with the despawn-far rule and
// respawn caps applied during restore.
//
// Grounded in maps/map.go's MongoMap, the teacher's own "flat slice of
// position-keyed documents, round-tripped through a snapshot struct"
// pattern, generalized from a single live map to the save/visit/restore
// cycle spec.md §4.10 describes.
package floorstate

import (
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// Point is a floor-tile coordinate.
type Point struct{ X, Y int }

// EntitySnapshot captures the position and component-visible state of one
// entity (spec §3.7: "name, position, glyph, component-visible state:
// fighter HP/max, door state, trap state, etc.").
type EntitySnapshot struct {
	Name  string
	X, Y  int
	Glyph rune
	Color string
	Faction components.FactionTag

	Special bool // chest, NPC, or item: always preserved through despawn

	Fighter *components.Fighter
	Door    *components.Door
	Corpse  *components.Corpse
}

// VisitRecord tracks per-floor visit history (spec §3.7).
type VisitRecord struct {
	VisitNumber    int
	LastVisitedTurn int
	SpawnedCount   map[string]int // entity name -> count spawned across all visits
}

// Snapshot is one floor's persisted state (spec §3.7).
type Snapshot struct {
	Level            int
	Entities         []EntitySnapshot
	Visited          bool
	Visit            VisitRecord
	StairsEntryPoint Point
}

func snapshotEntity(e *entity.Entity) EntitySnapshot {
	special := e.RenderOrder == entity.RenderOrderItem || e.HasTag("is_chest") || e.HasTag("is_npc")
	return EntitySnapshot{
		Name: e.Name, X: e.X, Y: e.Y, Glyph: e.Glyph, Color: e.Color,
		Faction: e.Faction, Special: special,
		Fighter: e.Components.Fighter,
		Door:    e.Components.Door,
		Corpse:  e.Components.Corpse,
	}
}

// SaveFloorState captures a serializable snapshot of every entity on the
// floor plus the player's entry coordinates for the despawn-far rule (spec
// §4.10 step 1). Call before building or swapping in the destination
// floor.
func SaveFloorState(level int, entities *entity.Store, entryPoint Point, prev *Snapshot) *Snapshot {
	snaps := make([]EntitySnapshot, 0, len(entities.All()))
	for _, e := range entities.All() {
		snaps = append(snaps, snapshotEntity(e))
	}
	visit := VisitRecord{SpawnedCount: map[string]int{}}
	if prev != nil {
		visit = prev.Visit
	}
	return &Snapshot{
		Level:            level,
		Entities:         snaps,
		Visited:          true,
		Visit:            visit,
		StairsEntryPoint: entryPoint,
	}
}

// Factory materializes a live entity from its snapshot, since entity
// construction (glyph/AI wiring/etc.) is content-factory territory outside
// this engine (spec §1).
type Factory func(snap EntitySnapshot) *entity.Entity

// LoadFloorState rebuilds a previously-visited floor's entities from its
// snapshot (spec §4.10 step 2):
//   - increments visit_number
//   - drops any non-special entity whose Manhattan distance to the saved
//     entry point exceeds cfg.DespawnRadius (the despawn-far rule)
//   - caps subsequent-visit respawns per entity name at
//     cfg.RespawnCapFraction of the count recorded on the first visit
//   - door/trap state is carried verbatim from the snapshot's per-entity
//     component state (no regeneration)
func LoadFloorState(snap *Snapshot, cfg config.FloorState, entryPoint Point, factory Factory) []*entity.Entity {
	snap.Visit.VisitNumber++
	if snap.Visit.SpawnedCount == nil {
		snap.Visit.SpawnedCount = map[string]int{}
	}

	firstVisit := snap.Visit.VisitNumber == 1
	spawnedThisVisit := map[string]int{}
	var out []*entity.Entity

	for _, es := range snap.Entities {
		if !es.Special && manhattan(es.X, es.Y, entryPoint.X, entryPoint.Y) > cfg.DespawnRadius {
			continue // despawn-far rule
		}
		if !firstVisit && !es.Special {
			cap := int(float64(snap.Visit.SpawnedCount[es.Name]) * cfg.RespawnCapFraction)
			if spawnedThisVisit[es.Name] >= cap {
				continue // respawn cap: at most 50% of the original spawn count
			}
		}
		e := factory(es)
		if e == nil {
			continue
		}
		out = append(out, e)
		spawnedThisVisit[es.Name]++
		if firstVisit {
			snap.Visit.SpawnedCount[es.Name]++
		}
	}
	return out
}

func manhattan(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// CanReturnToLevel denies upward traversal of more than restrictBack
// levels (spec §4.10 step 3). Lower level numbers are assumed shallower
// (closer to the surface); "upward" means current > target.
func CanReturnToLevel(current, target, restrictBack int) bool {
	if target >= current {
		return true
	}
	return current-target <= restrictBack
}
