// Package world wires the engine's subsystems into the one live, in-place
// mutated aggregate spec.md §5 describes ("exactly one active world... no
// operation suspends"): entity store, message log, rng, current floor's
// map/FOV, and the player-action entry point that triggers the enemy-turn
// phase.
//
// Grounded in ships/stack.go's ShipStack: one struct holding every
// subsystem's per-entity state (ships, role, position) that every
// operation in that package takes as its first receiver, scaled up here
// to a world-level aggregate of entity store + dungeon + floor state.
package world

import (
	"github.com/hollowmarch/engine/ai"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/dungeon"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/floorstate"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/scheduler"
)

// World is the single mutable aggregate spec.md §5 requires ("exactly one
// active world mutated in place").
type World struct {
	Entities *entity.Store
	Map      *ai.TileMap
	FOV      ai.FOV
	RNG      *rng.Source
	Log      *messages.Log
	Turn     int
	Level    int

	snapshots map[int]*floorstate.Snapshot
}

// New constructs an empty world at turn 0 on the given level.
func New(r *rng.Source, level int) *World {
	return &World{
		Entities:  entity.NewStore(),
		Log:       messages.NewLog(),
		RNG:       r,
		Level:     level,
		snapshots: map[int]*floorstate.Snapshot{},
	}
}

// EndPlayerAction advances one global turn after the player's action has
// already been applied to the world: it runs the enemy-turn phase and
// increments the turn counter (spec §2 data flow, §5 ordering guarantee 1:
// "player action(s) resolve first... enemy phase iterates").
func (w *World) EndPlayerAction() {
	phase := &scheduler.Phase{Entities: w.Entities, FOV: w.FOV, Map: w.Map, RNG: w.RNG, Turn: w.Turn}
	phase.BeginEnemyPhase(w.Log)
	w.Turn++
}

// DescendTo saves the current level's state and installs the destination
// level's entities (spec §4.10): rebuilding from a prior snapshot if one
// exists, or starting the floor empty for the caller's own generation
// step otherwise.
func (w *World) DescendTo(level int, entryPoint floorstate.Point, factory floorstate.Factory, cfg config.FloorState) {
	w.snapshots[w.Level] = floorstate.SaveFloorState(w.Level, w.Entities, entryPoint, w.snapshots[w.Level])

	w.Level = level
	w.Entities = entity.NewStore()

	if snap, ok := w.snapshots[level]; ok {
		for _, e := range floorstate.LoadFloorState(snap, cfg, entryPoint, factory) {
			w.Entities.Add(e)
		}
	}
}

// CanReturnTo reports whether the player may travel from the current
// level back up to target, per the configured restrict_back limit (spec
// §4.10 step 3).
func (w *World) CanReturnTo(target, restrictBack int) bool {
	return floorstate.CanReturnToLevel(w.Level, target, restrictBack)
}

// GenerateFloor carves the current floor's rooms and corridors (spec §4.9)
// and wires the result into the live world: Map becomes the carved grid and
// every placed door joins the entity store. Call this instead of restoring
// a snapshot when a floor is visited for the first time.
func (w *World) GenerateFloor(rooms []dungeon.Room, width, height int, cfg config.Dungeon) *dungeon.Level {
	level := dungeon.GenerateLevel(rooms, width, height, cfg, w.RNG)
	w.Map = &ai.TileMap{Width: level.Width, Height: level.Height, Blocked: level.Blocked}
	for _, door := range level.Doors {
		w.Entities.Add(door)
	}
	return level
}
