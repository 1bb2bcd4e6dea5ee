// Package corpse implements the raise-dead/corpse-to-minion pipeline of
// spec.md §4.6. The corpse automaton itself (FRESH/SPENT/CONSUMED gates)
// lives on components.Corpse; this package orchestrates the pipeline that
// drives it, since that orchestration needs the entity store and a monster
// factory the automaton's own methods don't.
//
// Grounded in ships/formation_combat.go's ExecuteFormationBattleRound: a
// free function taking several collaborators and a rng, returning a result
// record, rather than a method on any one of them.
package corpse

import (
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
)

// MonsterFactory constructs a new monster entity at (x, y) from a static
// definition keyed by monsterID. Static content registries are out of
// scope for this engine (spec §1); callers inject their own factory.
type MonsterFactory func(monsterID string, x, y int) *entity.Entity

// MonsterDef is the flavor-text half of a monster's static definition; the
// stats/AI-tag half lives with whatever factory builds the actual entity.
// The split keeps this engine's only stake in the content registry (spec
// §6.1) to the one field a renderer needs and nothing else.
type MonsterDef struct {
	Name        string
	Description string
}

// MonsterCatalog is a read-only id->MonsterDef lookup, supplied by the
// content-registry collaborator this engine doesn't own (spec §6.1).
type MonsterCatalog map[string]MonsterDef

// Describe returns id's flavor text, or ok=false if id is unknown.
func (c MonsterCatalog) Describe(id string) (string, bool) {
	def, ok := c[id]
	if !ok {
		return "", false
	}
	return def.Description, true
}

// RaiseResult reports what the pipeline did, for the spawner's telemetry
// (spec §4.6 step 6 "record metrics").
type RaiseResult struct {
	Raised bool
	Minion *entity.Entity
}

// Raise runs spec §4.6's algorithm. spawnerFaction overrides the new
// minion's faction; the corpse state transition itself is
// components.Corpse.RaiseDead, and Raise is the orchestration around it.
// Recording metrics (step 6) is left to the caller, from the returned
// RaiseResult.
func Raise(store *entity.Store, log *messages.Log, corpseEntity *entity.Entity, monsterID string, spawnerFaction components.FactionTag, factory MonsterFactory) RaiseResult {
	c := corpseEntity.Components.Corpse
	if c == nil || !c.CanRaise() {
		log.Message("Cannot raise: no valid corpse.", "white")
		return RaiseResult{}
	}
	if blocker, ok := store.BlockerAt(corpseEntity.X, corpseEntity.Y); ok && blocker.ID != corpseEntity.ID {
		log.Message("Cannot raise: the corpse tile is blocked.", "white")
		return RaiseResult{}
	}

	minion := factory(monsterID, corpseEntity.X, corpseEntity.Y)
	minion.Faction = spawnerFaction

	c.RaiseDead()

	if c.State == components.CorpseConsumed {
		store.Remove(corpseEntity.ID)
	}

	store.Add(minion)
	log.Message(corpseEntity.Name+" rises as a "+minion.Name+".", "white")

	return RaiseResult{Raised: true, Minion: minion}
}
