// Package entity implements the stable-identity + positional-data +
// component-map store described in spec.md §3.1. Identity is a
// bson.ObjectID, following the teacher's use of bson.ObjectID as the stable
// identity field on every persisted document (ships.ShipStack, maps.MongoMap,
// diplomacy.RelationDoc).
package entity

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/components"
)

// ID is the stable identity of an entity. Never reused within a run; a
// corpse reuses its originating actor's ID (spec §4.4 death finalization
// step 3), it does not mint a new one.
type ID = bson.ObjectID

// RenderOrder buckets draw priority for the (external) renderer. Values are
// small ints; higher draws on top. The engine never reads these itself.
type RenderOrder int

const (
	RenderOrderCorpse RenderOrder = iota
	RenderOrderItem
	RenderOrderDoor
	RenderOrderHazard
	RenderOrderActor
	RenderOrderPlayer
)

// Entity is the unit of ownership described in spec.md §3.1: destroying the
// entity destroys its components. Positions are mutated only through
// Store.Move/Teleport, never by assigning X/Y directly from outside this
// package's callers (AI/combat/scheduler all route through Store).
type Entity struct {
	ID   ID
	X, Y int

	Glyph rune
	Color string
	Name  string

	Blocks      bool
	RenderOrder RenderOrder
	Faction     components.FactionTag

	Components components.Set

	// Tags carries free-form boolean flags content factories attach (e.g.
	// "is_bone_pile", "plague_carrier") that don't warrant their own
	// component kind (spec §4.2.7 subclass actions key off these).
	Tags map[string]bool

	// alive is false once this entity has been removed from the active list
	// (but a corpse transformed in place, §4.4 step 3, stays alive=true with
	// the same ID and a fresh Components.Corpse).
	alive bool
}

// IsAlive reports whether the entity is still on the active list.
func (e *Entity) IsAlive() bool { return e.alive }

// IsPlayer reports whether this entity is the player-controlled actor.
func (e *Entity) IsPlayer() bool { return e.Faction == components.FactionPlayer }

// HP returns the entity's current hit points, or 0 if it has no fighter
// component (corpses, doors, items).
func (e *Entity) HP() int {
	if e.Components.Fighter == nil {
		return 0
	}
	return e.Components.Fighter.HP
}

// HasTag reports whether a free-form content tag is set.
func (e *Entity) HasTag(tag string) bool {
	return e.Tags != nil && e.Tags[tag]
}

// SetTag sets a free-form content tag.
func (e *Entity) SetTag(tag string) {
	if e.Tags == nil {
		e.Tags = make(map[string]bool)
	}
	e.Tags[tag] = true
}

// IsDead reports whether the entity has a fighter component at hp<=0. An
// entity transformed into a corpse has no fighter component and is not
// "dead" in this sense — it is inert.
func (e *Entity) IsDead() bool {
	return e.Components.Fighter != nil && e.Components.Fighter.HP <= 0
}
