package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/components"
)

func newTestEntity(name string) *Entity {
	return &Entity{ID: bson.NewObjectID(), Name: name, Blocks: true}
}

func TestStoreAllIsStableAscendingByID(t *testing.T) {
	s := NewStore()
	a, b, c := newTestEntity("a"), newTestEntity("b"), newTestEntity("c")
	s.Add(c)
	s.Add(a)
	s.Add(b)

	all := s.All()
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID.Hex(), all[i].ID.Hex())
	}

	again := s.All()
	for i := range all {
		assert.Equal(t, all[i].ID, again[i].ID, "ordering is stable across repeated calls")
	}
}

func TestStoreRemoveClearsAliveAndExcludesFromAll(t *testing.T) {
	s := NewStore()
	e := newTestEntity("victim")
	s.Add(e)
	assert.True(t, e.IsAlive())

	s.Remove(e.ID)
	assert.False(t, e.IsAlive())
	_, ok := s.Get(e.ID)
	assert.False(t, ok)
	assert.Empty(t, s.All())
}

func TestStoreBlockerAtPrefersBlockingEntity(t *testing.T) {
	s := NewStore()
	item := &Entity{ID: bson.NewObjectID(), Name: "item", Blocks: false, X: 2, Y: 2}
	blocker := &Entity{ID: bson.NewObjectID(), Name: "monster", Blocks: true, X: 2, Y: 2}
	s.Add(item)
	s.Add(blocker)

	found, ok := s.BlockerAt(2, 2)
	assert.True(t, ok)
	assert.Equal(t, blocker.ID, found.ID)
}

func TestStoreMoveAndTeleportMutatePosition(t *testing.T) {
	s := NewStore()
	e := newTestEntity("mover")
	s.Add(e)

	s.Move(e, 5, 7)
	assert.Equal(t, 5, e.X)
	assert.Equal(t, 7, e.Y)

	s.Teleport(e, 1, 1)
	assert.Equal(t, 1, e.X)
	assert.Equal(t, 1, e.Y)
}

func TestEntityIsDeadRequiresFighterComponent(t *testing.T) {
	corpse := newTestEntity("corpse")
	assert.False(t, corpse.IsDead(), "no fighter component means not dead, just inert")

	dying := newTestEntity("dying")
	dying.Components.Fighter = &components.Fighter{HP: 0, MaxHP: 10}
	assert.True(t, dying.IsDead())

	alive := newTestEntity("alive")
	alive.Components.Fighter = &components.Fighter{HP: 5, MaxHP: 10}
	assert.False(t, alive.IsDead())
}

func TestEntityIsPlayerByFaction(t *testing.T) {
	p := newTestEntity("hero")
	p.Faction = components.FactionPlayer
	assert.True(t, p.IsPlayer())

	m := newTestEntity("goblin")
	m.Faction = components.FactionMonsters
	assert.False(t, m.IsPlayer())
}

func TestEntityTags(t *testing.T) {
	e := newTestEntity("zombie")
	assert.False(t, e.HasTag("plague_carrier"))
	e.SetTag("plague_carrier")
	assert.True(t, e.HasTag("plague_carrier"))
}
