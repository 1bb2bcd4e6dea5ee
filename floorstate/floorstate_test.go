package floorstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

func buildStore(entities ...*entity.Entity) *entity.Store {
	s := entity.NewStore()
	for _, e := range entities {
		s.Add(e)
	}
	return s
}

func simpleFactory(snap EntitySnapshot) *entity.Entity {
	return &entity.Entity{
		ID: bson.NewObjectID(), Name: snap.Name, X: snap.X, Y: snap.Y,
		Glyph: snap.Glyph, Color: snap.Color, Faction: snap.Faction,
		RenderOrder: entity.RenderOrderActor,
		Components:  components.Set{Fighter: snap.Fighter, Door: snap.Door, Corpse: snap.Corpse},
	}
}

func TestSaveFloorStateCapturesEveryEntity(t *testing.T) {
	goblin := &entity.Entity{ID: bson.NewObjectID(), Name: "goblin", X: 5, Y: 5, Faction: components.FactionMonsters}
	sword := &entity.Entity{ID: bson.NewObjectID(), Name: "sword", X: 1, Y: 1, RenderOrder: entity.RenderOrderItem}
	store := buildStore(goblin, sword)

	snap := SaveFloorState(3, store, Point{X: 0, Y: 0}, nil)
	assert.Equal(t, 3, snap.Level)
	assert.Len(t, snap.Entities, 2)
	assert.True(t, snap.Visited)
}

func TestLoadFloorStateDespawnsFarNonSpecialEntities(t *testing.T) {
	near := &entity.Entity{ID: bson.NewObjectID(), Name: "near_goblin", X: 1, Y: 1, Faction: components.FactionMonsters}
	far := &entity.Entity{ID: bson.NewObjectID(), Name: "far_goblin", X: 100, Y: 100, Faction: components.FactionMonsters}
	item := &entity.Entity{ID: bson.NewObjectID(), Name: "far_item", X: 100, Y: 100, RenderOrder: entity.RenderOrderItem}
	store := buildStore(near, far, item)

	snap := SaveFloorState(1, store, Point{X: 0, Y: 0}, nil)
	cfg := config.FloorState{DespawnRadius: 10, RespawnCapFraction: 0.5}

	loaded := LoadFloorState(snap, cfg, Point{X: 0, Y: 0}, simpleFactory)

	var names []string
	for _, e := range loaded {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "near_goblin")
	assert.NotContains(t, names, "far_goblin", "a non-special entity beyond the despawn radius is dropped")
	assert.Contains(t, names, "far_item", "special (item) entities always survive despawn-far")
}

func TestLoadFloorStateZeroTurnsRoundTripReproducesEntitySet(t *testing.T) {
	goblin := &entity.Entity{ID: bson.NewObjectID(), Name: "goblin", X: 2, Y: 2, Faction: components.FactionMonsters}
	store := buildStore(goblin)
	entry := Point{X: 0, Y: 0}
	cfg := config.FloorState{DespawnRadius: 50, RespawnCapFraction: 0.5}

	snap := SaveFloorState(1, store, entry, nil)
	loaded := LoadFloorState(snap, cfg, entry, simpleFactory)

	require.Len(t, loaded, 1)
	assert.Equal(t, "goblin", loaded[0].Name)
	assert.Equal(t, goblin.X, loaded[0].X)
	assert.Equal(t, goblin.Y, loaded[0].Y)
	assert.Equal(t, 1, snap.Visit.VisitNumber)
}

func TestLoadFloorStateRespawnCapLimitsSubsequentVisits(t *testing.T) {
	entry := Point{X: 0, Y: 0}
	cfg := config.FloorState{DespawnRadius: 50, RespawnCapFraction: 0.5}

	var mobs []*entity.Entity
	for i := 0; i < 4; i++ {
		mobs = append(mobs, &entity.Entity{ID: bson.NewObjectID(), Name: "rat", X: 1, Y: 1, Faction: components.FactionMonsters})
	}
	store := buildStore(mobs...)
	snap := SaveFloorState(2, store, entry, nil)

	firstVisit := LoadFloorState(snap, cfg, entry, simpleFactory)
	assert.Len(t, firstVisit, 4, "the first visit is never capped")
	assert.Equal(t, 4, snap.Visit.SpawnedCount["rat"])

	secondStore := buildStore(mobs...)
	snap2 := SaveFloorState(2, secondStore, entry, snap)
	secondVisit := LoadFloorState(snap2, cfg, entry, simpleFactory)
	assert.LessOrEqual(t, len(secondVisit), 2, "subsequent visits cap respawns at 50% of the first visit's count")
}

func TestCanReturnToLevelRespectsRestrictBack(t *testing.T) {
	assert.True(t, CanReturnToLevel(3, 4, 1), "descending further is always allowed")
	assert.True(t, CanReturnToLevel(3, 2, 1), "one level back is within the restrict_back window")
	assert.False(t, CanReturnToLevel(3, 1, 1), "two levels back exceeds restrict_back of 1")
	assert.True(t, CanReturnToLevel(3, 1, 2), "within a wider restrict_back it is allowed")
}
