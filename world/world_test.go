package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/ai"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/dungeon"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/floorstate"
	"github.com/hollowmarch/engine/rng"
)

func TestNewWorldStartsAtTurnZero(t *testing.T) {
	w := New(rng.New(1), 1)
	assert.Equal(t, 0, w.Turn)
	assert.Equal(t, 1, w.Level)
	assert.NotNil(t, w.Entities)
	assert.NotNil(t, w.Log)
}

func TestEndPlayerActionAdvancesTurn(t *testing.T) {
	w := New(rng.New(1), 1)
	w.Map = &ai.TileMap{Width: 10, Height: 10, Blocked: make([][]bool, 10)}
	for i := range w.Map.Blocked {
		w.Map.Blocked[i] = make([]bool, 10)
	}

	w.EndPlayerAction()
	assert.Equal(t, 1, w.Turn)
	w.EndPlayerAction()
	assert.Equal(t, 2, w.Turn)
}

func TestDescendToSwapsEntityStoreAndPreservesLevel(t *testing.T) {
	w := New(rng.New(1), 1)
	original := w.Entities
	monster := &entity.Entity{ID: bson.NewObjectID(), Name: "goblin", X: 3, Y: 3, Faction: components.FactionMonsters}
	original.Add(monster)

	cfg := config.DefaultFloorState
	factory := func(snap floorstate.EntitySnapshot) *entity.Entity {
		return &entity.Entity{ID: bson.NewObjectID(), Name: snap.Name, X: snap.X, Y: snap.Y, Faction: snap.Faction}
	}

	w.DescendTo(2, floorstate.Point{X: 0, Y: 0}, factory, cfg)
	assert.Equal(t, 2, w.Level)
	assert.NotSame(t, original, w.Entities, "descending swaps in a fresh entity store")
	assert.Empty(t, w.Entities.All(), "no prior snapshot for level 2, so it starts empty")

	w.DescendTo(1, floorstate.Point{X: 0, Y: 0}, factory, cfg)
	assert.Equal(t, 1, w.Level)
	require.Len(t, w.Entities.All(), 1, "returning to level 1 restores its saved snapshot")
	assert.Equal(t, "goblin", w.Entities.All()[0].Name)
}

func TestCanReturnToDelegatesToFloorstateRule(t *testing.T) {
	w := New(rng.New(1), 3)
	assert.True(t, w.CanReturnTo(2, 1))
	assert.False(t, w.CanReturnTo(1, 1))
}

func TestGenerateFloorWiresMapAndDoorsIntoTheWorld(t *testing.T) {
	w := New(rng.New(5), 1)
	rooms := []dungeon.Room{
		{X1: 0, Y1: 0, X2: 2, Y2: 2},
		{X1: 20, Y1: 0, X2: 22, Y2: 2},
	}
	cfg := config.Dungeon{LoopCount: 0, DoorSpacing: 4, DefaultSearchDC: 12}

	level := w.GenerateFloor(rooms, 30, 10, cfg)

	require.NotNil(t, w.Map)
	assert.Equal(t, level.Width, w.Map.Width)
	assert.True(t, w.Map.Walkable(1, 1), "a carved room tile is walkable on the wired map")

	for _, door := range level.Doors {
		_, ok := w.Entities.Get(door.ID)
		assert.True(t, ok, "every generated door is added to the world's entity store")
	}
}
