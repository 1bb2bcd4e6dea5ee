package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/ai"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/status"
)

func newMonster(name string, x, y int, kind ai.Kind) *entity.Entity {
	return &entity.Entity{
		ID: bson.NewObjectID(), Name: name, X: x, Y: y, Blocks: true,
		Faction: components.FactionMonsters,
		Components: components.Set{
			Fighter: &components.Fighter{HP: 10, MaxHP: 10, Accuracy: 2, Evasion: 1, ArmorClass: 10, DiceCount: 1, DiceSides: 4},
			AI:      &components.AISlot{Kind: string(kind)},
			Status:  status.NewManager(nil),
		},
	}
}

func newPlayer(x, y int) *entity.Entity {
	return &entity.Entity{
		ID: bson.NewObjectID(), Name: "player", X: x, Y: y, Blocks: true,
		Faction: components.FactionPlayer,
		Components: components.Set{
			Fighter: &components.Fighter{HP: 20, MaxHP: 20, Accuracy: 2, Evasion: 1, ArmorClass: 12},
		},
	}
}

func blankMap(w, h int) *ai.TileMap {
	blocked := make([][]bool, h)
	for i := range blocked {
		blocked[i] = make([]bool, w)
	}
	return &ai.TileMap{Width: w, Height: h, Blocked: blocked}
}

type alwaysVisibleFOV struct{}

func (alwaysVisibleFOV) Visible(x, y int) bool { return true }

func TestBeginEnemyPhaseSkipsParalyzedActor(t *testing.T) {
	store := entity.NewStore()
	player := newPlayer(5, 5)
	monster := newMonster("paralyzed_goblin", 0, 0, ai.KindBasicMonster)
	mgr := monster.Components.Status.(*status.Manager)
	log := messages.NewLog()
	mgr.Apply(monster.ID.Hex(), status.NewParalysis(2), status.ReplaceInstance, log)

	store.Add(player)
	store.Add(monster)

	phase := &Phase{Entities: store, FOV: alwaysVisibleFOV{}, Map: blankMap(20, 20), RNG: rng.New(1), Turn: 1}
	phase.BeginEnemyPhase(log)

	assert.Equal(t, 0, monster.X, "a paralyzed actor never moves")
	assert.Equal(t, 0, monster.Y)
}

func TestBeginEnemyPhaseFearedActorFlees(t *testing.T) {
	store := entity.NewStore()
	player := newPlayer(5, 5)
	monster := newMonster("feared_goblin", 4, 5, ai.KindBasicMonster)
	mgr := monster.Components.Status.(*status.Manager)
	log := messages.NewLog()
	mgr.Apply(monster.ID.Hex(), status.NewFear(2), status.ReplaceInstance, log)

	store.Add(player)
	store.Add(monster)

	phase := &Phase{Entities: store, FOV: alwaysVisibleFOV{}, Map: blankMap(20, 20), RNG: rng.New(1), Turn: 1}
	phase.BeginEnemyPhase(log)

	assert.Less(t, monster.X, 4, "fleeing steps away from the player, not toward it")
}

func TestBeginEnemyPhaseDOTDeathFinalizesThroughCombatPipeline(t *testing.T) {
	store := entity.NewStore()
	player := newPlayer(5, 5)
	monster := newMonster("dying_goblin", 0, 0, ai.KindBasicMonster)
	monster.Components.Fighter.HP = 1
	mgr := monster.Components.Status.(*status.Manager)
	log := messages.NewLog()
	mgr.Apply(monster.ID.Hex(), status.NewSoulBurn(3, 5, func(owner string, amount int, log *status.Log) {
		monster.Components.Fighter.HP -= amount
	}), status.ReplaceInstance, log)

	store.Add(player)
	store.Add(monster)

	phase := &Phase{Entities: store, FOV: alwaysVisibleFOV{}, Map: blankMap(20, 20), RNG: rng.New(1), Turn: 1}
	phase.BeginEnemyPhase(log)

	_, stillPresent := store.Get(monster.ID)
	require.True(t, stillPresent, "a DOT death finalizes in place through the same pipeline as combat death, it is not silently removed")
	assert.Nil(t, monster.Components.Fighter, "finalize-death clears the fighter component on transform to corpse")
	require.NotNil(t, monster.Components.Corpse)
	assert.Equal(t, components.CorpseFresh, monster.Components.Corpse.State)
}

func TestBeginEnemyPhaseSkipsDeadActorsKilledEarlierThisPhase(t *testing.T) {
	store := entity.NewStore()
	player := newPlayer(5, 5)
	already := newMonster("already_dead", 1, 1, ai.KindBasicMonster)
	already.Components.Fighter.HP = 0

	store.Add(player)
	store.Add(already)

	phase := &Phase{Entities: store, FOV: alwaysVisibleFOV{}, Map: blankMap(20, 20), RNG: rng.New(1), Turn: 1}
	// Should not panic or act on the zero-HP actor.
	phase.BeginEnemyPhase(messages.NewLog())
	assert.Equal(t, 1, already.X)
	assert.Equal(t, 1, already.Y)
}
