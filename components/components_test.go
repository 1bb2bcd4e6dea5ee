package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCorpseAutomatonLegalTransitions(t *testing.T) {
	c := &Corpse{State: CorpseFresh, MaxRaises: 3}

	assert.True(t, c.CanRaise())
	assert.False(t, c.CanExplode())
	assert.True(t, c.RaiseDead())
	assert.Equal(t, CorpseFresh, c.State, "stays FRESH until raise_count == max_raises")
	assert.False(t, c.Consumed)

	// MarkSpent is illegal while FRESH with raises remaining in this test's
	// narrative, but the automaton only gates it on current state == FRESH,
	// so it succeeds here regardless of raise_count.
	assert.True(t, c.MarkSpent())
	assert.Equal(t, CorpseSpent, c.State)
	assert.False(t, c.CanRaise(), "raise is only legal from FRESH")
	assert.True(t, c.CanExplode())

	assert.True(t, c.Explode())
	assert.Equal(t, CorpseConsumed, c.State)
	assert.True(t, c.Consumed, "consumed bool stays in sync with CONSUMED state")
	assert.False(t, c.CanRaise())
	assert.False(t, c.CanExplode())

	// From CONSUMED, neither raise nor explode is permitted again.
	assert.False(t, c.RaiseDead())
	assert.False(t, c.Explode())
}

func TestCorpseRaiseDeadExhaustsToConsumed(t *testing.T) {
	c := &Corpse{State: CorpseFresh, MaxRaises: 2}

	assert.True(t, c.RaiseDead())
	assert.Equal(t, CorpseFresh, c.State)
	assert.True(t, c.RaiseDead())
	assert.Equal(t, CorpseConsumed, c.State, "raise_count reaching max_raises transitions straight to CONSUMED")
	assert.True(t, c.Consumed)
	assert.False(t, c.CanRaise())
}

func TestCorpseMarkConsumedFromAnyState(t *testing.T) {
	fresh := &Corpse{State: CorpseFresh, MaxRaises: 1}
	fresh.MarkConsumed()
	assert.Equal(t, CorpseConsumed, fresh.State)
	assert.True(t, fresh.Consumed)

	spent := &Corpse{State: CorpseSpent}
	spent.MarkConsumed()
	assert.Equal(t, CorpseConsumed, spent.State)
	assert.True(t, spent.Consumed)
}

func TestSpeedBonusRatchetZeroRatioSilence(t *testing.T) {
	tr := &SpeedBonusTracker{SpeedBonusRatio: 0}
	for i := 0; i < 10; i++ {
		granted := tr.Advance(0.0) // even the smallest possible draw never grants
		assert.False(t, granted)
	}
	assert.Equal(t, 0, tr.AttackCounter, "ratio 0 never increments the counter")
}

func TestSpeedBonusRatchetScenario5(t *testing.T) {
	// spec §8 scenario 5: ratchet at r=0.25. Attacks 1-3 at chances
	// 25/50/75% with an RNG that returns 0.99 each time -> no early
	// bonuses. Attack 4: chance = 1.0 -> guaranteed bonus; counter resets.
	tr := &SpeedBonusTracker{SpeedBonusRatio: 0.25}

	assert.False(t, tr.Advance(0.99))
	assert.Equal(t, 1, tr.AttackCounter)
	assert.False(t, tr.Advance(0.99))
	assert.Equal(t, 2, tr.AttackCounter)
	assert.False(t, tr.Advance(0.99))
	assert.Equal(t, 3, tr.AttackCounter)

	assert.True(t, tr.Advance(0.99))
	assert.Equal(t, 0, tr.AttackCounter, "a guaranteed grant resets the counter")
}

func TestSpeedBonusRatchetResetBreaksMomentum(t *testing.T) {
	tr := &SpeedBonusTracker{SpeedBonusRatio: 0.5, AttackCounter: 3}
	tr.Reset()
	assert.Equal(t, 0, tr.AttackCounter)
}

func TestDoorBlocksRules(t *testing.T) {
	plain := &Door{IsClosed: true}
	assert.True(t, plain.Blocks())

	open := &Door{IsClosed: false}
	assert.False(t, open.Blocks())

	locked := &Door{IsClosed: true, IsLocked: true}
	assert.True(t, locked.Blocks())

	secretHidden := &Door{IsClosed: true, IsSecret: true, IsDiscovered: false}
	assert.False(t, secretHidden.Blocks(), "an undiscovered secret door does not block movement")

	secretFound := &Door{IsClosed: true, IsSecret: true, IsDiscovered: true}
	assert.True(t, secretFound.Blocks())
}

func TestDoorUnlockRequiresMatchingKey(t *testing.T) {
	d := &Door{IsClosed: true, IsLocked: true, KeyTag: "brass_key"}
	assert.False(t, d.Unlock(map[string]bool{"iron_key": true}))
	assert.True(t, d.IsLocked)

	assert.True(t, d.Unlock(map[string]bool{"brass_key": true}))
	assert.False(t, d.IsLocked)
}

func TestDoorSearchDiscoversOnSuccess(t *testing.T) {
	d := &Door{SearchDC: 15}
	assert.False(t, d.Search(10))
	assert.False(t, d.IsDiscovered)
	assert.True(t, d.Search(15))
	assert.True(t, d.IsDiscovered)
}

func TestInventoryCapacityGate(t *testing.T) {
	inv := &Inventory{Capacity: 1}
	id1, id2 := bson.NewObjectID(), bson.NewObjectID()
	assert.True(t, inv.Add(id1))
	assert.False(t, inv.Add(id2), "capacity is full")
	assert.True(t, inv.Remove(id1))
	assert.True(t, inv.Add(id2))
}

func TestDoorDescribeHidesUndiscoveredSecret(t *testing.T) {
	secret := &Door{IsClosed: true, IsSecret: true}
	_, ok := secret.Describe()
	assert.False(t, ok, "an undiscovered secret door has nothing to describe yet")

	secret.IsDiscovered = true
	desc, ok := secret.Describe()
	assert.True(t, ok)
	assert.Equal(t, "a secret door", desc)

	locked := &Door{IsClosed: true, IsLocked: true}
	desc, ok = locked.Describe()
	assert.True(t, ok)
	assert.Equal(t, "a locked door", desc)

	open := &Door{IsClosed: false}
	desc, ok = open.Describe()
	assert.True(t, ok)
	assert.Equal(t, "an open door", desc)
}
