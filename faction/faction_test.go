package faction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowmarch/engine/components"
)

func TestIsHostileSymmetric(t *testing.T) {
	pairs := [][2]components.FactionTag{
		{components.FactionPlayer, components.FactionMonsters},
		{components.FactionMonsters, components.FactionUndead},
		{HostileAll, components.FactionNeutral},
		{Independent, components.FactionMonsters},
		{Cultist, components.FactionPlayer},
		{components.FactionNeutral, components.FactionVermin},
	}
	for _, p := range pairs {
		assert.Equal(t, IsHostile(p[0], p[1]), IsHostile(p[1], p[0]), "hostility must be symmetric for %v", p)
	}
}

func TestIsHostileSameFactionNeverHostile(t *testing.T) {
	for _, f := range []components.FactionTag{components.FactionMonsters, components.FactionUndead, HostileAll, Independent, Cultist} {
		assert.False(t, IsHostile(f, f))
	}
}

func TestIsHostileDefaultFactionsOnlyHostileToPlayer(t *testing.T) {
	assert.True(t, IsHostile(components.FactionMonsters, components.FactionPlayer))
	assert.False(t, IsHostile(components.FactionMonsters, components.FactionVermin))
	assert.False(t, IsHostile(components.FactionMonsters, components.FactionNeutral))
}

func TestTargetPrioritySelfIsZero(t *testing.T) {
	// spec §8: target_priority of an actor against its own faction is 0.
	assert.Equal(t, 0, TargetPriority(components.FactionMonsters, components.FactionMonsters, false))
	assert.Equal(t, 0, TargetPriority(components.FactionUndead, components.FactionUndead, false))
}

func TestTargetPriorityPlayerIsHighest(t *testing.T) {
	assert.Equal(t, 10, TargetPriority(components.FactionMonsters, components.FactionPlayer, false))
	assert.Equal(t, 10, TargetPriority(components.FactionUndead, components.FactionPlayer, false))
}

func TestTargetPriorityUndeadPrefersLivingOverSlimeLike(t *testing.T) {
	living := TargetPriority(components.FactionUndead, components.FactionMonsters, false)
	slime := TargetPriority(components.FactionUndead, components.FactionMonsters, true)
	assert.Greater(t, living, slime)
}

func TestPickTargetTieBreaksByDistanceThenYX(t *testing.T) {
	candidates := []Candidate{
		{Faction: components.FactionPlayer, Distance: 5, X: 3, Y: 3},
		{Faction: components.FactionMonsters, Distance: 1, X: 2, Y: 2},
	}
	// Player outranks on priority regardless of distance.
	idx := PickTarget(components.FactionMonsters, candidates, false)
	assert.Equal(t, 0, idx)

	equalPriority := []Candidate{
		{Faction: components.FactionPlayer, Distance: 4, X: 9, Y: 1},
		{Faction: components.FactionPlayer, Distance: 4, X: 2, Y: 1},
	}
	idx = PickTarget(components.FactionMonsters, equalPriority, false)
	assert.Equal(t, 1, idx, "equal priority and distance breaks ties by smallest (y, x)")
}

func TestPickTargetNoHostileCandidatesReturnsNegativeOne(t *testing.T) {
	candidates := []Candidate{{Faction: components.FactionMonsters, Distance: 1}}
	idx := PickTarget(components.FactionMonsters, candidates, false)
	assert.Equal(t, -1, idx)
}
