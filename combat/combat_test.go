package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
)

func newFighter(t *testing.T, name string, x, y int) *entity.Entity {
	t.Helper()
	e := &entity.Entity{
		ID: bson.NewObjectID(), X: x, Y: y, Name: name, Blocks: true,
		Faction: components.FactionMonsters,
		Components: components.Set{
			Fighter: &components.Fighter{
				HP: 20, MaxHP: 20, Defense: 1, Power: 2,
				DiceCount: 1, DiceSides: 6, Accuracy: 2, Evasion: 1, ArmorClass: 12,
			},
		},
	}
	return e
}

func TestHitChanceClampingAndBaseHit(t *testing.T) {
	cfg := config.DefaultCombat
	assert.Equal(t, cfg.BaseHit, HitChance(5, 5, cfg))
	assert.Equal(t, cfg.MinHit, HitChance(-1000, 1000, cfg))
	assert.Equal(t, cfg.MaxHit, HitChance(1000, -1000, cfg))
}

func TestHitChanceScenario1(t *testing.T) {
	// spec §8 scenario 1: acc=2, eva=1 -> hit chance 0.80.
	got := HitChance(2, 1, config.DefaultCombat)
	assert.InDelta(t, 0.80, got, 1e-9)
}

func TestResolveAttackDamageMinimumOne(t *testing.T) {
	r := rng.New(1)
	log := messages.NewLog()
	attacker := newFighter(t, "attacker", 0, 0)
	defender := newFighter(t, "defender", 1, 0)
	// Make damage guaranteed to floor at 1: high defense swallows the dice.
	defender.Components.Fighter.Defense = 999
	attacker.Components.Fighter.Accuracy = 1000 // force a hit regardless of draw

	res := ResolveAttack(r, log, attacker, defender, AttackOptions{DamageType: components.DamagePhysical})
	if res.Hit && !res.Fumble {
		require.GreaterOrEqual(t, res.Damage, 1)
	}
}

func TestSurpriseAttackAlwaysHitsAndCrits(t *testing.T) {
	r := rng.New(1)
	log := messages.NewLog()
	attacker := newFighter(t, "player", 0, 0)
	defender := newFighter(t, "zombie", 1, 0)
	defender.Components.Fighter.Evasion = 1000 // would normally guarantee a miss

	res := ResolveAttack(r, log, attacker, defender, AttackOptions{IsSurprise: true, DamageType: components.DamagePhysical})
	assert.True(t, res.Hit)
	assert.True(t, res.Crit)
	assert.False(t, res.Fumble)
	assert.True(t, defender.Components.Fighter.AwareOfPlayer)
}

func TestBonusAttackNeverSurprise(t *testing.T) {
	// Even passing IsSurprise in baseOpts, ResolveBonusAttack always
	// clears it before resolving (spec §4.4/§8 "bonus attack is not a
	// surprise"): with evasion driving hit chance to MinHit, a true
	// surprise attack would hit every time, but a bonus attack must miss
	// at least sometimes across many independent seeds.
	sawMiss := false
	for seed := int64(0); seed < 200; seed++ {
		r := rng.New(seed)
		log := messages.NewLog()
		attacker := newFighter(t, "attacker", 0, 0)
		defender := newFighter(t, "defender", 1, 0)
		defender.Components.Fighter.Evasion = 1000

		attackerTracker := &components.SpeedBonusTracker{SpeedBonusRatio: 1}
		defenderTracker := &components.SpeedBonusTracker{SpeedBonusRatio: 0}
		granted, bonusRes := ResolveBonusAttack(r, log, attacker, defender, attackerTracker, defenderTracker, AttackOptions{IsSurprise: true, DamageType: components.DamagePhysical})
		require.True(t, granted)
		if !bonusRes.Hit {
			sawMiss = true
			break
		}
	}
	assert.True(t, sawMiss, "a bonus attack forced to hit every time would mean IsSurprise leaked through")
}

func TestRelativeSpeedGateDeniesSlowerAttacker(t *testing.T) {
	r := rng.New(1)
	log := messages.NewLog()
	attacker := newFighter(t, "slow", 0, 0)
	defender := newFighter(t, "fast_defender", 1, 0)

	slowerTracker := &components.SpeedBonusTracker{SpeedBonusRatio: 0.1}
	fasterDefenderTracker := &components.SpeedBonusTracker{SpeedBonusRatio: 0.5}
	granted, _ := ResolveBonusAttack(r, log, attacker, defender, slowerTracker, fasterDefenderTracker, AttackOptions{DamageType: components.DamagePhysical})
	assert.False(t, granted)

	equalTracker := &components.SpeedBonusTracker{SpeedBonusRatio: 0.5}
	granted, _ = ResolveBonusAttack(r, log, attacker, defender, equalTracker, fasterDefenderTracker, AttackOptions{DamageType: components.DamagePhysical})
	assert.False(t, granted)
}
