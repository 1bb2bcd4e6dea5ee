package ai

import (
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
)

// ExploderDamageRange configures the deterministic AoE damage formula (spec
// §4.2.7 "Exploder necromancer"): dmg_min + ((x*1000+y) mod (dmg_max-dmg_min+1)).
type ExploderDamageRange struct {
	Min, Max int
	Radius   float64
	Type     components.DamageType
}

// DefaultExploderDamage is the AoE profile TakeTurnExploderNecromancer uses:
// 2-6 necrotic damage (picked by the position formula above) to every
// fighter within radius 3.
var DefaultExploderDamage = ExploderDamageRange{Min: 2, Max: 6, Radius: 3, Type: components.DamageNecrotic}

// TakeTurnExploderNecromancer implements spec §4.2.7 "Exploder
// necromancer": targets SPENT corpses, marks the corpse CONSUMED, deals
// deterministic AoE damage, tallies per-entity damage and whether the
// player was hit.
func TakeTurnExploderNecromancer(ctx Context) {
	target := ResolveTarget(ctx)
	cfg := config.DefaultExploderNecromancer
	necromancerPrelude(ctx, cfg, necromancerActorState(ctx), target, func() (interface{}, bool) {
		return nearestSpentCorpse(ctx, cfg.ActionRange)
	}, func(at interface{}) int {
		c := at.(*entity.Entity)
		ExplodeCorpse(ctx, c, DefaultExploderDamage)
		return cfg.ActionCooldownTurns
	})
}

func nearestSpentCorpse(ctx Context, maxRange float64) (*entity.Entity, bool) {
	var best *entity.Entity
	bestDist := maxRange
	for _, e := range ctx.Entities.All() {
		c := e.Components.Corpse
		if c == nil || !c.CanExplode() {
			continue
		}
		d := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y)
		if d <= bestDist {
			best = e
			bestDist = d
		}
	}
	return best, best != nil
}

// ExplodeCorpse runs the deterministic AoE: damage = dmg_min +
// ((x*1000+y) mod (dmg_max-dmg_min+1)), applied to every entity within
// radius (spec §4.2.7, §8 scenario 6).
func ExplodeCorpse(ctx Context, c *entity.Entity, dmg ExploderDamageRange) {
	corpseComp := c.Components.Corpse
	if corpseComp == nil || !corpseComp.Explode() {
		return
	}
	ctx.Entities.Remove(c.ID)

	span := dmg.Max - dmg.Min + 1
	amount := dmg.Min
	if span > 0 {
		amount = dmg.Min + ((c.X*1000 + c.Y) % span)
	}

	playerHit := false
	for _, e := range ctx.Entities.All() {
		f := e.Components.Fighter
		if f == nil {
			continue
		}
		if EuclideanDistance(c.X, c.Y, e.X, e.Y) > dmg.Radius {
			continue
		}
		applied := int(float64(amount) * f.ResistanceFor(dmg.Type))
		if applied < 1 {
			applied = 1
		}
		f.HP -= applied
		if f.HP < 0 {
			f.HP = 0
		}
		ctx.Log.Damage(e.ID.Hex(), applied, string(dmg.Type))
		if e.IsPlayer() {
			playerHit = true
		}
		if f.HP <= 0 {
			combat.FinalizeDeath(ctx.RNG, ctx.Log, ctx.Entities, e, ctx.Turn)
		}
	}
	ctx.Log.Append(messages.Record{Meta: map[string]interface{}{"exploder_aoe": true, "player_hit": playerHit, "amount": amount}})
}
