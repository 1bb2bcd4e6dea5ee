package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// BoneThrallFactory constructs the bone-thrall minion spawned by consuming
// a bone pile (spec §4.2.7 "Bone necromancer").
type BoneThrallFactory func(x, y int) *entity.Entity

var boneThrallFactory BoneThrallFactory

// SetBoneThrallFactory installs the minion factory.
func SetBoneThrallFactory(f BoneThrallFactory) { boneThrallFactory = f }

// TakeTurnBoneNecromancer implements spec §4.2.7 "Bone necromancer":
// targets entities tagged is_bone_pile; consumes the pile and spawns a
// bone thrall at that tile.
func TakeTurnBoneNecromancer(ctx Context) {
	target := ResolveTarget(ctx)
	cfg := config.DefaultBoneNecromancer
	necromancerPrelude(ctx, cfg, necromancerActorState(ctx), target, func() (interface{}, bool) {
		return nearestBonePile(ctx, cfg.ActionRange)
	}, func(at interface{}) int {
		pile := at.(*entity.Entity)
		ctx.Entities.Remove(pile.ID)
		t := telemetryOf(ctx.Actor)
		if t != nil {
			t.RaisesAttempted++
		}
		if boneThrallFactory != nil {
			thrall := boneThrallFactory(pile.X, pile.Y)
			thrall.Faction = ctx.Actor.Faction
			ctx.Entities.Add(thrall)
			ctx.Log.Message("A bone thrall rises from the pile.", "white")
			if t != nil {
				t.RaisesSucceeded++
			}
		}
		return cfg.ActionCooldownTurns
	})
}

func nearestBonePile(ctx Context, maxRange float64) (*entity.Entity, bool) {
	var best *entity.Entity
	bestDist := maxRange
	for _, e := range ctx.Entities.All() {
		if !e.HasTag("is_bone_pile") {
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
