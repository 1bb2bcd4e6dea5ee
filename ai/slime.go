package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/faction"
)

// TakeTurnSlime implements spec §4.2.5: distance-based vision (radius 10,
// not FOV-gated, so slimes act off-screen), faction-priority targeting,
// melee-or-path behavior shared with basic monster.
func TakeTurnSlime(ctx Context) {
	state := basicState(ctx.Actor)
	cfg := config.DefaultSlimeAI

	target := bestHostileByDistance(ctx, cfg.VisionRadius)
	if target == nil {
		return
	}
	target = InvisibilityFallback(ctx, target)
	if target == nil {
		return
	}

	if TryItemUsage(ctx, target, itemUseLookup) {
		return
	}

	if IsGlued(ctx.Actor) {
		ctx.Log.Message(ctx.Actor.Name+" struggles against the glue.", "white")
		if ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y) <= WeaponReach(ctx.Actor) {
			attackAndRatchet(ctx, target, state)
		}
		return
	}

	d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if d > WeaponReach(ctx.Actor) {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		TryMove(ctx, nx, ny)
		return
	}
	attackAndRatchet(ctx, target, state)
}

// bestHostileByDistance picks the highest faction.TargetPriority candidate
// within a Euclidean vision radius, independent of FOV (spec §4.2.5).
func bestHostileByDistance(ctx Context, radius float64) *entity.Entity {
	var candidates []faction.Candidate
	var entities []*entity.Entity
	for _, e := range ctx.Entities.All() {
		if e.ID == ctx.Actor.ID || e.HP() <= 0 {
			continue
		}
		dist := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y)
		if dist > radius {
			continue
		}
		candidates = append(candidates, faction.Candidate{Faction: e.Faction, Distance: dist, X: e.X, Y: e.Y})
		entities = append(entities, e)
	}
	idx := faction.PickTarget(ctx.Actor.Faction, candidates, true)
	if idx < 0 {
		return nil
	}
	return entities[idx]
}
