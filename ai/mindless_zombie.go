package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// zombieState is the sticky-target state of spec §4.2.3.
type zombieState struct {
	TargetID entity.ID
	HasTarget bool
}

func zombieActorState(ctx Context) *zombieState {
	slot := ctx.Actor.Components.AI
	if slot.State == nil {
		slot.State = &zombieState{}
	}
	return slot.State.(*zombieState)
}

// TakeTurnMindlessZombie implements spec §4.2.3: short sight-radius sticky
// targeting, in-melee target-switch chance, random wander when no target.
func TakeTurnMindlessZombie(ctx Context) {
	state := zombieActorState(ctx)
	cfg := config.DefaultZombieAI

	var target *entity.Entity
	if state.HasTarget {
		if e, ok := ctx.Entities.Get(state.TargetID); ok && e.HP() > 0 && visibleWithin(ctx, e, cfg.SightRadius) {
			target = e
		} else {
			state.HasTarget = false
		}
	}

	if target == nil {
		target = nearestVisibleLiving(ctx, cfg.SightRadius)
		if target != nil {
			state.TargetID = target.ID
			state.HasTarget = true
		}
	}

	if target == nil {
		dx, dy := randAdjacentStep(ctx.RNG)
		TryMove(ctx, ctx.Actor.X+dx, ctx.Actor.Y+dy)
		return
	}

	d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if d <= WeaponReach(ctx.Actor) {
		if ctx.RNG.Chance(cfg.TargetSwitchChance) {
			if alt := anyAdjacentLiving(ctx, target); alt != nil {
				target = alt
				state.TargetID = target.ID
			}
		}
		zombieAttack(ctx, target)
		return
	}

	nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	TryMove(ctx, nx, ny)
}

func visibleWithin(ctx Context, e *entity.Entity, radius int) bool {
	return ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y) <= radius
}

func nearestVisibleLiving(ctx Context, radius int) *entity.Entity {
	var best *entity.Entity
	bestDist := radius + 1
	for _, e := range ctx.Entities.All() {
		if e.ID == ctx.Actor.ID || e.HP() <= 0 {
			continue
		}
		d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y)
		if d <= radius && d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// anyAdjacentLiving returns a currently-adjacent living entity other than
// the current target, for zombie monster-vs-monster chaos (spec §4.2.3).
func anyAdjacentLiving(ctx Context, current *entity.Entity) *entity.Entity {
	for _, e := range ctx.Entities.All() {
		if e.ID == ctx.Actor.ID || e.ID == current.ID || e.HP() <= 0 {
			continue
		}
		if ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y) <= 1 {
			return e
		}
	}
	return nil
}

func zombieAttack(ctx Context, target *entity.Entity) {
	if tf := target.Components.Fighter; tf != nil {
		tf.AwareOfPlayer = true
	}
	res := resolvePlainAttack(ctx, target)
	finalizeIfDead(ctx, target, res)
}
