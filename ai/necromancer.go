package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// necromancerState is the shared cooldown/positioning state for the whole
// necromancer family (spec §4.2.7 abstract base). It embeds basicAIState so
// the family's fallback melee attack (necromancerPrelude's last branch)
// shares the same InCombat/Telemetry bookkeeping as every other variant,
// without a second AISlot.State type colliding with the first.
type necromancerState struct {
	basicAIState
	Cooldown int
}

func necromancerActorState(ctx Context) *necromancerState {
	slot := ctx.Actor.Components.AI
	if slot.State == nil {
		slot.State = &necromancerState{}
	}
	return slot.State.(*necromancerState)
}

// necromancerPrelude runs spec §4.2.7 steps 1-5, calling tryAction when off
// cooldown and a valid action target exists; tryAction performs the action
// and returns the new cooldown.
// state is the caller's own *necromancerState (or the embedded field of a
// richer wrapper, e.g. lich's *lichState) — taken as a parameter rather than
// re-derived from ctx.Actor.Components.AI.State, since that field may hold a
// different concrete type than *necromancerState (spec §9 "no AI-variant
// interface": each wrapper type-asserts its own slot once, up front).
func necromancerPrelude(ctx Context, cfg config.Necromancer, state *necromancerState, target *entity.Entity, findActionTarget func() (interface{}, bool), tryAction func(actionTarget interface{}) int) {
	if state.Cooldown > 0 {
		state.Cooldown--
	}

	if state.Cooldown == 0 {
		if at, ok := findActionTarget(); ok {
			state.Cooldown = tryAction(at)
			return
		}
	}

	if target != nil {
		d := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		if d > cfg.ActionRange {
			nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
			if ctx.Map.Walkable(nx, ny) {
				distFromPlayer := EuclideanDistance(nx, ny, ctx.Target.X, ctx.Target.Y)
				if distFromPlayer > cfg.DangerRadiusFromPlayer {
					TryMove(ctx, nx, ny)
					return
				}
			}
		} else if d < cfg.PreferredDistanceMin {
			nx, ny := StepAway(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
			if TryMove(ctx, nx, ny) {
				return
			}
		}
	}

	if target != nil && ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y) <= WeaponReach(ctx.Actor) {
		attackAndRatchet(ctx, target, &state.basicAIState)
		return
	}
	if target != nil {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		TryMove(ctx, nx, ny)
	}
}
