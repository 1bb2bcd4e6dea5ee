package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// skirmisherState tracks the pouncing-leap cooldown on top of the shared
// basic-monster state (spec §4.2.8).
type skirmisherState struct {
	basicAIState
	LeapCooldown int
}

func skirmisherActorState(ctx Context) *skirmisherState {
	slot := ctx.Actor.Components.AI
	if slot.State == nil {
		slot.State = &skirmisherState{}
	}
	return slot.State.(*skirmisherState)
}

// TakeTurnSkirmisher implements spec §4.2.8: pouncing leap when off
// cooldown and the player is at range [3,6] and the actor isn't
// immobilized, else basic-monster pursuit/attack plus fast-pressure.
func TakeTurnSkirmisher(ctx Context) {
	UpdateAwareness(ctx.Actor, ctx.FOV)
	state := skirmisherActorState(ctx)
	cfg := config.DefaultSkirmisher

	if state.LeapCooldown > 0 {
		state.LeapCooldown--
	}

	inFOV := ctx.FOV != nil && ctx.FOV.Visible(ctx.Actor.X, ctx.Actor.Y)
	if !state.InCombat && !inFOV {
		return
	}

	target := ResolveTarget(ctx)
	if target == nil {
		return
	}

	if IsGlued(ctx.Actor) {
		ctx.Log.Message(ctx.Actor.Name+" struggles against the glue.", "white")
		if ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y) <= WeaponReach(ctx.Actor) {
			skirmisherAttack(ctx, target, state, cfg)
		}
		return
	}

	dist := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if state.LeapCooldown == 0 && dist >= float64(cfg.LeapMinDistance) && dist <= float64(cfg.LeapMaxDistance) {
		if tryLeap(ctx, target) {
			state.LeapCooldown = cfg.LeapCooldownTurns
			return
		}
	}

	d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if d > WeaponReach(ctx.Actor) {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		TryMove(ctx, nx, ny)
		return
	}
	skirmisherAttack(ctx, target, state, cfg)
}

// tryLeap steps twice directly toward the target, stopping early on
// blockage; returns whether at least one step succeeded (spec §4.2.8).
func tryLeap(ctx Context, target *entity.Entity) bool {
	moved := false
	for i := 0; i < 2; i++ {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		if !TryMove(ctx, nx, ny) {
			break
		}
		moved = true
	}
	if moved {
		ctx.Log.Message(ctx.Actor.Name+" leaps forward.", "white")
	}
	return moved
}

func skirmisherAttack(ctx Context, target *entity.Entity, state *skirmisherState, cfg config.Skirmisher) {
	state.InCombat = true
	state.Telemetry.AttacksAttempted++
	res := resolvePlainAttack(ctx, target)
	finalizeIfDead(ctx, target, res)
	if res.TargetDied || !res.Hit {
		return
	}
	// Fast pressure: one additional light-tempo attack at probability p,
	// in addition to speed-bonus ratcheting (spec §4.2.8).
	if ctx.RNG.Chance(cfg.FastPressureChance) {
		res2 := resolvePlainAttack(ctx, target)
		finalizeIfDead(ctx, target, res2)
	}
}
