package ai

import (
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// basicAIState is the per-actor state for the basic-monster family (spec
// §3.2 "AI: owns its state"), stored opaquely in components.AISlot.State.
// The skeleton, slime, boss, and necromancer variants embed this state too,
// since each extends the basic-monster behavior per spec §4.2.2/§4.2.5/
// §4.2.6/§4.2.7.
type basicAIState struct {
	InCombat      bool
	PursuingTaunt bool
	Telemetry     Telemetry
}

// Telemetry accumulates the lightweight per-scenario counters spec §4.6
// step 6 calls for ("record metrics ... for scenario telemetry"),
// generalized to every AI variant rather than just corpse-raisers. It is
// read-only to the scheduler; only the AI package increments it.
type Telemetry struct {
	AttacksAttempted int
	ItemsUsed        int
	RaisesAttempted  int
	RaisesSucceeded  int
}

// Reset zeroes every counter, for callers that scope telemetry to one
// encounter rather than an actor's whole lifetime.
func (t *Telemetry) Reset() { *t = Telemetry{} }

// ReadTelemetry returns a copy of actor's accumulated telemetry, or the
// zero value if it carries no basic-monster-family AI state.
func ReadTelemetry(actor *entity.Entity) Telemetry {
	t := telemetryOf(actor)
	if t == nil {
		return Telemetry{}
	}
	return *t
}

// telemetryOf returns a pointer to actor's embedded Telemetry regardless of
// which basic-monster-family state struct it carries, or nil if the actor
// has no AI state yet or carries a state without Telemetry (the mindless
// zombie and confused states).
func telemetryOf(actor *entity.Entity) *Telemetry {
	slot := actor.Components.AI
	if slot == nil || slot.State == nil {
		return nil
	}
	switch state := slot.State.(type) {
	case *basicAIState:
		return &state.Telemetry
	case *bossState:
		return &state.Telemetry
	case *necromancerState:
		return &state.Telemetry
	case *lichState:
		return &state.Telemetry
	case *skirmisherState:
		return &state.Telemetry
	default:
		return nil
	}
}

func basicState(actor *entity.Entity) *basicAIState {
	slot := actor.Components.AI
	if slot.State == nil {
		slot.State = &basicAIState{}
	}
	return slot.State.(*basicAIState)
}

// TakeTurnBasicMonster implements spec §4.2.1: aggro-gated pursuit, melee on
// reach, bonus attack via the speed-bonus ratchet on a surviving target.
func TakeTurnBasicMonster(ctx Context) {
	UpdateAwareness(ctx.Actor, ctx.FOV)

	state := basicState(ctx.Actor)
	if TryItemSeeking(ctx, state.InCombat) {
		return
	}
	inFOV := ctx.FOV != nil && ctx.FOV.Visible(ctx.Actor.X, ctx.Actor.Y)
	if !state.PursuingTaunt && !state.InCombat && !inFOV {
		return // aggro gate: spec §4.2.1 "act iff pursuing_taunt v in_combat v actor in player.fov"
	}

	target := ResolveTarget(ctx)
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
	reach := WeaponReach(ctx.Actor)
	if d > reach {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		TryMove(ctx, nx, ny)
		return
	}
	attackAndRatchet(ctx, target, state)
}

// attackAndRatchet resolves the primary melee attack (never a surprise for
// monster attackers — surprise only applies to the player, spec §4.4) then
// the speed-bonus ratchet's bonus-attack chance.
func attackAndRatchet(ctx Context, target *entity.Entity, state *basicAIState) {
	state.InCombat = true
	state.Telemetry.AttacksAttempted++
	res := resolvePlainAttack(ctx, target)
	finalizeIfDead(ctx, target, res)
}

// resolvePlainAttack runs one ordinary (non-surprise) melee attack plus the
// speed-bonus ratchet's bonus-attack chance, shared by every variant whose
// combat step is "attack, maybe get a bonus attack" (spec §4.4).
func resolvePlainAttack(ctx Context, target *entity.Entity) combat.Result {
	if tf := target.Components.Fighter; tf != nil {
		tf.AwareOfPlayer = true
	}
	opts := combat.AttackOptions{
		DamageType:       naturalDamageType(ctx.Actor),
		ShieldWallAllies: ShieldWallBonus(ctx.Entities, target),
		ExtraAttackBonus: CommandTheDeadBonus(ctx.Entities, ctx.Actor, config.DefaultLichPassives),
	}
	res := combat.ResolveAttack(ctx.RNG, ctx.Log, ctx.Actor, target, opts)
	if res.TargetDied {
		return res
	}
	attacker := ctx.Actor.Components.SpeedBonus
	defender := target.Components.SpeedBonus
	if attacker != nil {
		granted, bonusRes := combat.ResolveBonusAttack(ctx.RNG, ctx.Log, ctx.Actor, target, attacker, defender, opts)
		if granted && bonusRes.TargetDied {
			return bonusRes
		}
	}
	return res
}

func naturalDamageType(actor *entity.Entity) components.DamageType {
	if actor.Components.Fighter != nil && actor.Components.Fighter.NaturalDamageType != "" {
		return actor.Components.Fighter.NaturalDamageType
	}
	return components.DamagePhysical
}

// finalizeIfDead runs death finalization (spec §4.4 "Death finalization")
// when an attack result reports the target died.
func finalizeIfDead(ctx Context, target *entity.Entity, res combat.Result) {
	if !res.TargetDied {
		return
	}
	combat.FinalizeDeath(ctx.RNG, ctx.Log, ctx.Entities, target, ctx.Turn)
}
