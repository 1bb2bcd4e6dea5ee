package ai

import (
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// bossState tracks the one-shot dialogue/enrage triggers a boss fires
// across its lifetime (spec §4.2.2).
type bossState struct {
	basicAIState
	SpawnedDialogueFired bool
}

func bossActorState(ctx Context) *bossState {
	slot := ctx.Actor.Components.AI
	if slot.State == nil {
		slot.State = &bossState{}
	}
	return slot.State.(*bossState)
}

// TakeTurnBoss implements spec §4.2.2: basic-monster movement plus enrage
// damage multiplier, dialogue bank, status immunity, and no portal use
// (portal_usable is published false at construction time, see portal.go).
func TakeTurnBoss(ctx Context) {
	UpdateAwareness(ctx.Actor, ctx.FOV)

	state := bossActorState(ctx)
	boss := ctx.Actor.Components.Boss
	fighter := ctx.Actor.Components.Fighter
	if boss == nil || fighter == nil {
		return
	}

	if !state.SpawnedDialogueFired {
		state.SpawnedDialogueFired = true
		if line, ok := boss.PickDialogue("spawn", ctx.RNG.Intn); ok {
			ctx.Log.Message(line, "white")
		}
	}

	if !boss.IsEnraged && fighter.MaxHP > 0 && float64(fighter.HP)/float64(fighter.MaxHP) <= boss.EnrageThreshold {
		boss.IsEnraged = true
		if line, ok := boss.PickDialogue("enrage", ctx.RNG.Intn); ok {
			ctx.Log.Message(line, "white")
		}
	}
	if !boss.LowHPDialogueFired && fighter.MaxHP > 0 && float64(fighter.HP)/float64(fighter.MaxHP) <= 0.25 {
		boss.LowHPDialogueFired = true
		if line, ok := boss.PickDialogue("low_hp", ctx.RNG.Intn); ok {
			ctx.Log.Message(line, "white")
		}
	}

	inFOV := ctx.FOV != nil && ctx.FOV.Visible(ctx.Actor.X, ctx.Actor.Y)
	if !state.InCombat && !inFOV {
		return
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
			bossAttack(ctx, target, state, boss)
		}
		return
	}

	d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if d > WeaponReach(ctx.Actor) {
		nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		TryMove(ctx, nx, ny)
		return
	}
	bossAttack(ctx, target, state, boss)
}

func bossAttack(ctx Context, target *entity.Entity, state *bossState, boss *components.Boss) {
	state.InCombat = true
	state.Telemetry.AttacksAttempted++
	if tf := target.Components.Fighter; tf != nil {
		tf.AwareOfPlayer = true
	}
	opts := combat.AttackOptions{
		DamageType:       naturalDamageType(ctx.Actor),
		ShieldWallAllies: ShieldWallBonus(ctx.Entities, target),
		ExtraAttackBonus: CommandTheDeadBonus(ctx.Entities, ctx.Actor, config.DefaultLichPassives),
	}
	if boss.IsEnraged {
		mult := boss.DamageMultiplier
		if mult <= 0 {
			mult = 1.5
		}
		opts.EnrageMultiplier = mult
	}
	res := combat.ResolveAttack(ctx.RNG, ctx.Log, ctx.Actor, target, opts)
	if res.Hit && !res.TargetDied {
		if line, ok := boss.PickDialogue("hit", ctx.RNG.Intn); ok {
			ctx.Log.Message(line, "white")
		}
	}
	finalizeIfDead(ctx, target, res)
	if res.TargetDied {
		return
	}
	attacker := ctx.Actor.Components.SpeedBonus
	defender := target.Components.SpeedBonus
	if attacker != nil {
		granted, bonusRes := combat.ResolveBonusAttack(ctx.RNG, ctx.Log, ctx.Actor, target, attacker, defender, opts)
		if granted {
			finalizeIfDead(ctx, target, bonusRes)
		}
	}
}
