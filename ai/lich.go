package ai

import (
	"math"

	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/status"
)

// lichState tracks the necromancer cooldown plus the two-turn Soul Bolt
// telegraph (spec §4.2.7 "Lich (arch-necromancer)").
type lichState struct {
	necromancerState
	Charging bool
}

func lichActorState(ctx Context) *lichState {
	slot := ctx.Actor.Components.AI
	if slot.State == nil {
		slot.State = &lichState{}
	}
	return slot.State.(*lichState)
}

// RegisterLichDeathSiphon wires the Lich passive death-siphon side effect
// into combat's death-finalization hook (spec §4.2.7 "Death Siphon: when an
// allied undead dies within radius, heal the lich by a small amount"). Call
// once at startup.
func RegisterLichDeathSiphon(radius float64, heal int) {
	combat.RegisterDeathSideEffect(func(r *rng.Source, log *messages.Log, store *entity.Store, dead *entity.Entity) {
		if dead.Faction != components.FactionUndead {
			return
		}
		for _, e := range store.All() {
			if e.Components.AI == nil || e.Components.AI.Kind != string(KindLich) {
				continue
			}
			if EuclideanDistance(dead.X, dead.Y, e.X, e.Y) > radius {
				continue
			}
			if lf := e.Components.Fighter; lf != nil {
				lf.HP += heal
				if lf.HP > lf.MaxHP {
					lf.HP = lf.MaxHP
				}
				log.Message(e.Name+" siphons death energy, healing.", "white")
			}
		}
	})
}

// TakeTurnLich implements spec §4.2.7's Lich variant: a two-turn Soul Bolt
// telegraph plus the necromancer base's safe-approach/retreat/melee behavior
// when not channeling. A fresh corpse in range only starts the shared
// cooldown; the lich raises nothing from it.
func TakeTurnLich(ctx Context) {
	target := ResolveTarget(ctx)
	state := lichActorState(ctx)

	hasLOS := target != nil && ctx.FOV != nil && ctx.FOV.Visible(target.X, target.Y)
	inRange := target != nil && EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y) <= config.DefaultLich.ActionRange

	if state.Charging {
		if hasLOS && inRange {
			fireSoulBolt(ctx, target, state)
		} else {
			state.Charging = false
			if ctx.Actor.Components.Status != nil {
				ctx.Actor.Components.Status.(*status.Manager).Remove(ctx.Actor.ID.Hex(), status.EffectChargingSoulBolt, ctx.Log)
			}
			ctx.Log.Message(ctx.Actor.Name+"'s channel is disrupted.", "white")
		}
		return
	}

	if state.Cooldown == 0 && hasLOS && inRange {
		state.Charging = true
		if mgr, ok := ctx.Actor.Components.Status.(*status.Manager); ok {
			mgr.Apply(ctx.Actor.ID.Hex(), status.NewChargingSoulBolt(2), status.ReplaceInstance, ctx.Log)
		}
		ctx.Log.Message(ctx.Actor.Name+" begins channelling a soul bolt.", "white")
		return
	}

	necromancerPrelude(ctx, config.DefaultLich, &state.necromancerState, target, func() (interface{}, bool) {
		return nearestFreshCorpse(ctx, config.DefaultLich.ActionRange)
	}, func(at interface{}) int {
		return config.DefaultLich.ActionCooldownTurns
	})
}

func fireSoulBolt(ctx Context, target *entity.Entity, state *lichState) {
	state.Charging = false
	if ctx.Actor.Components.Status != nil {
		if mgr, ok := ctx.Actor.Components.Status.(*status.Manager); ok {
			mgr.Remove(ctx.Actor.ID.Hex(), status.EffectChargingSoulBolt, ctx.Log)
		}
	}
	state.Cooldown = config.DefaultLich.ActionCooldownTurns

	tf := target.Components.Fighter
	if tf == nil {
		return
	}
	dmg := int(math.Ceil(0.35 * float64(tf.MaxHP)))

	if target.Components.Status != nil && target.Components.Status.HasEffect(status.EffectSoulWard) {
		reduced := int(float64(dmg) * (1 - status.SoulWardReduction))
		prevented := dmg - reduced
		dmg = reduced
		if mgr, ok := target.Components.Status.(*status.Manager); ok {
			mgr.Apply(target.ID.Hex(), status.NewSoulBurn(3, prevented/3, func(owner string, amount int, log *status.Log) {
				applySoulBurnDamage(ctx, target, amount)
			}), status.ReplaceInstance, ctx.Log)
		}
	}

	tf.HP -= dmg
	if tf.HP < 0 {
		tf.HP = 0
	}
	ctx.Log.Damage(target.ID.Hex(), dmg, "necrotic")
	ctx.Log.Message(ctx.Actor.Name+"'s soul bolt strikes "+target.Name+".", "red")
	if tf.HP <= 0 {
		finalizeIfDead(ctx, target, combat.Result{TargetDied: true})
	}
}

func applySoulBurnDamage(ctx Context, target *entity.Entity, amount int) {
	f := target.Components.Fighter
	if f == nil {
		return
	}
	f.HP -= amount
	if f.HP < 0 {
		f.HP = 0
	}
	ctx.Log.Damage(target.ID.Hex(), amount, "necrotic")
	if f.HP <= 0 {
		finalizeIfDead(ctx, target, combat.Result{TargetDied: true})
	}
}

// CommandTheDeadBonus reports the to-hit bonus a nearby lich grants an
// allied undead attacker (spec §4.2.7 passive "Command the Dead").
func CommandTheDeadBonus(store *entity.Store, attacker *entity.Entity, cfg config.LichPassives) int {
	if attacker.Faction != components.FactionUndead {
		return 0
	}
	for _, e := range store.All() {
		if e.Components.AI == nil || e.Components.AI.Kind != string(KindLich) {
			continue
		}
		if EuclideanDistance(attacker.X, attacker.Y, e.X, e.Y) <= cfg.CommandRadius {
			return cfg.CommandToHit
		}
	}
	return 0
}
