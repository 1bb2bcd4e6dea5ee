// Package combat implements the two-axis combat model of spec.md §4.4:
// hit/dodge (accuracy vs evasion) independent of the tempo/speed-bonus
// ratchet, plus surprise attacks, shield wall, and death finalization.
//
// Grounded in ships/stack.go's CombatCounters (hit/miss/crit accounting
// fields sitting beside the resolve function) and
// ships/formation_combat.go's ExecuteFormationBattleRound (a free function
// taking attacker, defender, and a rng, returning a result struct — combat
// here keeps that shape rather than wrapping attacker/defender in
// interfaces).
package combat

import (
	"strconv"

	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
)

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HitChance computes spec §4.4's hit/dodge formula:
// clamp(BASE_HIT + (accuracy-evasion)*STEP, MIN_HIT, MAX_HIT).
func HitChance(accuracy, evasion int, cfg config.Combat) float64 {
	raw := cfg.BaseHit + float64(accuracy-evasion)*cfg.Step
	return clamp(raw, cfg.MinHit, cfg.MaxHit)
}

// AttackOptions carries the per-attack context the resolver needs beyond
// the two fighters themselves: flags the caller (AI/scheduler) computes
// from world state this package has no access to (adjacency, nearby
// allies, nearby lich) so combat stays free of any dungeon/ai dependency.
type AttackOptions struct {
	// IsSurprise marks a player attack against an unaware monster (spec
	// §4.4 "Surprise attacks"). Only ever true for the primary attack.
	IsSurprise bool
	// IsBonusAttack marks an attack granted by the speed-bonus ratchet; it
	// can never be a surprise even if IsSurprise is mistakenly set true.
	IsBonusAttack bool
	// ShieldWallAllies is the defender's adjacent same-faction skeleton
	// ally count, applied to the defender's AC for this roll (spec §4.4
	// "Shield wall (skeleton)").
	ShieldWallAllies int
	// ExtraAttackBonus folds in situational bonuses to the d20 roll, e.g.
	// the allied-undead +1 from a nearby lich (spec §4.4 "d20 attack roll").
	ExtraAttackBonus int
	// DamageType is the damage channel this attack deals, used to look up
	// resistances and the attacker's outgoing modifier.
	DamageType components.DamageType
	// EnrageMultiplier applies to outgoing damage when the attacker is an
	// enraged boss (spec §4.4 "Boss enrage multiplier applies to outgoing
	// damage"); zero (the default) leaves damage unchanged.
	EnrageMultiplier float64
}

// Result is what one attack resolution reports back to the caller, beyond
// what it already wrote to the log.
type Result struct {
	Hit      bool
	Crit     bool
	Fumble   bool
	Damage   int
	TargetDied bool
}

// ResolveAttack runs one full attack: hit/dodge check, d20+AC roll, and
// damage computation. It does not finalize death — Result.TargetDied tells
// the caller to run FinalizeDeath. Nor does it run the speed-bonus ratchet
// step — ResolveBonusAttack does, calling ResolveAttack again with
// IsBonusAttack set once the ratchet grants one (spec §4.4 "Speed-bonus
// (tempo) axis").
func ResolveAttack(r *rng.Source, log *messages.Log, attacker, defender *entity.Entity, opts AttackOptions) Result {
	af := attacker.Components.Fighter
	df := defender.Components.Fighter
	if af == nil || df == nil {
		return Result{}
	}

	if attacker.Components.Status != nil {
		attacker.Components.Status.BreakOnAttack(attacker.ID.Hex(), log)
	}

	var res Result
	if opts.IsSurprise {
		res.Hit = true
	} else {
		chance := HitChance(af.Accuracy, df.Evasion, config.DefaultCombat)
		res.Hit = r.Chance(chance)
	}
	if !res.Hit {
		log.Message(attacker.Name+" misses "+defender.Name+".", "white")
		return res
	}

	ac := df.ArmorClass + (opts.ShieldWallAllies * config.DefaultCombat.ShieldWallPerAdjacent / config.ShieldWallPerAdjacentScale)
	roll := r.D20()
	total := roll + opts.ExtraAttackBonus

	fumble := roll == 1 && !opts.IsSurprise
	natural20 := roll == 20
	crit := natural20 || opts.IsSurprise

	hitsAC := total >= ac || natural20 || opts.IsSurprise
	if fumble {
		log.Message(attacker.Name+" fumbles the attack.", "white")
		res.Fumble = true
		return res
	}
	if !hitsAC {
		log.Message(attacker.Name+"'s attack glances off "+defender.Name+".", "white")
		return res
	}

	res.Crit = crit
	dmg := computeDamage(r, af, df, crit, opts)
	res.Damage = dmg

	applyDamage(df, dmg)
	log.Damage(defender.ID.Hex(), dmg, string(opts.DamageType))
	log.Message(attackMessage(attacker.Name, defender.Name, dmg, crit), "red")

	if opts.IsSurprise {
		df.AwareOfPlayer = true
	}

	if df.HP <= 0 {
		res.TargetDied = true
	}
	return res
}

func attackMessage(attacker, defender string, dmg int, crit bool) string {
	if crit {
		return attacker + " critically hits " + defender + " for " + strconv.Itoa(dmg) + " damage!"
	}
	return attacker + " hits " + defender + " for " + strconv.Itoa(dmg) + " damage."
}

func computeDamage(r *rng.Source, af, df *components.Fighter, crit bool, opts AttackOptions) int {
	base := r.Dice(af.DiceCount, af.DiceSides) + af.Power - df.Defense
	if base < 1 {
		base = 1
	}
	total := float64(base)
	if crit {
		total *= float64(config.DefaultCombat.CritMultiplier)
	}
	total *= df.ResistanceFor(opts.DamageType)
	total *= af.OutgoingModifierFor(opts.DamageType)
	if opts.EnrageMultiplier > 0 {
		total *= opts.EnrageMultiplier
	}
	out := int(total)
	if out < 1 {
		out = 1
	}
	return out
}

func applyDamage(f *components.Fighter, amount int) {
	f.HP -= amount
	if f.HP < 0 {
		f.HP = 0
	}
}

// ResolveBonusAttack runs the speed-bonus ratchet check and, if a bonus
// attack is granted, resolves it against the same target (spec §4.4
// "Speed-bonus (tempo) axis"). Returns (granted, result); result is zero if
// not granted. The bonus attack never fires if the target already has
// hp <= 0 (spec resolves the §9 open question this way: checked before the
// roll, no message emitted, but the ratchet step still counts as consumed).
func ResolveBonusAttack(r *rng.Source, log *messages.Log, attacker, defender *entity.Entity, attackerTracker, defenderTracker *components.SpeedBonusTracker, baseOpts AttackOptions) (granted bool, res Result) {
	if attackerTracker == nil {
		return false, Result{}
	}
	canBuild := attackerTracker.SpeedBonusRatio > defenderTrackerRatio(defenderTracker)
	if !canBuild {
		return false, Result{}
	}
	granted = attackerTracker.Advance(r.Float64())
	if !granted {
		return false, Result{}
	}
	if defender.Components.Fighter == nil || defender.Components.Fighter.HP <= 0 {
		return true, Result{}
	}
	opts := baseOpts
	opts.IsSurprise = false
	opts.IsBonusAttack = true
	res = ResolveAttack(r, log, attacker, defender, opts)
	return true, res
}

func defenderTrackerRatio(t *components.SpeedBonusTracker) float64 {
	if t == nil {
		return 0
	}
	return t.SpeedBonusRatio
}

