package ai

import (
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
)

// ItemUseFunction classifies a usable item's use_function (spec §4.7): an
// offensive scroll/potion damages a hostile target, a beneficial one heals
// the user.
type ItemUseFunction int

const (
	UseOffensive ItemUseFunction = iota
	UseBeneficial
)

var itemUseLookup ItemUseLookup

// SetItemUseLookup installs the content registry's item-use-function
// lookup, consulted by every variant's TryItemUsage call.
func SetItemUseLookup(l ItemUseLookup) { itemUseLookup = l }

// ItemUseLookup resolves an inventory item id to its use_function and
// magnitude, reporting ok=false for items with no use_function (e.g. bare
// equipment). Static item definitions are out of scope for this engine
// (spec §1); callers inject their own content registry here.
type ItemUseLookup func(item entity.ID) (fn ItemUseFunction, amount int, damageType components.DamageType, ok bool)

// TryItemUsage implements the usage half of spec §4.7: per turn, with
// config.ItemUsage.UseProbabilityPerTurn, a monster flagged UsesItems scans
// its inventory for a usable item appropriate to the situation (offensive
// when a hostile target is within OffensiveRange, beneficial otherwise),
// consumes it, and rolls FailureRate for one of three failure modes
// (fizzle, wrong target, equipment damage) selected uniformly. Returns true
// if an item was used (the actor's turn is spent).
func TryItemUsage(ctx Context, target *entity.Entity, lookup ItemUseLookup) bool {
	actor := ctx.Actor
	f := actor.Components.Fighter
	if f == nil || !f.UsesItems {
		return false
	}
	inv := actor.Components.Inventory
	if inv == nil || len(inv.Items) == 0 || lookup == nil {
		return false
	}
	cfg := config.DefaultItemUsage
	if !ctx.RNG.Chance(cfg.UseProbabilityPerTurn) {
		return false
	}

	wantOffensive := target != nil && EuclideanDistance(actor.X, actor.Y, target.X, target.Y) <= cfg.OffensiveRange

	itemID, fn, amount, damageType, found := pickUsableItem(inv, lookup, wantOffensive)
	if !found {
		return false
	}
	inv.Remove(itemID)
	if t := telemetryOf(actor); t != nil {
		t.ItemsUsed++
	}

	if ctx.RNG.Chance(cfg.FailureRate) {
		applyUsageFailure(ctx, actor, target, fn)
		return true
	}

	switch fn {
	case UseOffensive:
		if target != nil {
			applyItemDamage(ctx, target, amount, damageType)
		}
	case UseBeneficial:
		healFighter(f, amount)
	}
	return true
}

// pickUsableItem scans the inventory for the first item whose use_function
// matches the situation; falls back to any usable item if none matches.
func pickUsableItem(inv *components.Inventory, lookup ItemUseLookup, wantOffensive bool) (id entity.ID, fn ItemUseFunction, amount int, damageType components.DamageType, ok bool) {
	var fallbackID entity.ID
	var fallbackFn ItemUseFunction
	var fallbackAmount int
	var fallbackType components.DamageType
	haveFallback := false

	for _, itemID := range inv.Items {
		candFn, candAmount, candType, candOK := lookup(itemID)
		if !candOK {
			continue
		}
		if (wantOffensive && candFn == UseOffensive) || (!wantOffensive && candFn == UseBeneficial) {
			return itemID, candFn, candAmount, candType, true
		}
		if !haveFallback {
			fallbackID, fallbackFn, fallbackAmount, fallbackType = itemID, candFn, candAmount, candType
			haveFallback = true
		}
	}
	if haveFallback {
		return fallbackID, fallbackFn, fallbackAmount, fallbackType, true
	}
	return entity.ID{}, 0, 0, "", false
}

// applyUsageFailure runs one of the three failure modes (spec §4.7),
// selected uniformly.
func applyUsageFailure(ctx Context, actor, target *entity.Entity, fn ItemUseFunction) {
	switch ctx.RNG.Intn(3) {
	case 0:
		// Fizzle: no effect, item already consumed by the caller.
		ctx.Log.Message(actor.Name+"'s item fizzles.", "white")
	case 1:
		// Wrong target: beneficial retargets to the player, harmful to the user.
		if fn == UseBeneficial {
			if target != nil && target.Components.Fighter != nil {
				healFighter(target.Components.Fighter, actor.Components.Fighter.MaxHP)
			}
		} else if actor.Components.Fighter != nil {
			applyItemDamage(ctx, actor, actor.Components.Fighter.MaxHP/4, components.DamagePhysical)
		}
		ctx.Log.Message(actor.Name+"'s item hits the wrong target.", "white")
	default:
		// Equipment damage: reduce one equipped item's damage or defense stat.
		degradeEquippedStat(ctx, actor)
	}
}

// applyItemDamage mirrors ExplodeCorpse's direct-HP-mutation style for a
// single-target item effect, routing death through the shared finalization
// pipeline.
func applyItemDamage(ctx Context, target *entity.Entity, amount int, damageType components.DamageType) {
	f := target.Components.Fighter
	if f == nil {
		return
	}
	applied := int(float64(amount) * f.ResistanceFor(damageType))
	if applied < 1 {
		applied = 1
	}
	f.HP -= applied
	if f.HP < 0 {
		f.HP = 0
	}
	ctx.Log.Damage(target.ID.Hex(), applied, string(damageType))
	if f.HP <= 0 {
		combat.FinalizeDeath(ctx.RNG, ctx.Log, ctx.Entities, target, ctx.Turn)
	}
}

func healFighter(f *components.Fighter, amount int) {
	f.HP += amount
	if f.HP > f.MaxHP {
		f.HP = f.MaxHP
	}
}

// degradeEquippedStat reduces an equipped item's effective damage or
// defense by lowering the wearer's own Fighter stat that models it (this
// engine collapses per-item stats onto the wearer's Fighter, spec §3.2), a
// no-op if nothing is equipped.
func degradeEquippedStat(ctx Context, actor *entity.Entity) {
	eq := actor.Components.Equipment
	if eq == nil || len(eq.All()) == 0 {
		return
	}
	f := actor.Components.Fighter
	if f == nil {
		return
	}
	if ctx.RNG.Chance(0.5) {
		if f.DiceSides > 1 {
			f.DiceSides--
		}
	} else if f.ArmorClass > 0 {
		f.ArmorClass--
	}
	ctx.Log.Message(actor.Name+"'s equipment is damaged.", "white")
}
