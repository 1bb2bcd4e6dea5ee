package ai

import (
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/status"
)

// equipSlotTags maps a content factory's free-form item tag to the
// equipment slot it fills, so pickup can tell an equippable item from a
// plain inventory one without a dedicated item-definition component.
var equipSlotTags = map[string]components.EquipmentSlot{
	"slot_main_hand": components.SlotMainHand,
	"slot_off_hand":  components.SlotOffHand,
	"slot_head":      components.SlotHead,
	"slot_chest":     components.SlotChest,
	"slot_feet":      components.SlotFeet,
}

// equipSlotOf reports the equipment slot item would occupy, if any.
func equipSlotOf(item *entity.Entity) (components.EquipmentSlot, bool) {
	for tag, slot := range equipSlotTags {
		if item.HasTag(tag) {
			return slot, true
		}
	}
	return "", false
}

// TryItemSeeking implements the item-seeking companion module (spec
// §4.2.9): attached on top of another variant's turn, not dispatched on
// its own Kind. Disabled once the actor is in_combat or taunted. Returns
// true if it consumed the actor's turn (moved toward or picked up an
// item), false if the caller should fall through to its own turn logic.
func TryItemSeeking(ctx Context, inCombat bool) bool {
	if inCombat {
		return false
	}
	if ctx.Actor.Components.Status != nil && ctx.Actor.Components.Status.HasEffect(status.EffectTaunted) {
		return false
	}
	inv := ctx.Actor.Components.Inventory
	if inv == nil || !inv.HasSpace() {
		return false
	}

	target := ResolveTarget(ctx)
	distToPlayer := -1.0
	if target != nil {
		distToPlayer = EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	}

	item, ok := nearestSeekableItem(ctx, config.DefaultItemSeeking.SeekDistance, distToPlayer)
	if !ok {
		return false
	}

	if item.X == ctx.Actor.X && item.Y == ctx.Actor.Y {
		if slot, ok := equipSlotOf(item); ok {
			equip := ctx.Actor.Components.Equipment
			if equip == nil {
				equip = &components.Equipment{}
				ctx.Actor.Components.Equipment = equip
			}
			if _, occupied := equip.Equipped(slot); !occupied {
				equip.Equip(slot, item.ID)
				ctx.Entities.Remove(item.ID)
				ctx.Log.Message(ctx.Actor.Name+" equips "+item.Name+".", "white")
				return true
			}
		}
		if inv.Add(item.ID) {
			ctx.Entities.Remove(item.ID)
			ctx.Log.Message(ctx.Actor.Name+" picks up "+item.Name+".", "white")
		}
		return true
	}

	nx, ny := StepToward(ctx.Actor.X, ctx.Actor.Y, item.X, item.Y)
	TryMove(ctx, nx, ny)
	return true
}

// nearestSeekableItem finds the nearest item entity within seekDistance
// whose distance to the actor is strictly less than the actor's distance
// to the player (spec §4.2.9). A negative distToPlayer (no visible player)
// disables the strict-less-than gate, since there is nothing to compare
// against.
func nearestSeekableItem(ctx Context, seekDistance float64, distToPlayer float64) (*entity.Entity, bool) {
	var best *entity.Entity
	bestDist := seekDistance
	for _, e := range ctx.Entities.All() {
		if e.RenderOrder != entity.RenderOrderItem {
			continue
		}
		d := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y)
		if d > bestDist {
			continue
		}
		if distToPlayer >= 0 && d >= distToPlayer {
			continue
		}
		best = e
		bestDist = d
	}
	return best, best != nil
}
