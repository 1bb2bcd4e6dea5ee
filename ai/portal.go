package ai

import "github.com/hollowmarch/engine/entity"

// PortalUsableForKind publishes the per-class portal policy (spec §4.3):
// bosses and confused monsters never use portals; every other class may,
// provided its AISlot.PortalUsable flag is also set.
func PortalUsableForKind(kind Kind) bool {
	switch kind {
	case KindBoss, KindConfused:
		return false
	default:
		return true
	}
}

// CanUsePortal reports whether actor may step through a deployed portal
// (spec §4.3): the player always may; a monster may iff its class publishes
// portal_usable and it isn't carrying the portal's other half in its
// inventory.
func CanUsePortal(actor *entity.Entity, portal *entity.Entity) bool {
	if actor.IsPlayer() {
		return true
	}
	slot := actor.Components.AI
	if slot == nil {
		return false
	}
	if !slot.PortalUsable || !PortalUsableForKind(Kind(slot.Kind)) {
		return false
	}
	if inv := actor.Components.Inventory; inv != nil && portal.Components.Portal != nil {
		linked := portal.Components.Portal.LinkedTo
		for _, id := range inv.Items {
			if id == linked {
				return false
			}
		}
	}
	return true
}

// StepOntoPortal implements the portal manager's teleport step: when actor
// steps onto a deployed portal it may use, move it to the linked portal's
// position. Returns whether a teleport happened.
func StepOntoPortal(ctx Context, actor *entity.Entity, portal *entity.Entity) bool {
	if portal.Components.Portal == nil || !portal.Components.Portal.HasLink {
		return false
	}
	if !CanUsePortal(actor, portal) {
		return false
	}
	linked, ok := ctx.Entities.Get(portal.Components.Portal.LinkedTo)
	if !ok {
		return false
	}
	ctx.Entities.Teleport(actor, linked.X, linked.Y)
	ctx.Log.Teleported(true)
	ctx.Log.Message(actor.Name+" steps through the portal.", "white")
	return true
}
