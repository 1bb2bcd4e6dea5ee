package combat

import (
	"strconv"

	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
)

// DeathSideEffect lets a caller register a hook run during step 5 of death
// finalization (spec §4.4 "Trigger death-side effects: lich Death Siphon to
// nearby lich, skeleton death spawns a bone pile entity, etc.") without
// combat needing to know about lich/skeleton specifics.
type DeathSideEffect func(r *rng.Source, log *messages.Log, store *entity.Store, dead *entity.Entity)

var sideEffects []DeathSideEffect

// RegisterDeathSideEffect adds a hook invoked for every death finalization.
// Called once at startup by packages (ai) that need to react to any death,
// e.g. lich Death Siphon, skeleton bone-pile spawn.
func RegisterDeathSideEffect(fn DeathSideEffect) {
	sideEffects = append(sideEffects, fn)
}

// FinalizeDeath runs spec §4.4's six-step death finalization on an entity
// whose fighter hp has reached 0.
func FinalizeDeath(r *rng.Source, log *messages.Log, store *entity.Store, dead *entity.Entity, turn int) {
	f := dead.Components.Fighter
	if f == nil {
		return
	}

	// Step 1: death message (+ boss dialogue), enrage/defeated flags.
	if b := dead.Components.Boss; b != nil {
		if line, ok := b.PickDialogue("death", r.Intn); ok {
			log.Message(line, "white")
		}
		b.Defeated = true
	}
	log.Message(dead.Name+" dies.", "white")
	log.Dead(dead.ID.Hex())

	// Step 2: drop equipment and inventory as items on the tile. The
	// engine has no item-entity factory of its own (items are static
	// content, spec §1 "out of scope"), so each dropped item id is logged as
	// a "dropped_item" record with its tile for the caller to materialize.
	var dropped []string
	if eq := dead.Components.Equipment; eq != nil {
		for _, id := range eq.All() {
			dropped = append(dropped, id.Hex())
		}
	}
	if inv := dead.Components.Inventory; inv != nil {
		for _, id := range inv.Items {
			dropped = append(dropped, id.Hex())
		}
	}
	for _, id := range dropped {
		log.Append(messages.Record{Meta: map[string]interface{}{"dropped_item": id, "at_x": dead.X, "at_y": dead.Y}})
	}

	// Step 3: transform in place into a corpse entity, same id.
	dead.Glyph = '%'
	dead.Color = "dark_red"
	dead.Blocks = false
	dead.RenderOrder = entity.RenderOrderCorpse
	corpseID := corpseToken(dead.X, dead.Y, turn)
	dead.Components.Corpse = &components.Corpse{
		OriginalMonsterID: dead.ID.Hex(),
		State:             components.CorpseFresh,
		MaxRaises:         1,
		CorpseID:          corpseID,
		DeathTurn:         turn,
	}
	dead.Components.AI = nil
	dead.Components.Fighter = nil

	// Step 4: award XP to the killer — left to the caller (the attacker is
	// not known inside FinalizeDeath's signature by design: speed-bonus
	// bonus attacks and DOT deaths both call this with no attacker in
	// scope); see AwardXP.

	// Step 5: death side effects (lich Death Siphon, bone pile, etc).
	for _, fn := range sideEffects {
		fn(r, log, store, dead)
	}

	// Step 6: status effects can no longer tick; the manager goes with the
	// fighter component, already cleared above (dead.Components.Status is
	// left attached to the Set value but Fighter==nil means HP() reports 0,
	// so scheduler.Phase.runActor skips turnEnd for this actor from here on).
}

// AwardXP grants xp to killer's fighter when target had xp tracked (spec
// §4.4 step 4). Call after FinalizeDeath once the caller knows the killer.
func AwardXP(killer *entity.Entity, xpAwarded int) {
	if killer == nil {
		return
	}
	if kf := killer.Components.Fighter; kf != nil {
		kf.XP += xpAwarded
	}
}

func corpseToken(x, y, turn int) string {
	return "corpse_" + strconv.Itoa(x) + "_" + strconv.Itoa(y) + "_" + strconv.Itoa(turn)
}
