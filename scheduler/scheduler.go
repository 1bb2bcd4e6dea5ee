// Package scheduler implements the enemy-turn phase driver of spec.md
// §4.1: a fixed five-step per-actor sequence, run in a stable id order,
// with the ordering/cancellation guarantees that make a turn
// deterministic given one seeded rng.Source.
//
// Grounded in the turn-loop vocabulary of other_examples/davidmovas-Depthborn
// (BeginTurn/ProcessTurn/EndTurn) but deliberately a concrete struct with a
// fixed step sequence, not a pluggable phase graph: spec.md §5's ordering
// guarantees are exact and never vary by content, so there is nothing for a
// phase interface to abstract over.
package scheduler

import (
	"github.com/hollowmarch/engine/ai"
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/internal/obs"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/status"
)

// Phase bundles the collaborators the enemy-turn phase needs across every
// actor's slot (spec §4.1: "ai.take_turn(target, fov, map, entities)").
type Phase struct {
	Entities *entity.Store
	FOV      ai.FOV
	Map      *ai.TileMap
	RNG      *rng.Source
	Turn     int
}

// BeginEnemyPhase runs one enemy-turn phase: every surviving, AI-bearing,
// non-player actor acts at most once, in stable order by id (spec §4.1).
// Log accumulates every message/damage/death record produced during the
// phase.
func (p *Phase) BeginEnemyPhase(log *messages.Log) {
	actors := p.enemyActors()
	for _, actor := range actors {
		if !actor.IsAlive() || actor.HP() <= 0 {
			continue // killed earlier in this same phase (spec §4.1 cancellation)
		}
		p.runActor(actor, log)
	}
}

// enemyActors snapshots the iteration order up front: spec §4.1 requires
// that actors spawned during the phase (e.g. a raised minion) do not act
// until the next phase, so the id list is fixed before the loop starts.
func (p *Phase) enemyActors() []*entity.Entity {
	var out []*entity.Entity
	for _, e := range p.Entities.All() {
		if e.IsPlayer() {
			continue
		}
		if e.RenderOrder == entity.RenderOrderItem {
			continue
		}
		if e.Components.AI == nil {
			continue // corpse without AI, door, portal, hazard tile
		}
		if e.HP() <= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (p *Phase) runActor(actor *entity.Entity, log *messages.Log) {
	defer obs.RecoverInvariant("scheduler.runActor")

	mgr, _ := actor.Components.Status.(*status.Manager)

	// Step 1: on_turn_start; a reported skip_turn ends this actor's slot.
	if mgr != nil {
		if mgr.TurnStart(actor.ID.Hex(), log) {
			p.turnEnd(actor, mgr, log)
			return
		}
	}

	// Step 2: paralysis skips straight to step 5; fear flees instead of AI.
	if actor.Components.Status != nil && actor.Components.Status.HasEffect(status.EffectParalysis) {
		log.Message(actor.Name+" is paralyzed and cannot act.", "white")
		p.turnEnd(actor, mgr, log)
		return
	}
	if actor.Components.Status != nil && actor.Components.Status.HasEffect(status.EffectFear) {
		p.flee(actor, log)
		p.turnEnd(actor, mgr, log)
		return
	}

	// Step 3+4: compute target (default: player, spec §4.1), dispatch to
	// the actor's AI variant. The prelude's taunt/invisibility
	// substitution (§4.2 steps 2-3) reads ctx.Target as its base case, so
	// the default must be set before Dispatch runs.
	ctx := ai.Context{
		Actor:    actor,
		Target:   p.defaultTarget(),
		FOV:      p.FOV,
		Map:      p.Map,
		Entities: p.Entities,
		RNG:      p.RNG,
		Log:      log,
		Turn:     p.Turn,
	}
	ai.Dispatch(ctx)

	// Step 5: on_turn_end, unless the actor died resolving its own turn.
	if !actor.IsAlive() || actor.HP() <= 0 {
		return
	}
	p.turnEnd(actor, mgr, log)
}

// flee implements the fear behavior (spec §4.1 step 2: "triggers the flee
// behavior instead of AI"): one step directly away from the actor's
// resolved target, subject to the same walkability/blocker checks as any
// other movement.
func (p *Phase) flee(actor *entity.Entity, log *messages.Log) {
	ctx := ai.Context{Actor: actor, Target: p.defaultTarget(), FOV: p.FOV, Map: p.Map, Entities: p.Entities, RNG: p.RNG, Log: log, Turn: p.Turn}
	target := ai.ResolveTarget(ctx)
	if target == nil {
		return
	}
	nx, ny := ai.StepAway(actor.X, actor.Y, target.X, target.Y)
	if ai.TryMove(ctx, nx, ny) {
		log.Message(actor.Name+" flees in terror.", "white")
	}
}

// defaultTarget returns the player entity, the default target every AI
// variant's taunt/invisibility substitution chain falls back to (spec
// §4.1: "Compute the actor's current target (default: player...)").
func (p *Phase) defaultTarget() *entity.Entity {
	for _, e := range p.Entities.All() {
		if e.IsPlayer() {
			return e
		}
	}
	return nil
}

// turnEnd runs step 5 (on_turn_end: duration decrement, DOT, expiration),
// finalizing death through the combat death pipeline if a DOT effect
// killed the actor (spec §4.1: "Death from DOT here must finalize through
// the same death pipeline as combat death").
func (p *Phase) turnEnd(actor *entity.Entity, mgr *status.Manager, log *messages.Log) {
	if mgr == nil {
		return
	}
	mgr.TurnEnd(actor.ID.Hex(), log)
	if actor.HP() <= 0 && actor.IsAlive() {
		combat.FinalizeDeath(p.RNG, log, p.Entities, actor, p.Turn)
	}
}
