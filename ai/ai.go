// Package ai implements the AI variants of spec.md §4.2: a family of
// behavior variants sharing a take_turn(target, fov, map, entities)
// contract, differing in targeting, momentum, and resource economies.
//
// Grounded in ships/bio_machine.go's fluent builder (one struct exposing a
// single Tick-like entry point that owns all of its mutable state) and
// original_source/components/ai/*.py (one module per variant, all sharing
// the prelude helpers extracted into free functions, spec §9 design notes:
// "shared behavior ... extracted into free helpers that take explicit
// parameters"). No AI-variant interface exists (spec §9): Dispatch switches
// on the actor's AISlot.Kind tag to route to each variant's TakeTurn.
package ai

import (
	"math"

	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/faction"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/status"
)

// FOV answers visibility queries for the current actor's field of view.
// Implemented by the renderer-adjacent layer; ai only consumes it.
type FOV interface {
	Visible(x, y int) bool
}

// TileMap answers walkability/blocking queries, independent of any
// particular dungeon representation (ai has no dependency on package
// dungeon; both sit above entity/components).
type TileMap struct {
	Width, Height int
	Blocked       [][]bool
}

// Walkable reports whether (x, y) is in bounds and not a wall tile.
func (m *TileMap) Walkable(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return !m.Blocked[y][x]
}

// Context bundles every collaborator a variant's TakeTurn needs (spec §4.2:
// "take_turn(target, fov, map, entities)"), plus the rng/log/config seams
// every operation in this engine threads through.
type Context struct {
	Actor    *entity.Entity
	Target   *entity.Entity
	FOV      FOV
	Map      *TileMap
	Entities *entity.Store
	RNG      *rng.Source
	Log      *messages.Log
	Turn     int
}

// Kind names an AI variant for AISlot.Kind / the Dispatch switch.
type Kind string

const (
	KindBasicMonster  Kind = "basic_monster"
	KindBoss          Kind = "boss"
	KindMindlessZombie Kind = "mindless_zombie"
	KindConfused      Kind = "confused"
	KindSlime         Kind = "slime"
	KindSkeleton      Kind = "skeleton"
	KindPlagueNecro   Kind = "plague_necromancer"
	KindBoneNecro     Kind = "bone_necromancer"
	KindExploderNecro Kind = "exploder_necromancer"
	KindLich          Kind = "lich"
	KindSkirmisher    Kind = "skirmisher"
)

// Dispatch routes to the right variant's TakeTurn based on the actor's
// AISlot.Kind (spec §9: tagged-variant dispatch, no interface).
func Dispatch(ctx Context) {
	slot := ctx.Actor.Components.AI
	if slot == nil {
		return
	}
	switch Kind(slot.Kind) {
	case KindBasicMonster:
		TakeTurnBasicMonster(ctx)
	case KindBoss:
		TakeTurnBoss(ctx)
	case KindMindlessZombie:
		TakeTurnMindlessZombie(ctx)
	case KindConfused:
		TakeTurnConfused(ctx)
	case KindSlime:
		TakeTurnSlime(ctx)
	case KindSkeleton:
		TakeTurnSkeleton(ctx)
	case KindPlagueNecro:
		TakeTurnPlagueNecromancer(ctx)
	case KindBoneNecro:
		TakeTurnBoneNecromancer(ctx)
	case KindExploderNecro:
		TakeTurnExploderNecromancer(ctx)
	case KindLich:
		TakeTurnLich(ctx)
	case KindSkirmisher:
		TakeTurnSkirmisher(ctx)
	}
}

// --- Common prelude helpers (spec §4.2 "Common prelude") ---

// ChebyshevDistance returns max(|dx|, |dy|), the king-move distance used for
// melee-reach checks throughout §4.2.
func ChebyshevDistance(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// EuclideanDistance returns the straight-line distance between two points.
func EuclideanDistance(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanDistance returns |dx| + |dy|.
func ManhattanDistance(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// UpdateAwareness sets aware_of_player true once the actor enters the
// player's FOV (spec §4.2.1 step 1); it never clears once set.
func UpdateAwareness(actor *entity.Entity, fov FOV) {
	f := actor.Components.Fighter
	if f == nil || f.AwareOfPlayer {
		return
	}
	if fov != nil && fov.Visible(actor.X, actor.Y) {
		f.AwareOfPlayer = true
	}
}

// TauntOverride implements the common-prelude step 2 (spec §4.2): if any
// entity has an active taunted status with positive HP, hostile AIs
// redirect to it; if the taunted entity is the actor itself, it targets the
// nearest hostile visible in its own FOV.
func TauntOverride(ctx Context) *entity.Entity {
	var tauntedEntity *entity.Entity
	for _, e := range ctx.Entities.All() {
		if e.Components.Status != nil && e.Components.Status.HasEffect(status.EffectTaunted) && e.HP() > 0 {
			tauntedEntity = e
			break
		}
	}
	if tauntedEntity == nil {
		return ctx.Target
	}
	if tauntedEntity.ID == ctx.Actor.ID {
		return NearestHostileInFOV(ctx)
	}
	return tauntedEntity
}

// InvisibilityFallback implements prelude step 3: if target has
// invisibility, fall back to the nearest visible hostile by faction
// priority (spec §4.8).
func InvisibilityFallback(ctx Context, target *entity.Entity) *entity.Entity {
	if target == nil {
		return nil
	}
	if target.Components.Status != nil && target.Components.Status.HasEffect(status.EffectInvisibility) {
		return NearestHostileInFOV(ctx)
	}
	return target
}

// NearestHostileInFOV picks the best hostile candidate visible to the
// actor, using faction.PickTarget for priority/tie-breaking (spec §4.8).
func NearestHostileInFOV(ctx Context) *entity.Entity {
	var candidates []faction.Candidate
	var entities []*entity.Entity
	for _, e := range ctx.Entities.All() {
		if e.ID == ctx.Actor.ID || !e.IsAlive() || e.HP() <= 0 {
			continue
		}
		if ctx.FOV != nil && !ctx.FOV.Visible(e.X, e.Y) {
			continue
		}
		candidates = append(candidates, faction.Candidate{
			Faction:  e.Faction,
			Distance: EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y),
			X:        e.X, Y: e.Y,
		})
		entities = append(entities, e)
	}
	idx := faction.PickTarget(ctx.Actor.Faction, candidates, false)
	if idx < 0 {
		return nil
	}
	return entities[idx]
}

// ResolveTarget runs the common-prelude taunt/invisibility substitution
// chain and returns the effective target for this turn.
func ResolveTarget(ctx Context) *entity.Entity {
	t := TauntOverride(ctx)
	return InvisibilityFallback(ctx, t)
}

// IsGlued reports whether the actor is immobilized (spec §4.2 prelude step
// 4: "glue — skip movement ... attacking still allowed if adjacent").
func IsGlued(actor *entity.Entity) bool {
	return actor.Components.Status != nil && actor.Components.Status.HasEffect(status.EffectGlue)
}

// StepToward returns one cardinal/ordinal step from (x,y) toward (tx,ty),
// each component independently signed (a simple greedy walk, not full A*;
// blocking entities and walls are checked by the caller, e.g. via TryMove).
func StepToward(x, y, tx, ty int) (nx, ny int) {
	nx, ny = x, y
	if tx > x {
		nx = x + 1
	} else if tx < x {
		nx = x - 1
	}
	if ty > y {
		ny = y + 1
	} else if ty < y {
		ny = y - 1
	}
	return
}

// StepAway returns one step from (x,y) directly away from (tx,ty).
func StepAway(x, y, tx, ty int) (nx, ny int) {
	nx, ny = x, y
	if tx > x {
		nx = x - 1
	} else if tx < x {
		nx = x + 1
	}
	if ty > y {
		ny = y - 1
	} else if ty < y {
		ny = y + 1
	}
	return
}

// TryMove moves the actor one step if the destination is walkable and
// unblocked, returning whether the move happened.
func TryMove(ctx Context, nx, ny int) bool {
	if !ctx.Map.Walkable(nx, ny) {
		return false
	}
	if _, blocked := ctx.Entities.BlockerAt(nx, ny); blocked {
		return false
	}
	ctx.Entities.Move(ctx.Actor, nx, ny)
	return true
}

// WeaponReach returns the actor's melee reach; every current variant uses
// reach 1 (adjacent-only), left as a function so a future ranged monster
// can override it.
func WeaponReach(actor *entity.Entity) int {
	return 1
}

// ShieldWallBonus returns the defender's adjacent-skeleton-ally count for
// the combat resolver's shield wall AC bonus (spec §4.4 "Shield wall
// (skeleton)"), or 0 if the defender isn't a skeleton. Every attack site
// feeds this into combat.AttackOptions.ShieldWallAllies.
func ShieldWallBonus(entities *entity.Store, defender *entity.Entity) int {
	if defender.Components.AI == nil || defender.Components.AI.Kind != string(KindSkeleton) {
		return 0
	}
	return CountAdjacentAllies(entities, defender.X, defender.Y, defender.Faction, defender.ID)
}

func randAdjacentStep(r *rng.Source) (dx, dy int) {
	options := [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	pick := options[r.Intn(len(options))]
	return pick[0], pick[1]
}
