package ai

import (
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/entity"
)

// TakeTurnSkeleton implements spec §4.2.6: basic-monster behavior extended
// with formation movement — when not yet in combat range, prefer the
// candidate step (of 8) that scores highest on
// 10*adjacent_ally_count + (-manhattan_to_target), only overriding the
// plain approach step when it improves or holds adjacency while still
// approaching.
func TakeTurnSkeleton(ctx Context) {
	UpdateAwareness(ctx.Actor, ctx.FOV)
	state := basicState(ctx.Actor)

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
			attackAndRatchet(ctx, target, state)
		}
		return
	}

	d := ChebyshevDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	if d <= WeaponReach(ctx.Actor) {
		attackAndRatchet(ctx, target, state)
		return
	}

	nx, ny := bestFormationStep(ctx, target)
	TryMove(ctx, nx, ny)
}

// bestFormationStep enumerates the 8 candidate steps and scores each with
// SkeletonFormationScore; picks the max. Falls back to the plain approach
// step if no candidate improves on it (spec §4.2.6: "only override normal
// pathfinding when this improves adjacency OR maintains it while still
// approaching the target").
func bestFormationStep(ctx Context, target *entity.Entity) (nx, ny int) {
	plainX, plainY := StepToward(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
	plainScore := SkeletonFormationScore(ctx, plainX, plainY, target.X, target.Y)

	bestX, bestY, bestScore := plainX, plainY, plainScore
	deltas := [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	for _, d := range deltas {
		cx, cy := ctx.Actor.X+d[0], ctx.Actor.Y+d[1]
		if !ctx.Map.Walkable(cx, cy) {
			continue
		}
		if _, blocked := ctx.Entities.BlockerAt(cx, cy); blocked {
			continue
		}
		score := SkeletonFormationScore(ctx, cx, cy, target.X, target.Y)
		approaches := ManhattanDistance(cx, cy, target.X, target.Y) <= ManhattanDistance(ctx.Actor.X, ctx.Actor.Y, target.X, target.Y)
		if score > bestScore && approaches {
			bestScore = score
			bestX, bestY = cx, cy
		}
	}
	return bestX, bestY
}

// SkeletonFormationScore scores a candidate tile for skeleton formation
// movement (spec §4.2.6): 10*adjacent_ally_count + (-manhattan_to_target).
// Adjacency is counted by CountAdjacentAllies, the same routine the combat
// resolver uses for the shield-wall AC bonus, so movement and defense never
// disagree on what counts as "adjacent".
func SkeletonFormationScore(ctx Context, x, y, tx, ty int) int {
	allies := CountAdjacentAllies(ctx.Entities, x, y, ctx.Actor.Faction, ctx.Actor.ID)
	return 10*allies - ManhattanDistance(x, y, tx, ty)
}

// CountAdjacentAllies returns how many 4-adjacent same-faction skeletons
// stand beside (x, y), excluding the entity identified by exclude (spec
// §4.2.6 formation scoring and §4.4 "Shield wall (skeleton)").
func CountAdjacentAllies(store *entity.Store, x, y int, fac components.FactionTag, exclude entity.ID) int {
	count := 0
	for _, e := range store.All() {
		if e.ID == exclude {
			continue
		}
		if e.Faction != fac || e.Components.AI == nil || e.Components.AI.Kind != string(KindSkeleton) {
			continue
		}
		dx := e.X - x
		dy := e.Y - y
		if (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1)) {
			count++
		}
	}
	return count
}
