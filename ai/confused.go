package ai

// confusedState wraps a previous AI kind/state pair to restore later (spec
// §4.2.4: "Wraps a previous AI... restore the previous AI and emit a
// recovery message").
type confusedState struct {
	TurnsRemaining int
	PreviousKind   string
	PreviousState  interface{}
}

// ApplyConfusion swaps the actor's AI slot to the confused wrapper for n
// turns, stashing the previous variant to restore later. n == 0 restores
// immediately (spec §4.2.4).
func ApplyConfusion(slotKind string, slotState interface{}, n int) (newKind string, newState interface{}) {
	if n <= 0 {
		return slotKind, slotState
	}
	return string(KindConfused), &confusedState{TurnsRemaining: n, PreviousKind: slotKind, PreviousState: slotState}
}

// TakeTurnConfused implements spec §4.2.4: move to a random adjacent tile
// each turn for n turns, then restore the previous AI and emit a recovery
// message.
func TakeTurnConfused(ctx Context) {
	slot := ctx.Actor.Components.AI
	state, ok := slot.State.(*confusedState)
	if !ok {
		return
	}

	dx, dy := randAdjacentStep(ctx.RNG)
	TryMove(ctx, ctx.Actor.X+dx, ctx.Actor.Y+dy)

	state.TurnsRemaining--
	if state.TurnsRemaining <= 0 {
		slot.Kind = state.PreviousKind
		slot.State = state.PreviousState
		ctx.Log.Message(ctx.Actor.Name+" is no longer confused.", "white")
	}
}
