// Package status implements the status-effect manager described in spec.md
// §3.4: a name-keyed mapping of active effects with four lifecycle hooks,
// enforced one-per-name, with per-target immunity rejection.
//
// Shape grounded in ships/bio_machine.go's BioMachine.Tick /
// ApplyInboundDebuff / ApplyInboundBuff — a small owned-state struct whose
// Tick method walks its own slots and whose Apply* methods gate on an
// immunity/resistance check before mutating state.
package status

import "github.com/hollowmarch/engine/messages"

// Log aliases messages.Log so the rest of this package (and effects.go) can
// refer to it without a second import.
type Log = messages.Log

// Hooks are the four lifecycle callbacks an Effect may define (spec §3.4).
// Any of them may be nil. owner is the entity id the effect is attached to,
// expressed as a string token (status has no dependency on package entity).
type Hooks struct {
	OnApply     func(owner string, log *messages.Log)
	OnTurnStart func(owner string, log *messages.Log) (skipTurn bool)
	OnTurnEnd   func(owner string, log *messages.Log)
	OnRemove    func(owner string, log *messages.Log)
}

// Effect is one active status-effect instance (spec §3.4).
type Effect struct {
	Name     string
	Duration int // -1 = permanent until explicitly removed
	IsActive bool

	Hooks Hooks

	// Data carries effect-specific payload (e.g. the faction a taunt
	// redirects toward, the tick counter of slow) without
	// status needing to know every effect's shape.
	Data map[string]interface{}
}

// RefreshPolicy controls what happens when an effect with the same name is
// applied while one is already active (spec §3.4 "refreshes or replaces per
// the effect's policy").
type RefreshPolicy int

const (
	// RefreshDuration resets the existing effect's duration to the new
	// one's, keeping the existing instance (and its Data) otherwise.
	RefreshDuration RefreshPolicy = iota
	// ReplaceInstance discards the existing instance entirely in favor of
	// the new one.
	ReplaceInstance
)

// Manager owns the set of effects active on one entity. At most one effect
// per name is active at a time (spec §3.4).
type Manager struct {
	effects     map[string]*Effect
	immunities  map[string]bool
}

// NewManager constructs an empty manager. immunities names effects this
// owner's manager rejects outright (mirrors components.Fighter.StatusImmunities;
// passed in rather than read from a Fighter so status has no dependency on
// package components).
func NewManager(immunities map[string]bool) *Manager {
	return &Manager{effects: make(map[string]*Effect), immunities: immunities}
}

// HasEffect reports whether an effect by that name is currently active.
func (m *Manager) HasEffect(name string) bool {
	e, ok := m.effects[name]
	return ok && e.IsActive
}

// Get returns the active effect by name, if any.
func (m *Manager) Get(name string) (*Effect, bool) {
	e, ok := m.effects[name]
	if !ok || !e.IsActive {
		return nil, false
	}
	return e, true
}

// IsActive reports whether the manager holds any active effect at all.
func (m *Manager) IsActive() bool {
	for _, e := range m.effects {
		if e.IsActive {
			return true
		}
	}
	return false
}

// Apply inserts an effect, refreshing or replacing an existing instance of
// the same name per policy (spec §3.4). Rejects effects named in the
// owner's immunity set without mutating state. Returns false if rejected.
func (m *Manager) Apply(owner string, e *Effect, policy RefreshPolicy, log *messages.Log) bool {
	if m.immunities != nil && m.immunities[e.Name] {
		return false
	}
	if existing, ok := m.effects[e.Name]; ok && existing.IsActive {
		switch policy {
		case RefreshDuration:
			existing.Duration = e.Duration
			return true
		case ReplaceInstance:
			if existing.Hooks.OnRemove != nil {
				existing.Hooks.OnRemove(owner, log)
			}
		}
	}
	e.IsActive = true
	m.effects[e.Name] = e
	if e.Hooks.OnApply != nil {
		e.Hooks.OnApply(owner, log)
	}
	return true
}

// Remove deactivates and removes an effect by name, invoking on_remove.
func (m *Manager) Remove(owner, name string, log *messages.Log) bool {
	e, ok := m.effects[name]
	if !ok {
		return false
	}
	delete(m.effects, name)
	e.IsActive = false
	if e.Hooks.OnRemove != nil {
		e.Hooks.OnRemove(owner, log)
	}
	return true
}

// TurnStart runs on_turn_start for every active effect, then removes any
// whose duration is already 0. Returns true if any
// effect demanded skip_turn (spec §4.1 step 1: "If any effect reports
// skip_turn, emit its messages and move to step 5").
func (m *Manager) TurnStart(owner string, log *messages.Log) (skipTurn bool) {
	for name, e := range m.effects {
		if !e.IsActive {
			continue
		}
		if e.Hooks.OnTurnStart != nil {
			if e.Hooks.OnTurnStart(owner, log) {
				skipTurn = true
			}
		}
		m.expireIfDone(owner, name, e, log)
	}
	return skipTurn
}

// TurnEnd runs on_turn_end for every active effect, decrements duration
// (duration == -1 is permanent and never decrements), then removes any
// effect that reached zero (spec §3.4, §4.5).
func (m *Manager) TurnEnd(owner string, log *messages.Log) {
	for name, e := range m.effects {
		if !e.IsActive {
			continue
		}
		if e.Hooks.OnTurnEnd != nil {
			e.Hooks.OnTurnEnd(owner, log)
		}
		if e.Duration > 0 {
			e.Duration--
		}
		m.expireIfDone(owner, name, e, log)
	}
}

func (m *Manager) expireIfDone(owner, name string, e *Effect, log *messages.Log) {
	if e.Duration == 0 {
		m.Remove(owner, name, log)
	}
}

// BreakOnAttack removes invisibility when its owner performs an attack
// (spec §4.4 "Break-on-attack": "when the owner of an invisibility effect
// performs ... the effect is removed"). No-op if invisibility isn't active.
func (m *Manager) BreakOnAttack(owner string, log *messages.Log) {
	if m.HasEffect(EffectInvisibility) {
		m.Remove(owner, EffectInvisibility, log)
	}
}
