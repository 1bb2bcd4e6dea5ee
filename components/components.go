// Package components implements the closed set of component kinds described
// in spec.md §3.2: Fighter, AI, Inventory, Equipment, status-effect manager,
// Corpse, Door, Portal, Boss, and the speed-bonus tracker. Each entity
// carries at most one of each kind (spec §9 "Component map" — a closed enum
// of component kinds + a typed store per entity, no dynamic type lookup at
// call sites).
//
// Shape grounded in ships/stack.go's small bson-tagged value structs
// (ShipLoadout, CombatCounters, BattleState) attached to one parent document.
package components

import (
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/messages"
)

// Set is the typed slot store attached to every entity. A nil field means
// the entity does not carry that component. Callers use Get<Kind>-style
// direct field access (components.Set has no dynamic lookup) per spec §9.
type Set struct {
	Fighter    *Fighter
	AI         *AISlot
	Inventory  *Inventory
	Equipment  *Equipment
	Status     StatusManager
	Corpse     *Corpse
	Door       *Door
	Portal     *Portal
	Boss       *Boss
	SpeedBonus *SpeedBonusTracker
}

// StatusManager is implemented by status.Manager. Declared here (rather than
// importing the status package directly) so components has no dependency on
// status, keeping the component-kind closed set at the bottom of the import
// graph as spec §9 intends ("no dynamic type lookup at the call sites" — the
// concrete type is still known to every caller that imports status).
type StatusManager interface {
	HasEffect(name string) bool
	IsActive() bool
	BreakOnAttack(owner string, log *messages.Log)
}

// DamageType enumerates the damage-type channel used by resistances and
// outgoing damage-type modifiers (spec §4.4 "Damage").
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageFire     DamageType = "fire"
	DamageCold     DamageType = "cold"
	DamagePoison   DamageType = "poison"
	DamageNecrotic DamageType = "necrotic"
	DamageHoly     DamageType = "holy"
	DamagePlague   DamageType = "plague"
)

// Fighter is the combat-stat component (spec §3.2).
type Fighter struct {
	HP     int `bson:"hp"`
	MaxHP  int `bson:"maxHp"`
	Defense int `bson:"defense"`
	Power   int `bson:"power"`

	DiceCount int `bson:"diceCount"` // e.g. 1 of "1d6"
	DiceSides int `bson:"diceSides"` // e.g. 6 of "1d6"

	Accuracy int `bson:"accuracy"`
	Evasion  int `bson:"evasion"`

	ArmorClass int `bson:"armorClass"`

	Resistances         map[DamageType]float64 `bson:"resistances,omitempty"`
	DamageTypeModifiers map[DamageType]float64 `bson:"damageTypeModifiers,omitempty"`
	NaturalDamageType   DamageType              `bson:"naturalDamageType,omitempty"`

	Strength int `bson:"strength"`
	Dex      int `bson:"dex"`
	Con      int `bson:"con"`
	XP       int `bson:"xp"`

	// AwareOfPlayer latches true once this actor has been seen in the
	// player's FOV or has been attacked; never clears (spec GLOSSARY
	// "Awareness"). Drives surprise-attack eligibility (§4.4).
	AwareOfPlayer bool `bson:"awareOfPlayer"`

	// StatusImmunities names effects this fighter rejects outright (§3.4).
	StatusImmunities map[string]bool `bson:"statusImmunities,omitempty"`

	// UsesItems is the per-monster static flag gating the item-usage AI
	// module (§4.7 "usage eligibility is per-monster static flag").
	UsesItems bool `bson:"usesItems,omitempty"`
}

// ResistanceFor returns the resistance multiplier for a damage type,
// defaulting to 1.0 (no resistance/vulnerability configured).
func (f *Fighter) ResistanceFor(t DamageType) float64 {
	if f.Resistances == nil {
		return 1.0
	}
	if m, ok := f.Resistances[t]; ok {
		return m
	}
	return 1.0
}

// OutgoingModifierFor returns this fighter's outgoing damage-type
// multiplier, defaulting to 1.0.
func (f *Fighter) OutgoingModifierFor(t DamageType) float64 {
	if f.DamageTypeModifiers == nil {
		return 1.0
	}
	if m, ok := f.DamageTypeModifiers[t]; ok {
		return m
	}
	return 1.0
}

// IsImmuneTo reports whether this fighter rejects a named status effect.
func (f *Fighter) IsImmuneTo(name string) bool {
	return f.StatusImmunities != nil && f.StatusImmunities[name]
}

// AISlot is the attachment point for an AI variant's own state (spec §3.2
// "AI: owns its state ... Exposes a single take_turn(...)"). Kind names the
// variant so the scheduler/dispatcher can route without reflection; State
// holds the variant's concrete state struct (defined in package ai) as an
// opaque value — components has no dependency on package ai, preserving the
// bottom-of-the-graph position the component-kind closed set needs.
type AISlot struct {
	Kind  string
	State interface{}

	// PortalUsable publishes whether this AI class may use deployed portals
	// (spec §4.3). Bosses and confused monsters publish false.
	PortalUsable bool
}

// Inventory is an ordered list of item entity IDs with a capacity (§3.2).
type Inventory struct {
	Items    []bson.ObjectID `bson:"items,omitempty"`
	Capacity int             `bson:"capacity"`
}

// HasSpace reports whether another item can be added.
func (inv *Inventory) HasSpace() bool {
	return inv.Capacity <= 0 || len(inv.Items) < inv.Capacity
}

// Add appends an item id if there is space, returning whether it was added.
func (inv *Inventory) Add(id bson.ObjectID) bool {
	if !inv.HasSpace() {
		return false
	}
	inv.Items = append(inv.Items, id)
	return true
}

// Remove deletes an item id, returning whether it was present.
func (inv *Inventory) Remove(id bson.ObjectID) bool {
	for i, it := range inv.Items {
		if it == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

// EquipmentSlot enumerates equip slots (§3.2).
type EquipmentSlot string

const (
	SlotMainHand EquipmentSlot = "main_hand"
	SlotOffHand  EquipmentSlot = "off_hand"
	SlotHead     EquipmentSlot = "head"
	SlotChest    EquipmentSlot = "chest"
	SlotFeet     EquipmentSlot = "feet"
)

// Equipment maps slot to the item entity occupying it. An item is in
// exactly one of {world, inventory, equipment} (§3.2 invariant).
type Equipment struct {
	Slots map[EquipmentSlot]bson.ObjectID `bson:"slots,omitempty"`
}

// Equipped returns the item id in a slot, or a zero ID if empty.
func (e *Equipment) Equipped(slot EquipmentSlot) (bson.ObjectID, bool) {
	if e.Slots == nil {
		return bson.ObjectID{}, false
	}
	id, ok := e.Slots[slot]
	return id, ok
}

// Equip sets an item into a slot, returning the previously-equipped item id
// if any (so the caller can restore it to inventory).
func (e *Equipment) Equip(slot EquipmentSlot, id bson.ObjectID) (previous bson.ObjectID, hadPrevious bool) {
	if e.Slots == nil {
		e.Slots = make(map[EquipmentSlot]bson.ObjectID)
	}
	previous, hadPrevious = e.Slots[slot]
	e.Slots[slot] = id
	return
}

// Unequip clears a slot, returning the item id that was there.
func (e *Equipment) Unequip(slot EquipmentSlot) (bson.ObjectID, bool) {
	if e.Slots == nil {
		return bson.ObjectID{}, false
	}
	id, ok := e.Slots[slot]
	if ok {
		delete(e.Slots, slot)
	}
	return id, ok
}

// All returns every equipped item id, for drop-on-death (§4.4 step 2).
func (e *Equipment) All() []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(e.Slots))
	for _, id := range e.Slots {
		out = append(out, id)
	}
	return out
}

// Door is a corridor-tile entity (spec §3.2, §4.9).
type Door struct {
	IsClosed     bool   `bson:"isClosed"`
	IsLocked     bool   `bson:"isLocked"`
	IsSecret     bool   `bson:"isSecret"`
	IsDiscovered bool   `bson:"isDiscovered"`
	KeyTag       string `bson:"keyTag,omitempty"`
	SearchDC     int    `bson:"searchDc"`
}

// Blocks reports whether this door currently blocks movement (§4.9):
// "a Door blocks movement iff is_closed ∧ (¬is_secret ∨ is_discovered) ∨
// (is_closed ∧ is_locked)".
func (d *Door) Blocks() bool {
	if !d.IsClosed {
		return false
	}
	if d.IsLocked {
		return true
	}
	return !d.IsSecret || d.IsDiscovered
}

// Describe renders the door's current state as player-facing flavor text,
// so a renderer can request a tooltip without reading IsLocked/IsSecret/
// IsDiscovered itself. ok is false for an undiscovered secret door, which
// has nothing to describe yet.
func (d *Door) Describe() (desc string, ok bool) {
	if d.IsSecret && !d.IsDiscovered {
		return "", false
	}
	switch {
	case d.IsLocked:
		return "a locked door", true
	case d.IsSecret:
		return "a secret door", true
	case d.IsClosed:
		return "a closed door", true
	default:
		return "an open door", true
	}
}

// Open unlocks-and-opens an unlocked door; returns false if locked.
func (d *Door) Open() bool {
	if d.IsLocked {
		return false
	}
	d.IsClosed = false
	return true
}

// Unlock unlocks the door when keyTags holds its KeyTag (a door with no
// KeyTag unlocks for any caller); keyTags itself is not modified.
func (d *Door) Unlock(keyTags map[string]bool) bool {
	if !d.IsLocked {
		return true
	}
	if d.KeyTag == "" || keyTags[d.KeyTag] {
		d.IsLocked = false
		return true
	}
	return false
}

// Search rolls a search check against SearchDC to discover a secret door.
func (d *Door) Search(roll int) bool {
	if d.IsDiscovered {
		return true
	}
	if roll >= d.SearchDC {
		d.IsDiscovered = true
		return true
	}
	return false
}

// Portal links two endpoint entities (§3.2, §4.3).
type Portal struct {
	EndpointTag string          `bson:"endpointTag"`
	LinkedTo    bson.ObjectID   `bson:"linkedTo,omitempty"`
	HasLink     bool            `bson:"hasLink"`
}

// Boss is the boss-specific component (§3.2, §4.2.2).
type Boss struct {
	Phase              int              `bson:"phase"`
	IsEnraged          bool             `bson:"isEnraged"`
	EnrageThreshold    float64          `bson:"enrageThreshold"` // hp/max_hp fraction
	DamageMultiplier   float64          `bson:"damageMultiplier"`
	DialogueBank       map[string][]string `bson:"dialogueBank,omitempty"` // event -> lines
	UsedDialogue       map[string]bool  `bson:"usedDialogue,omitempty"`
	Immunities         map[string]bool  `bson:"immunities,omitempty"` // status-effect names
	Defeated           bool             `bson:"defeated"`
	LowHPDialogueFired bool             `bson:"lowHpDialogueFired"`
}

// PickDialogue returns an unused line for event, marking it used, or ("",
// false) if none remain.
func (b *Boss) PickDialogue(event string, pick func(n int) int) (string, bool) {
	lines := b.DialogueBank[event]
	if len(lines) == 0 {
		return "", false
	}
	if b.UsedDialogue == nil {
		b.UsedDialogue = make(map[string]bool)
	}
	var candidates []int
	for i := range lines {
		key := event + ":" + strconv.Itoa(i)
		if !b.UsedDialogue[key] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	idx := candidates[pick(len(candidates))]
	b.UsedDialogue[event+":"+strconv.Itoa(idx)] = true
	return lines[idx], true
}

// FactionTag names the faction an entity belongs to (spec §3.2, §4.8). The
// player is its own singleton faction.
type FactionTag string

const (
	FactionPlayer    FactionTag = "player"
	FactionMonsters  FactionTag = "monsters"
	FactionUndead    FactionTag = "undead"
	FactionNeutral   FactionTag = "neutral"
	FactionVermin    FactionTag = "vermin"
)

// CorpseState enumerates the corpse automaton's states (spec §3.3):
// FRESH -> SPENT -> CONSUMED, with mark_consumed reachable from any state.
type CorpseState string

const (
	CorpseFresh    CorpseState = "fresh"
	CorpseSpent    CorpseState = "spent"
	CorpseConsumed CorpseState = "consumed"
)

// Corpse is the remains of a dead actor (spec §3.2, §3.3, §4.6). CorpseID is
// a lineage token, not an entity ID pointer: corpse <-> raiser tracking goes
// through this string so the store never holds a cyclic ownership edge
// (spec §9 "Cyclic ownership").
type Corpse struct {
	OriginalMonsterID string      `bson:"originalMonsterId"`
	State             CorpseState `bson:"state"`

	RaiseCount int `bson:"raiseCount"`
	MaxRaises  int `bson:"maxRaises"`

	// CorpseID is preserved across every state transition (§3.3).
	CorpseID string `bson:"corpseId"`

	DeathTurn int `bson:"deathTurn"`

	// Consumed is a legacy bool kept synchronized with State==CONSUMED
	// (§3.2); transition methods below are the only writers of both.
	Consumed bool `bson:"consumed"`

	CanExplodeFlag bool `bson:"canExplode"`
}

// CanRaise reports state==FRESH && raise_count < max_raises (§3.3 gate).
func (c *Corpse) CanRaise() bool {
	return c.State == CorpseFresh && c.RaiseCount < c.MaxRaises
}

// CanExplode reports state==SPENT (§3.3 gate); CanExplodeFlag plays no part
// in it.
func (c *Corpse) CanExplode() bool {
	return c.State == CorpseSpent
}

// RaiseDead increments raise_count; once it reaches max_raises the corpse
// transitions to CONSUMED, otherwise it stays FRESH (§3.3: "stays FRESH
// until raise_count == max_raises"). Returns false if CanRaise() was false.
func (c *Corpse) RaiseDead() bool {
	if !c.CanRaise() {
		return false
	}
	c.RaiseCount++
	if c.RaiseCount >= c.MaxRaises {
		c.setConsumed()
	}
	return true
}

// MarkSpent transitions FRESH -> SPENT (e.g. death of a raised minion, §3.3).
func (c *Corpse) MarkSpent() bool {
	if c.State != CorpseFresh {
		return false
	}
	c.State = CorpseSpent
	return true
}

// Explode transitions SPENT -> CONSUMED (§3.3, §4.2.7 exploder necromancer).
func (c *Corpse) Explode() bool {
	if !c.CanExplode() {
		return false
	}
	c.setConsumed()
	return true
}

// MarkConsumed forces CONSUMED from any state (§3.3 "any -> mark_consumed ->
// CONSUMED (inert)").
func (c *Corpse) MarkConsumed() {
	c.setConsumed()
}

func (c *Corpse) setConsumed() {
	c.State = CorpseConsumed
	c.Consumed = true
}

// SpeedBonusTracker is the momentum ratchet described in spec §3.5. The
// grant computation needs a uniform draw, so it is not a method here (that
// would make components depend on rng) — combat.ResolveBonusAttack (grounded
// on ships/stack.go CombatCounters) calls Advance with the draw already
// taken, keeping this package's only dependency the stdlib.
type SpeedBonusTracker struct {
	SpeedBonusRatio float64 `bson:"speedBonusRatio"`
	AttackCounter   int     `bson:"attackCounter"`
}

// Advance runs one ratchet step (§3.5): increment attack_counter; compute
// chance = counter * ratio; if chance >= 1.0, grant and reset; otherwise
// grant iff draw < chance, without resetting. draw must be a uniform value
// in [0,1) supplied by the caller's rng.Source. At ratio 0 the tracker never
// grants and never increments (§3.5 contract).
func (t *SpeedBonusTracker) Advance(draw float64) (granted bool) {
	if t.SpeedBonusRatio <= 0 {
		return false
	}
	t.AttackCounter++
	chance := float64(t.AttackCounter) * t.SpeedBonusRatio
	if chance >= 1.0 {
		t.AttackCounter = 0
		return true
	}
	return draw < chance
}

// Reset zeros the attack counter (spec §3.5: "called when the attacker
// breaks momentum: moves, drinks potion, reads scroll, ends combat").
func (t *SpeedBonusTracker) Reset() {
	t.AttackCounter = 0
}
