// Package messages implements the append-only result/message log that every
// operation in the engine writes to as a side effect (spec.md §2, §6.4).
// Ordering is the only contract consumers rely on: "message-log entries are
// appended in the order they are produced; consumers read messages as an
// ordered sequence" (spec §5). Unlike the teacher's rendering-facing logs,
// this package does no line-wrapping or height-bounding — that is a
// renderer concern, explicitly external to the core (spec §1).
package messages

// Message is a single user-facing line with a display color, left as an
// opaque string (e.g. "white", "#ff0000") so this package never depends on
// a concrete color type owned by a renderer.
type Message struct {
	Text  string
	Color string
}

// Record is one entry in a Log: zero or more of the fields set, mirroring
// spec §6.4's result-record shape (message/damage/dead/consumed/teleported
// plus free-form spell metadata).
type Record struct {
	Msg *Message

	HasDamage  bool
	TargetID   string
	Amount     int
	DamageType string

	HasDead bool
	DeadID  string

	HasConsumed bool
	Consumed    bool

	HasTeleported bool
	Teleported    bool

	// Meta carries spell-specific or AI-specific metadata that doesn't fit
	// the fixed fields above (spec §6.4 "plus spell-specific metadata").
	Meta map[string]interface{}
}

// Log is the append-only buffer operations write to and callers read back
// as `results` (spec §4.1, §6.4).
type Log struct {
	records []Record
}

// NewLog constructs an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a record, preserving emission order.
func (l *Log) Append(r Record) {
	l.records = append(l.records, r)
}

// Message appends a plain text record (spec §6.4 "message(text, color)").
func (l *Log) Message(text, color string) {
	l.Append(Record{Msg: &Message{Text: text, Color: color}})
}

// Damage appends a damage record (spec §6.4 "damage(target_id, amount, type)").
func (l *Log) Damage(targetID string, amount int, damageType string) {
	l.Append(Record{HasDamage: true, TargetID: targetID, Amount: amount, DamageType: damageType})
}

// Dead appends a death record (spec §6.4 "dead(entity_id)").
func (l *Log) Dead(entityID string) {
	l.Append(Record{HasDead: true, DeadID: entityID})
}

// Consumed appends a consumed-flag record (e.g. a scroll, a ratchet charge).
func (l *Log) Consumed(consumed bool) {
	l.Append(Record{HasConsumed: true, Consumed: consumed})
}

// Teleported appends a teleported-flag record.
func (l *Log) Teleported(teleported bool) {
	l.Append(Record{HasTeleported: true, Teleported: teleported})
}

// Records returns every record appended so far, in emission order. The
// returned slice is a copy; callers must not expect mutation of it to
// affect the log.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports how many records have been appended.
func (l *Log) Len() int {
	return len(l.records)
}

// Merge appends every record from other onto l, in order (used when a
// sub-operation — a spell cast, a single attack — builds its own Log and
// the caller folds it into the turn's overall log).
func (l *Log) Merge(other *Log) {
	if other == nil {
		return
	}
	l.records = append(l.records, other.records...)
}
