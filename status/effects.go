package status

// Effect name constants (spec §4.5 "Common effects").
const (
	EffectInvisibility        = "invisibility"
	EffectParalysis           = "paralysis"
	EffectFear                = "fear"
	EffectGlue                = "glue"
	EffectSlow                = "slow"
	EffectConfusion           = "confusion"
	EffectTaunted             = "taunted"
	EffectEnragedAgainstFaction = "enraged_against_faction"
	EffectChargingSoulBolt    = "charging_soul_bolt"
	EffectSoulWard            = "soul_ward"
	EffectSoulBurn            = "soul_burn"
	EffectPlague              = "plague"
)

// NewParalysis builds the paralysis effect: skip turn every tick it's
// active (spec §4.1 step 2, §4.5).
func NewParalysis(duration int) *Effect {
	return &Effect{
		Name:     EffectParalysis,
		Duration: duration,
		Hooks: Hooks{
			OnTurnStart: func(owner string, log *Log) bool { return true },
		},
	}
}

// NewGlue builds the immobilization effect: blocks movement but not
// attacking while adjacent (spec §4.2 prelude step 4).
func NewGlue(duration int) *Effect {
	return &Effect{Name: EffectGlue, Duration: duration}
}

// NewSlow builds a skip-every-Nth-turn effect via an internal tick counter
// stored in Data (spec §4.5 "skip every Nth turn via skip_turn return").
func NewSlow(duration, everyN int) *Effect {
	data := map[string]interface{}{"tick": 0, "everyN": everyN}
	return &Effect{
		Name:     EffectSlow,
		Duration: duration,
		Data:     data,
		Hooks: Hooks{
			OnTurnStart: func(owner string, log *Log) bool {
				t, _ := data["tick"].(int)
				t++
				data["tick"] = t
				n, _ := data["everyN"].(int)
				if n <= 0 {
					return false
				}
				return t%n == 0
			},
		},
	}
}

// NewFear builds the force-flee effect (spec §4.2.1 onward reads it via
// HasEffect(EffectFear); fear carries no hooks of its own, only presence).
func NewFear(duration int) *Effect {
	return &Effect{Name: EffectFear, Duration: duration}
}

// NewInvisibility builds the invisibility effect. Removal on attack is
// handled by Manager.BreakOnAttack, not a hook, since that removal must
// happen mid-combat-resolution rather than at a turn boundary.
func NewInvisibility(duration int) *Effect {
	return &Effect{Name: EffectInvisibility, Duration: duration}
}

// NewTaunted records the faction tag (or entity token) the taunt redirects
// toward, in Data["source"] (spec §4.2 prelude step 2).
func NewTaunted(duration int, source string) *Effect {
	return &Effect{Name: EffectTaunted, Duration: duration, Data: map[string]interface{}{"source": source}}
}

// TauntSource reads back the redirect target recorded by NewTaunted.
func TauntSource(e *Effect) (string, bool) {
	if e == nil || e.Data == nil {
		return "", false
	}
	s, ok := e.Data["source"].(string)
	return s, ok
}

// NewEnragedAgainstFaction overrides target selection toward a faction
// (spec §4.5).
func NewEnragedAgainstFaction(duration int, faction string) *Effect {
	return &Effect{Name: EffectEnragedAgainstFaction, Duration: duration, Data: map[string]interface{}{"faction": faction}}
}

// EnragedFaction reads back the faction recorded by NewEnragedAgainstFaction.
func EnragedFaction(e *Effect) (string, bool) {
	if e == nil || e.Data == nil {
		return "", false
	}
	f, ok := e.Data["faction"].(string)
	return f, ok
}

// NewChargingSoulBolt marks a lich mid-channel of its signature attack
// (spec §4.2.7 lich variant, §8 scenario 4).
func NewChargingSoulBolt(duration int) *Effect {
	return &Effect{Name: EffectChargingSoulBolt, Duration: duration}
}

// NewSoulWard reduces incoming soul-bolt damage by a fixed fraction (spec
// §4.2.7: "If target has a soul_ward effect, reduce damage by 70%").
func NewSoulWard(duration int) *Effect {
	return &Effect{Name: EffectSoulWard, Duration: duration}
}

// SoulWardReduction is the damage-reduction fraction soul_ward applies.
const SoulWardReduction = 0.70

// DamageOverTimeTick is a per-turn damage callback signature used by DOT
// effects (soul_burn, plague). applyDamage lets combat own the actual HP
// mutation and death check; status only drives timing.
type DamageOverTimeTick func(owner string, amount int, log *Log)

// NewSoulBurn builds a DOT effect (spec §4.5 "soul_burn (DOT)").
func NewSoulBurn(duration, perTurn int, applyDamage DamageOverTimeTick) *Effect {
	return &Effect{
		Name:     EffectSoulBurn,
		Duration: duration,
		Hooks: Hooks{
			OnTurnEnd: func(owner string, log *Log) {
				if applyDamage != nil {
					applyDamage(owner, perTurn, log)
				}
			},
		},
	}
}

// NewPlague builds the plague DOT effect (spec §4.5). It only drives the
// per-turn damage: combat does not apply plague on a melee hit, and no
// other code spreads it from a plague_carrier.
func NewPlague(duration, perTurn int, applyDamage DamageOverTimeTick) *Effect {
	return &Effect{
		Name:     EffectPlague,
		Duration: duration,
		Hooks: Hooks{
			OnTurnEnd: func(owner string, log *Log) {
				if applyDamage != nil {
					applyDamage(owner, perTurn, log)
				}
			},
		},
	}
}
