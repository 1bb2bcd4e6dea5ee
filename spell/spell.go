// Package spell implements the declarative spell contract of spec.md
// §6.3: a data record per spell plus a single executor that turns any
// record into the same result shape combat produces.
//
// Grounded in ships/formation_combat.go's "data describes the action,
// one free function executes it" split, and the content-registry
// collaborator described in spec §6.1 (spell defs are read-only records
// keyed by string id, supplied by a layer this engine doesn't own).
package spell

import (
	"math"

	"github.com/hollowmarch/engine/ai"
	"github.com/hollowmarch/engine/combat"
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/messages"
	"github.com/hollowmarch/engine/rng"
	"github.com/hollowmarch/engine/status"
)

// Category classifies a spell's broad intent (spec §6.3).
type Category string

const (
	CategoryOffensive Category = "offensive"
	CategoryHealing   Category = "healing"
	CategoryUtility   Category = "utility"
	CategoryBuff      Category = "buff"
)

// Targeting names how a spell resolves its target(s) (spec §6.3).
type Targeting string

const (
	TargetSelf        Targeting = "self"
	TargetSingleEnemy Targeting = "single_enemy"
	TargetSingleAny   Targeting = "single_any"
	TargetAOE         Targeting = "aoe"
	TargetCone        Targeting = "cone"
	TargetLocation    Targeting = "location"
)

// DamageExpr is a dice-plus-flat damage expression.
type DamageExpr struct {
	DiceCount, DiceSides, Flat int
	Type                       components.DamageType
}

// EffectSpec names a status effect to apply plus its duration/strength,
// the declarative shape a spell record carries (spec §6.3); the executor
// builds a concrete *status.Effect from it, with Strength in
// Data["strength"].
type EffectSpec struct {
	Name     string
	Duration int
	Strength int
}

// HazardSpec describes a hazard-tile spawn (spec §6.3). Hazard-tile
// materialization is left to the world layer's tile-entity factory; the
// executor only reports the spawn via a result record's metadata.
type HazardSpec struct {
	Type       string
	Radius     float64
	Duration   int
	TileDamage int
}

// Record is one spell's full declarative definition (spec §6.3).
type Record struct {
	ID       string
	Name     string
	Category Category
	Targeting Targeting

	Damage     *DamageExpr
	AOERadius  float64
	ConeRange  float64
	ConeWidthDegrees float64

	Effect *EffectSpec
	Hazard *HazardSpec

	HealAmount int

	Range       float64
	RequiresLOS bool
	Message     string
}

// Catalog is a read-only id->Record lookup, the spell half of the
// content-registry collaborator this engine doesn't own (spec §6.1).
type Catalog map[string]Record

// Describe returns id's flavor-text name, or ok=false if id is unknown, so
// a renderer can request a tooltip without reading a Record's other
// fields.
func (c Catalog) Describe(id string) (string, bool) {
	rec, ok := c[id]
	if !ok {
		return "", false
	}
	return rec.Name, true
}

// Execute runs one spell record against a caster and target-or-location
// (spec §6.3: "a single executor consumes any record plus (caster,
// targetOrLocation, entities, fov, map) and produces the same results
// shape as attacks"). target may be nil for TargetLocation spells; x, y
// give the location in that case (and for AOE/cone origin).
func Execute(r *rng.Source, log *messages.Log, rec Record, caster *entity.Entity, target *entity.Entity, x, y int, entities *entity.Store, turn int) {
	if rec.Message != "" {
		log.Message(rec.Message, "white")
	}

	switch rec.Targeting {
	case TargetSelf:
		applyEffectAndDamage(r, log, rec, caster, entities, turn)
	case TargetSingleEnemy, TargetSingleAny:
		if target != nil {
			applyEffectAndDamage(r, log, rec, target, entities, turn)
		}
	case TargetAOE:
		for _, e := range entities.All() {
			if e.Components.Fighter == nil {
				continue
			}
			if ai.EuclideanDistance(x, y, e.X, e.Y) > rec.AOERadius {
				continue
			}
			applyEffectAndDamage(r, log, rec, e, entities, turn)
		}
	case TargetCone:
		for _, e := range entities.All() {
			if e.Components.Fighter == nil {
				continue
			}
			if !inCone(caster.X, caster.Y, x, y, e.X, e.Y, rec.ConeRange, rec.ConeWidthDegrees) {
				continue
			}
			applyEffectAndDamage(r, log, rec, e, entities, turn)
		}
	case TargetLocation:
		if rec.Hazard != nil {
			log.Append(messages.Record{Meta: map[string]interface{}{
				"hazard_spawn": rec.Hazard.Type, "at_x": x, "at_y": y,
				"radius": rec.Hazard.Radius, "duration": rec.Hazard.Duration,
			}})
		}
	}
}

func applyEffectAndDamage(r *rng.Source, log *messages.Log, rec Record, target *entity.Entity, entities *entity.Store, turn int) {
	f := target.Components.Fighter
	if f == nil {
		return
	}
	if rec.Category == CategoryHealing && rec.HealAmount > 0 {
		f.HP += rec.HealAmount
		if f.HP > f.MaxHP {
			f.HP = f.MaxHP
		}
	}
	if rec.Damage != nil {
		amount := rec.Damage.Flat + r.Dice(rec.Damage.DiceCount, rec.Damage.DiceSides)
		amount = int(float64(amount) * f.ResistanceFor(rec.Damage.Type))
		if amount < 1 {
			amount = 1
		}
		f.HP -= amount
		if f.HP < 0 {
			f.HP = 0
		}
		log.Damage(target.ID.Hex(), amount, string(rec.Damage.Type))
		if f.HP <= 0 {
			combat.FinalizeDeath(r, log, entities, target, turn)
			return
		}
	}
	if rec.Effect != nil && target.Components.Status != nil {
		if mgr, ok := target.Components.Status.(*status.Manager); ok {
			mgr.Apply(target.ID.Hex(), &status.Effect{Name: rec.Effect.Name, Duration: rec.Effect.Duration, IsActive: true,
				Data: map[string]interface{}{"strength": rec.Effect.Strength}}, status.ReplaceInstance, log)
		}
	}
}

// inCone reports whether point (px,py) lies within a cone from origin
// (ox,oy) aimed at (aimX,aimY), out to coneRange, spanning coneWidth
// degrees total (half-width on each side of the aim direction).
func inCone(ox, oy, aimX, aimY, px, py int, coneRange, coneWidthDegrees float64) bool {
	dist := ai.EuclideanDistance(ox, oy, px, py)
	if dist > coneRange || dist == 0 {
		return false
	}
	aimAngle := math.Atan2(float64(aimY-oy), float64(aimX-ox))
	pointAngle := math.Atan2(float64(py-oy), float64(px-ox))
	diff := math.Abs(normalizeAngle(pointAngle - aimAngle))
	return diff <= (coneWidthDegrees/2)*(math.Pi/180)
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
