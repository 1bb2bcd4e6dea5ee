package ai

import (
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/corpse"
	"github.com/hollowmarch/engine/entity"
)

// PlagueFactory constructs the plague-carrier minion; injected since
// monster factories are static content, out of scope for this engine
// (spec §1).
type PlagueFactory func(x, y int) *entity.Entity

var plagueFactory PlagueFactory

// SetPlagueFactory installs the minion factory used by TakeTurnPlagueNecromancer.
func SetPlagueFactory(f PlagueFactory) { plagueFactory = f }

// TakeTurnPlagueNecromancer implements spec §4.2.7 "Plague necromancer":
// targets FRESH corpses, raises via the shared pipeline, tags the spawned
// minion plague_carrier with the plague_attack ability.
func TakeTurnPlagueNecromancer(ctx Context) {
	target := ResolveTarget(ctx)
	cfg := config.DefaultPlagueNecromancer
	necromancerPrelude(ctx, cfg, necromancerActorState(ctx), target, func() (interface{}, bool) {
		return nearestFreshCorpse(ctx, cfg.ActionRange)
	}, func(at interface{}) int {
		c := at.(*entity.Entity)
		if plagueFactory == nil {
			return cfg.ActionCooldownTurns
		}
		res := corpse.Raise(ctx.Entities, ctx.Log, c, "plague_zombie", ctx.Actor.Faction, func(_ string, x, y int) *entity.Entity {
			return plagueFactory(x, y)
		})
		if t := telemetryOf(ctx.Actor); t != nil {
			t.RaisesAttempted++
			if res.Raised {
				t.RaisesSucceeded++
			}
		}
		if res.Raised && res.Minion != nil {
			res.Minion.SetTag("plague_carrier")
			res.Minion.SetTag("plague_attack")
		}
		return cfg.ActionCooldownTurns
	})
}

func nearestFreshCorpse(ctx Context, maxRange float64) (*entity.Entity, bool) {
	var best *entity.Entity
	bestDist := maxRange
	for _, e := range ctx.Entities.All() {
		c := e.Components.Corpse
		if c == nil || !c.CanRaise() {
			continue
		}
		d := EuclideanDistance(ctx.Actor.X, ctx.Actor.Y, e.X, e.Y)
		if d <= bestDist {
			best = e
			bestDist = d
		}
	}
	return best, best != nil
}
