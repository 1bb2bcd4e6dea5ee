package dungeon

import (
	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/rng"
)

// NewDoor rolls a fresh door's locked/secret state (spec §4.9 step 4:
// "Doors default closed; some spawn locked or secret with per-door
// key_tag and search_dc"). keyTag is only meaningful when the roll
// produces a locked door; callers pick it from their key/lock pairing
// scheme and pass "" when none applies.
func NewDoor(cfg config.Dungeon, keyTag string, r *rng.Source) *components.Door {
	d := &components.Door{
		IsClosed: true,
		SearchDC: cfg.DefaultSearchDC,
	}
	if r.Chance(cfg.LockedChance) {
		d.IsLocked = true
		d.KeyTag = keyTag
	}
	if r.Chance(cfg.SecretChance) {
		d.IsSecret = true
	}
	return d
}
