// Package config collects the engine's tunable constants as package-level
// catalogs, following the teacher's ships.RoleModesCatalog / ships.AbilitiesCatalog
// pattern of plain map[Key]Spec static data rather than env vars or flags —
// this engine is an embedded library, not a standalone process.
package config

// Combat holds the hit/dodge and d20 tunables from spec.md §4.4, pinned to
// the exact literal defaults original_source/balance/hit_model.py used.
type Combat struct {
	BaseHit float64 // default accuracy==evasion hit chance
	Step    float64 // hit-chance delta per point of (accuracy - evasion)
	MinHit  float64
	MaxHit  float64

	DefaultAccuracy int
	DefaultEvasion  int

	CritMultiplier     int // damage multiplier on natural 20 / surprise
	ShieldWallPerAdjacent int // AC bonus per adjacent skeleton ally, scaled by 100 (see ShieldWallPerAdjacentScale)
}

// ShieldWallPerAdjacentScale lets ShieldWallPerAdjacent be expressed as an
// integer-friendly fixed point value (AC bonus = ShieldWallPerAdjacent/100
// per adjacent ally); spec.md leaves the literal constant to implementers.
const ShieldWallPerAdjacentScale = 100

// DefaultCombat mirrors spec.md §4.4's literal example values.
var DefaultCombat = Combat{
	BaseHit:               0.75,
	Step:                  0.05,
	MinHit:                0.05,
	MaxHit:                0.95,
	DefaultAccuracy:       2,
	DefaultEvasion:        1,
	CritMultiplier:        2,
	ShieldWallPerAdjacent: 100, // +1.00 AC per adjacent skeleton ally
}

// Necromancer holds the per-variant action profile defaults (§4.2.7).
type Necromancer struct {
	ActionRange            float64
	ActionCooldownTurns    int
	DangerRadiusFromPlayer float64
	PreferredDistanceMin   float64
	PreferredDistanceMax   float64
}

// DefaultPlagueNecromancer, DefaultBoneNecromancer, DefaultExploderNecromancer,
// and DefaultLich give sensible starting profiles; monster factories may
// override per static definition (spec §6.1 content registry).
var (
	DefaultPlagueNecromancer = Necromancer{ActionRange: 6, ActionCooldownTurns: 4, DangerRadiusFromPlayer: 8, PreferredDistanceMin: 6, PreferredDistanceMax: 10}
	DefaultBoneNecromancer   = Necromancer{ActionRange: 5, ActionCooldownTurns: 3, DangerRadiusFromPlayer: 7, PreferredDistanceMin: 5, PreferredDistanceMax: 9}
	DefaultExploderNecromancer = Necromancer{ActionRange: 4, ActionCooldownTurns: 5, DangerRadiusFromPlayer: 6, PreferredDistanceMin: 4, PreferredDistanceMax: 8}
	DefaultLich              = Necromancer{ActionRange: 7, ActionCooldownTurns: 4, DangerRadiusFromPlayer: 8, PreferredDistanceMin: 6, PreferredDistanceMax: 10}
)

// Ratchet holds speed-bonus tracker defaults (§3.5).
type Ratchet struct {
	DefaultRatio float64
}

var DefaultRatchet = Ratchet{DefaultRatio: 0}

// Skirmisher holds anti-kiting tunables (§4.2.8).
type Skirmisher struct {
	LeapMinDistance   int
	LeapMaxDistance   int
	LeapCooldownTurns int
	FastPressureChance float64
}

var DefaultSkirmisher = Skirmisher{
	LeapMinDistance:    3,
	LeapMaxDistance:    6,
	LeapCooldownTurns:  3,
	FastPressureChance: 0.20,
}

// Dungeon holds connectivity-engine tunables (§4.9).
type Dungeon struct {
	LoopCount   int
	DoorSpacing int // place a door every Nth corridor tile

	LockedChance float64 // fraction of placed doors that spawn locked
	SecretChance float64 // fraction of placed doors that spawn secret
	DefaultSearchDC int
}

var DefaultDungeon = Dungeon{
	LoopCount:       3,
	DoorSpacing:     6,
	LockedChance:    0.15,
	SecretChance:    0.10,
	DefaultSearchDC: 15,
}

// FloorState holds floor-persistence tunables (§4.10).
type FloorState struct {
	DespawnRadius      int
	RespawnCapFraction float64
	DefaultRestrictBack int
}

var DefaultFloorState = FloorState{
	DespawnRadius:       20,
	RespawnCapFraction:  0.5,
	DefaultRestrictBack: 1,
}

// ItemUsage holds monster item-usage tunables (§4.7).
type ItemUsage struct {
	UseProbabilityPerTurn float64
	FailureRate           float64

	// OffensiveRange is the "distance threshold" spec.md §4.7 gates the
	// choice of an offensive scroll over a beneficial one: the player must
	// be within this distance for the monster to prefer an offensive item.
	OffensiveRange float64
}

var DefaultItemUsage = ItemUsage{UseProbabilityPerTurn: 0.1, FailureRate: 0.25, OffensiveRange: 6}

// ItemSeeking holds the item-seeking AI module's tunables (§4.2.9).
type ItemSeeking struct {
	SeekDistance float64
}

var DefaultItemSeeking = ItemSeeking{SeekDistance: 6}

// ZombieAI holds mindless-zombie tunables (§4.2.3).
type ZombieAI struct {
	SightRadius         int
	TargetSwitchChance  float64
}

var DefaultZombieAI = ZombieAI{SightRadius: 5, TargetSwitchChance: 0.5}

// SlimeAI holds slime-vision tunables (§4.2.5).
type SlimeAI struct {
	VisionRadius float64
}

var DefaultSlimeAI = SlimeAI{VisionRadius: 10}

// LichPassives holds the Lich's "Command the Dead" / "Death Siphon" tunables.
type LichPassives struct {
	CommandRadius   float64
	CommandToHit    int
	DeathSiphonHeal int
	DeathSiphonRadius float64
}

var DefaultLichPassives = LichPassives{
	CommandRadius:     5,
	CommandToHit:      1,
	DeathSiphonHeal:   3,
	DeathSiphonRadius: 6,
}
