// Package difficulty defines the typed model of a Custom Difficulty file.
//
// Every field is wrapped in [syntax.Spanned] so lints can point their
// findings back at the exact region of source a value came from. Values the
// document never set carry the dummy span and the game's default.
package difficulty

import (
	"go.followtheprocess.codes/cdlint/internal/syntax"
)

// Number constrains the numeric types a [Range] or [WeightedRange] may
// hold: whole-number settings decode to int, the rest to float64.
type Number interface {
	~int | ~float64
}

// Range is an inclusive {"min": x, "max": y} pair.
type Range[T Number] struct {
	Min syntax.Spanned[T]
	Max syntax.Spanned[T]
}

// WeightedRange is one weighted bin in a difficulty distribution, the game
// rolls a bin by weight then picks a value from its range.
type WeightedRange[T Number] struct {
	Weight syntax.Spanned[float64]
	Range  syntax.Spanned[Range[T]]
}

// EnemyPool describes edits to one of the game's enemy pools.
type EnemyPool struct {
	Clear  syntax.Spanned[bool]
	Add    syntax.Spanned[[]syntax.Spanned[string]]
	Remove syntax.Spanned[[]syntax.Spanned[string]]
}

// EscortMule holds the damage resistance properties of the escort mission
// mule.
type EscortMule struct {
	// FriendlyFireModifier is the damage taken from players.
	FriendlyFireModifier syntax.Spanned[float64]

	// NeutralDamageModifier is the damage taken from neutral damage sources.
	NeutralDamageModifier syntax.Spanned[float64]

	// BigHitDamageModifier is the damage taken from big hits.
	BigHitDamageModifier syntax.Spanned[float64]

	// BigHitDamageReductionThreshold is the damage threshold for a hit to
	// count as a "big hit" and be affected by BigHitDamageModifier.
	BigHitDamageReductionThreshold syntax.Spanned[float64]
}

// DefaultEscortMule returns the game's default mule resistances, used when
// the document does not set them.
func DefaultEscortMule() EscortMule {
	return EscortMule{
		FriendlyFireModifier:           syntax.Defaulted(0.1),
		NeutralDamageModifier:          syntax.Defaulted(0.1),
		BigHitDamageModifier:           syntax.Defaulted(0.5),
		BigHitDamageReductionThreshold: syntax.Defaulted(0.0),
	}
}

// PawnStat is a single named stat multiplier on an enemy.
type PawnStat struct {
	Name  syntax.Spanned[string]
	Value syntax.Spanned[float64]
}

// PawnStats is the set of stat multipliers on an enemy, in document order.
type PawnStats []PawnStat

// EnemyDescriptor describes a single enemy type, either a brand new one or
// an override of an existing one.
type EnemyDescriptor struct {
	// Base is the descriptor to copy values from. Required when defining a
	// new descriptor.
	Base syntax.Spanned[string]

	// SpawnSpread is the maximum distance enemies can spawn from the
	// centre of the spawn point, in centimetres.
	SpawnSpread syntax.Spanned[float64]

	IdealSpawnSize syntax.Spanned[int]

	// CanBeUsedForConstantPressure reports whether this descriptor can
	// spawn in constant pressure waves.
	CanBeUsedForConstantPressure syntax.Spanned[bool]

	// CanBeUsedInEncounters reports whether this descriptor can spawn in
	// encounters.
	CanBeUsedInEncounters syntax.Spanned[bool]

	// DifficultyRating is the difficulty cost to spawn each individual
	// enemy.
	DifficultyRating syntax.Spanned[float64]

	MinSpawnCount       syntax.Spanned[int]
	MaxSpawnCount       syntax.Spanned[int]
	Rarity              syntax.Spanned[int]
	SpawnAmountModifier syntax.Spanned[int]

	// Elite reports whether the enemy should be turned into an elite.
	Elite syntax.Spanned[bool]

	// Scale is how large the enemy is.
	Scale syntax.Spanned[float64]

	// TimeDilation is how fast the enemy moves relative to everything else.
	TimeDilation syntax.Spanned[float64]

	PawnStats syntax.Spanned[PawnStats]
}

// DescriptorEntry is one named descriptor definition inside the
// EnemyDescriptors object.
type DescriptorEntry struct {
	Name       syntax.Spanned[string]
	Descriptor syntax.Spanned[EnemyDescriptor]
}

// DescriptorMap holds the document's descriptor definitions, preserving
// document order for deterministic lint output while still offering name
// lookup.
type DescriptorMap struct {
	index   map[string]int
	entries []DescriptorEntry
}

// Insert adds a descriptor definition, returning false (and leaving the
// map untouched) if the name is already present.
func (m *DescriptorMap) Insert(entry DescriptorEntry) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if _, exists := m.index[entry.Name.Val]; exists {
		return false
	}

	m.index[entry.Name.Val] = len(m.entries)
	m.entries = append(m.entries, entry)

	return true
}

// Get returns the entry for name, if present.
func (m *DescriptorMap) Get(name string) (DescriptorEntry, bool) {
	idx, ok := m.index[name]
	if !ok {
		return DescriptorEntry{}, false
	}

	return m.entries[idx], true
}

// Contains reports whether a descriptor with the given name is defined.
func (m *DescriptorMap) Contains(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Entries returns the definitions in document order. The returned slice
// must not be mutated.
func (m *DescriptorMap) Entries() []DescriptorEntry {
	return m.entries
}

// Len returns the number of definitions.
func (m *DescriptorMap) Len() int {
	return len(m.entries)
}

// CustomDifficulty is the decoded model of an entire Custom Difficulty
// file.
type CustomDifficulty struct {
	// Name is the difficulty name shown in game.
	Name syntax.Spanned[string]

	Description syntax.Spanned[string]

	// MaxActiveCritters is the maximum number of critters (maggots,
	// lootbugs, silica harvesters, etc.) allowed to exist at once, per
	// player count.
	MaxActiveCritters syntax.Spanned[[]syntax.Spanned[int]]

	// MaxActiveSwarmers is the maximum number of swarmers allowed to exist
	// at once, per player count.
	MaxActiveSwarmers syntax.Spanned[[]syntax.Spanned[int]]

	// MaxActiveEnemies is the maximum number of enemies allowed to exist
	// at once, per player count.
	MaxActiveEnemies syntax.Spanned[[]syntax.Spanned[int]]

	// ResupplyCost is the amount of nitra required to call a resupply pod.
	ResupplyCost syntax.Spanned[[]syntax.Spanned[float64]]

	// StartingNitra is the amount of nitra initially in the team
	// depository.
	StartingNitra syntax.Spanned[[]syntax.Spanned[int]]

	ExtraLargeEnemyDamageResistance  syntax.Spanned[[]syntax.Spanned[float64]]
	ExtraLargeEnemyDamageResistanceB syntax.Spanned[[]syntax.Spanned[float64]]
	ExtraLargeEnemyDamageResistanceC syntax.Spanned[[]syntax.Spanned[float64]]
	ExtraLargeEnemyDamageResistanceD syntax.Spanned[[]syntax.Spanned[float64]]
	EnemyDamageResistance            syntax.Spanned[[]syntax.Spanned[float64]]
	SmallEnemyDamageResistance       syntax.Spanned[[]syntax.Spanned[float64]]
	EnemyDamageModifier              syntax.Spanned[[]syntax.Spanned[float64]]
	EnemyCountModifier               syntax.Spanned[[]syntax.Spanned[float64]]

	// The weighted bin distributions controlling wave pacing and
	// composition.
	EncounterDifficulty       syntax.Spanned[[]WeightedRange[int]]
	StationaryDifficulty      syntax.Spanned[[]WeightedRange[int]]
	EnemyWaveInterval         syntax.Spanned[[]WeightedRange[int]]
	EnemyNormalWaveInterval   syntax.Spanned[[]WeightedRange[int]]
	EnemyNormalWaveDifficulty syntax.Spanned[[]WeightedRange[int]]
	EnemyDiversity            syntax.Spanned[[]WeightedRange[int]]
	StationaryEnemyDiversity  syntax.Spanned[[]WeightedRange[int]]
	VeteranNormal             syntax.Spanned[[]WeightedRange[float64]]
	VeteranLarge              syntax.Spanned[[]WeightedRange[float64]]

	// DisruptiveEnemyPoolCount is the number of disruptive enemies to fill
	// the enemy pool with at mission start.
	DisruptiveEnemyPoolCount syntax.Spanned[Range[int]]

	// MinPoolSize is the size of the enemy pool.
	MinPoolSize syntax.Spanned[Range[int]]

	// MaxActiveElites is the maximum number of elite enemies allowed to
	// exist at once.
	MaxActiveElites syntax.Spanned[int]

	EnvironmentalDamageModifier syntax.Spanned[float64]
	PointExtractionScalar       syntax.Spanned[float64]

	// HazardBonus is the hazard bonus reward for the difficulty.
	HazardBonus syntax.Spanned[float64]

	// FriendlyFireModifier is the amount of damage done to other players.
	FriendlyFireModifier syntax.Spanned[float64]

	WaveStartDelayScale syntax.Spanned[float64]

	// SpeedModifier is the movement speed of most enemies.
	SpeedModifier syntax.Spanned[float64]

	AttackCooldownModifier  syntax.Spanned[float64]
	ProjectileSpeedModifier syntax.Spanned[float64]
	HealthRegenerationMax   syntax.Spanned[float64]

	// ReviveHealthRatio is the percentage of health restored when revived
	// by another player.
	ReviveHealthRatio syntax.Spanned[float64]

	// EliteCooldown is the cooldown in seconds between elite spawns.
	EliteCooldown syntax.Spanned[int]

	// EnemyDescriptors overrides existing descriptors or defines new ones.
	EnemyDescriptors syntax.Spanned[DescriptorMap]

	// EnemyPool is the pool the game actually spawns from. Usually edited
	// indirectly via the pools below.
	EnemyPool syntax.Spanned[EnemyPool]

	CommonEnemies     syntax.Spanned[EnemyPool]
	DisruptiveEnemies syntax.Spanned[EnemyPool]
	SpecialEnemies    syntax.Spanned[EnemyPool]
	StationaryEnemies syntax.Spanned[EnemyPool]

	// SeasonalEvents is the set of seasonal events allowed to spawn.
	SeasonalEvents syntax.Spanned[[]syntax.Spanned[string]]

	// EscortMule holds the escort mule's damage resistances.
	EscortMule syntax.Spanned[EscortMule]
}

// Default returns a [CustomDifficulty] holding the game's defaults, every
// span dummy so lints know nothing came from the document.
func Default() CustomDifficulty {
	return CustomDifficulty{
		Name:                             syntax.Defaulted(""),
		Description:                      syntax.Defaulted(""),
		MaxActiveCritters:                syntax.Defaulted[[]syntax.Spanned[int]](nil),
		MaxActiveSwarmers:                syntax.Defaulted[[]syntax.Spanned[int]](nil),
		MaxActiveEnemies:                 syntax.Defaulted[[]syntax.Spanned[int]](nil),
		ResupplyCost:                     syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		StartingNitra:                    syntax.Defaulted[[]syntax.Spanned[int]](nil),
		ExtraLargeEnemyDamageResistance:  syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		ExtraLargeEnemyDamageResistanceB: syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		ExtraLargeEnemyDamageResistanceC: syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		ExtraLargeEnemyDamageResistanceD: syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		EnemyDamageResistance:            syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		SmallEnemyDamageResistance:       syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		EnemyDamageModifier:              syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		EnemyCountModifier:               syntax.Defaulted[[]syntax.Spanned[float64]](nil),
		EncounterDifficulty:              syntax.Defaulted[[]WeightedRange[int]](nil),
		StationaryDifficulty:             syntax.Defaulted[[]WeightedRange[int]](nil),
		EnemyWaveInterval:                syntax.Defaulted[[]WeightedRange[int]](nil),
		EnemyNormalWaveInterval:          syntax.Defaulted[[]WeightedRange[int]](nil),
		EnemyNormalWaveDifficulty:        syntax.Defaulted[[]WeightedRange[int]](nil),
		EnemyDiversity:                   syntax.Defaulted[[]WeightedRange[int]](nil),
		StationaryEnemyDiversity:         syntax.Defaulted[[]WeightedRange[int]](nil),
		VeteranNormal:                    syntax.Defaulted[[]WeightedRange[float64]](nil),
		VeteranLarge:                     syntax.Defaulted[[]WeightedRange[float64]](nil),
		DisruptiveEnemyPoolCount:         syntax.Defaulted(DefaultRange[int]()),
		MinPoolSize:                      syntax.Defaulted(DefaultRange[int]()),
		MaxActiveElites:                  syntax.Defaulted(0),
		EnvironmentalDamageModifier:      syntax.Defaulted(0.0),
		PointExtractionScalar:            syntax.Defaulted(0.0),
		HazardBonus:                      syntax.Defaulted(0.0),
		FriendlyFireModifier:             syntax.Defaulted(0.0),
		WaveStartDelayScale:              syntax.Defaulted(0.0),
		SpeedModifier:                    syntax.Defaulted(0.0),
		AttackCooldownModifier:           syntax.Defaulted(0.0),
		ProjectileSpeedModifier:          syntax.Defaulted(0.0),
		HealthRegenerationMax:            syntax.Defaulted(0.0),
		ReviveHealthRatio:                syntax.Defaulted(0.0),
		EliteCooldown:                    syntax.Defaulted(0),
		EnemyDescriptors:                 syntax.Defaulted(DescriptorMap{}),
		EnemyPool:                        syntax.Defaulted(DefaultEnemyPool()),
		CommonEnemies:                    syntax.Defaulted(DefaultEnemyPool()),
		DisruptiveEnemies:                syntax.Defaulted(DefaultEnemyPool()),
		SpecialEnemies:                   syntax.Defaulted(DefaultEnemyPool()),
		StationaryEnemies:                syntax.Defaulted(DefaultEnemyPool()),
		SeasonalEvents:                   syntax.Defaulted[[]syntax.Spanned[string]](nil),
		EscortMule:                       syntax.Defaulted(DefaultEscortMule()),
	}
}

// DefaultRange returns a [Range] with defaulted bounds.
func DefaultRange[T Number]() Range[T] {
	var zero T

	return Range[T]{
		Min: syntax.Defaulted(zero),
		Max: syntax.Defaulted(zero),
	}
}

// DefaultEnemyPool returns an [EnemyPool] with no edits.
func DefaultEnemyPool() EnemyPool {
	return EnemyPool{
		Clear:  syntax.Defaulted(false),
		Add:    syntax.Defaulted[[]syntax.Spanned[string]](nil),
		Remove: syntax.Defaulted[[]syntax.Spanned[string]](nil),
	}
}

// DefaultEnemyDescriptor returns an [EnemyDescriptor] with every field
// defaulted.
func DefaultEnemyDescriptor() EnemyDescriptor {
	return EnemyDescriptor{
		Base:                         syntax.Defaulted(""),
		SpawnSpread:                  syntax.Defaulted(0.0),
		IdealSpawnSize:               syntax.Defaulted(0),
		CanBeUsedForConstantPressure: syntax.Defaulted(false),
		CanBeUsedInEncounters:        syntax.Defaulted(false),
		DifficultyRating:             syntax.Defaulted(0.0),
		MinSpawnCount:                syntax.Defaulted(0),
		MaxSpawnCount:                syntax.Defaulted(0),
		Rarity:                       syntax.Defaulted(0),
		SpawnAmountModifier:          syntax.Defaulted(0),
		Elite:                        syntax.Defaulted(false),
		Scale:                        syntax.Defaulted(0.0),
		TimeDilation:                 syntax.Defaulted(0.0),
		PawnStats:                    syntax.Defaulted[PawnStats](nil),
	}
}
