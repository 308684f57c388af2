// Package decoder turns a parse tree into a [difficulty.CustomDifficulty].
//
// The decoder is schema-closed: it knows every member the game reads at
// every level of the document and rejects anything else, usually with a
// spelling suggestion. It favours reporting as many independent problems
// as possible over stopping at the first one, so a wrong value only
// abandons its own field, the rest of the document still decodes.
package decoder

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/difficulty"
	"go.followtheprocess.codes/cdlint/internal/suggest"
	"go.followtheprocess.codes/cdlint/internal/syntax"
	"go.followtheprocess.codes/cdlint/internal/syntax/ast"
)

// ErrDecode is a generic decoding error, details on the error are provided
// through the decoder's diagnostics.
var ErrDecode = errors.New("decode error")

// Suggestion distance caps. Range members are two and three characters
// long so anything beyond a single edit is a different word entirely.
const (
	maxSuggestDistance      = 3
	maxRangeSuggestDistance = 1
)

// Decoder decodes a parse tree into a [difficulty.CustomDifficulty],
// collecting diagnostics as it goes.
type Decoder struct {
	diagnostics []diag.Diagnostic
}

// New returns a new [Decoder].
func New() *Decoder {
	return &Decoder{}
}

// Decode decodes the root of a parse tree into a
// [difficulty.CustomDifficulty].
//
// Content problems (unknown members, duplicate members, wrong value kinds,
// out of domain numbers) never fail the decode, they accumulate as
// diagnostics and the affected field keeps its default. The only hard
// failure is a root that is not an object, reported as [ErrDecode].
func (d *Decoder) Decode(root *ast.Node) (difficulty.CustomDifficulty, error) {
	cd := difficulty.Default()

	if !root.Is(ast.KindObject) {
		return cd, fmt.Errorf(
			"%w: expected the top level JSON value to be an object, got %s",
			ErrDecode,
			describe(root),
		)
	}

	members := d.dedup(root.Members)

	// The game reads top level members in sorted key order, so decode (and
	// therefore report) in that same order
	slices.SortFunc(members, func(a, b ast.Member) int {
		return cmp.Compare(a.Key.Val, b.Key.Val)
	})

	for _, member := range members {
		d.member(&cd, member)
	}

	return cd, nil
}

// Diagnostics returns the diagnostics gathered during decoding.
func (d *Decoder) Diagnostics() []diag.Diagnostic {
	return slices.Clone(d.diagnostics)
}

// member decodes a single top level member into its field on the
// [difficulty.CustomDifficulty].
func (d *Decoder) member(cd *difficulty.CustomDifficulty, member ast.Member) {
	value := member.Value

	switch member.Key.Val {
	case "Name":
		d.str(&cd.Name, value)
	case "Description":
		d.str(&cd.Description, value)
	case "MaxActiveCritters":
		series(d, &cd.MaxActiveCritters, value)
	case "MaxActiveSwarmers":
		series(d, &cd.MaxActiveSwarmers, value)
	case "MaxActiveEnemies":
		series(d, &cd.MaxActiveEnemies, value)
	case "ResupplyCost":
		series(d, &cd.ResupplyCost, value)
	case "StartingNitra":
		series(d, &cd.StartingNitra, value)
	case "ExtraLargeEnemyDamageResistance":
		series(d, &cd.ExtraLargeEnemyDamageResistance, value)
	case "ExtraLargeEnemyDamageResistanceB":
		series(d, &cd.ExtraLargeEnemyDamageResistanceB, value)
	case "ExtraLargeEnemyDamageResistanceC":
		series(d, &cd.ExtraLargeEnemyDamageResistanceC, value)
	case "ExtraLargeEnemyDamageResistanceD":
		series(d, &cd.ExtraLargeEnemyDamageResistanceD, value)
	case "EnemyDamageResistance":
		series(d, &cd.EnemyDamageResistance, value)
	case "SmallEnemyDamageResistance":
		series(d, &cd.SmallEnemyDamageResistance, value)
	case "EnemyDamageModifier":
		series(d, &cd.EnemyDamageModifier, value)
	case "EnemyCountModifier":
		series(d, &cd.EnemyCountModifier, value)
	case "EncounterDifficulty":
		weightedRanges(d, &cd.EncounterDifficulty, member)
	case "StationaryDifficulty":
		weightedRanges(d, &cd.StationaryDifficulty, member)
	case "EnemyWaveInterval":
		weightedRanges(d, &cd.EnemyWaveInterval, member)
	case "EnemyNormalWaveInterval":
		weightedRanges(d, &cd.EnemyNormalWaveInterval, member)
	case "EnemyNormalWaveDifficulty":
		weightedRanges(d, &cd.EnemyNormalWaveDifficulty, member)
	case "EnemyDiversity":
		weightedRanges(d, &cd.EnemyDiversity, member)
	case "StationaryEnemyDiversity":
		weightedRanges(d, &cd.StationaryEnemyDiversity, member)
	case "VeteranNormal":
		weightedRanges(d, &cd.VeteranNormal, member)
	case "VeteranLarge":
		weightedRanges(d, &cd.VeteranLarge, member)
	case "DisruptiveEnemyPoolCount":
		if r, ok := rangeObject[int](d, value); ok {
			cd.DisruptiveEnemyPoolCount = syntax.Wrap(r, value.Span)
		}
	case "MinPoolSize":
		if r, ok := rangeObject[int](d, value); ok {
			cd.MinPoolSize = syntax.Wrap(r, value.Span)
		}
	case "MaxActiveElites":
		number(d, &cd.MaxActiveElites, value)
	case "EnvironmentalDamageModifier":
		number(d, &cd.EnvironmentalDamageModifier, value)
	case "PointExtractionScalar":
		number(d, &cd.PointExtractionScalar, value)
	case "HazardBonus":
		number(d, &cd.HazardBonus, value)
	case "FriendlyFireModifier":
		number(d, &cd.FriendlyFireModifier, value)
	case "WaveStartDelayScale":
		number(d, &cd.WaveStartDelayScale, value)
	case "SpeedModifier":
		number(d, &cd.SpeedModifier, value)
	case "AttackCooldownModifier":
		number(d, &cd.AttackCooldownModifier, value)
	case "ProjectileSpeedModifier":
		number(d, &cd.ProjectileSpeedModifier, value)
	case "HealthRegenerationMax":
		number(d, &cd.HealthRegenerationMax, value)
	case "ReviveHealthRatio":
		number(d, &cd.ReviveHealthRatio, value)
	case "EliteCooldown":
		number(d, &cd.EliteCooldown, value)
	case "EnemyDescriptors":
		if descriptors, ok := d.descriptors(value); ok {
			cd.EnemyDescriptors = syntax.Wrap(descriptors, value.Span)
		}
	case "EnemyPool":
		d.pool(&cd.EnemyPool, value)
	case "CommonEnemies":
		d.pool(&cd.CommonEnemies, value)
	case "DisruptiveEnemies":
		d.pool(&cd.DisruptiveEnemies, value)
	case "SpecialEnemies":
		d.pool(&cd.SpecialEnemies, value)
	case "StationaryEnemies":
		d.pool(&cd.StationaryEnemies, value)
	case "SeasonalEvents":
		d.seasonalEvents(&cd.SeasonalEvents, value)
	case "EscortMule":
		d.escortMule(&cd.EscortMule, value)
	default:
		d.unexpectedMember(
			member.Key,
			fmt.Sprintf("unexpected member: %q", member.Key.Val),
			difficulty.TopLevelFields,
			maxSuggestDistance,
		)
	}
}

// str decodes a string member value into target, leaving it untouched on a
// kind mismatch.
func (d *Decoder) str(target *syntax.Spanned[string], value *ast.Node) {
	if !value.Is(ast.KindString) {
		d.unexpectedKind(value, "string")
		return
	}

	*target = syntax.Wrap(value.Str, value.Span)
}

// boolean decodes a bool member value into target, leaving it untouched on
// a kind mismatch.
func (d *Decoder) boolean(target *syntax.Spanned[bool], value *ast.Node) {
	if !value.Is(ast.KindBool) {
		d.unexpectedKind(value, "bool")
		return
	}

	*target = syntax.Wrap(value.Bool, value.Span)
}

// number decodes a numeric member value into target, leaving it untouched
// on a kind mismatch or a value outside the valid domain.
func number[T difficulty.Number](d *Decoder, target *syntax.Spanned[T], value *ast.Node) {
	if v, ok := validNumber[T](d, value); ok {
		*target = syntax.Wrap(v, value.Span)
	}
}

// validNumber checks that value is a number in the domain every numeric
// setting shares: finite and non-negative. Whole-number targets truncate.
func validNumber[T difficulty.Number](d *Decoder, value *ast.Node) (T, bool) {
	var zero T

	if !value.Is(ast.KindNumber) {
		d.unexpectedKind(value, "number")
		return zero, false
	}

	v := value.Num
	if math.Signbit(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		d.diagnostics = append(d.diagnostics, diag.New(
			diag.Error,
			fmt.Sprintf(
				"value %s must be non-negative and finite",
				strconv.FormatFloat(v, 'g', -1, 64),
			),
		).WithLabel(value.Span, "", diag.Red))

		return zero, false
	}

	// Whole number targets convert through int, anything beyond this
	// bound would overflow the conversion and is not a sane game setting
	if v > math.MaxInt32 {
		d.diagnostics = append(d.diagnostics, diag.New(
			diag.Error,
			fmt.Sprintf(
				"value %s is too large for a game setting",
				strconv.FormatFloat(v, 'g', -1, 64),
			),
		).WithLabel(value.Span, "", diag.Red))

		return zero, false
	}

	return T(v), true
}

// series decodes a member whose value scales per player count: either a
// single number or an array of numbers, one per player count.
func series[T difficulty.Number](d *Decoder, target *syntax.Spanned[[]syntax.Spanned[T]], value *ast.Node) {
	switch {
	case value.Is(ast.KindNumber):
		if v, ok := validNumber[T](d, value); ok {
			*target = syntax.Wrap([]syntax.Spanned[T]{syntax.Wrap(v, value.Span)}, value.Span)
		}
	case value.Is(ast.KindArray):
		items := make([]syntax.Spanned[T], 0, len(value.Items))

		for _, item := range value.Items {
			if v, ok := validNumber[T](d, item); ok {
				items = append(items, syntax.Wrap(v, item.Span))
			}
		}

		*target = syntax.Wrap(items, value.Span)
	default:
		d.unexpectedKind(value, "number or array of number")
	}
}

// rangeObject decodes a {"min": x, "max": y} object. A missing bound keeps
// its default, min greater than max is left for the lints.
func rangeObject[T difficulty.Number](d *Decoder, value *ast.Node) (difficulty.Range[T], bool) {
	r := difficulty.DefaultRange[T]()

	if !value.Is(ast.KindObject) {
		d.error(value.Span, "expected a range object")
		return r, false
	}

	for _, member := range d.dedup(value.Members) {
		switch member.Key.Val {
		case "min":
			if v, ok := validNumber[T](d, member.Value); ok {
				r.Min = syntax.Wrap(v, member.Value.Span)
			}
		case "max":
			if v, ok := validNumber[T](d, member.Value); ok {
				r.Max = syntax.Wrap(v, member.Value.Span)
			}
		default:
			d.unexpectedMember(
				member.Key,
				fmt.Sprintf("unexpected member %q when expecting a range", member.Key.Val),
				difficulty.RangeFields,
				maxRangeSuggestDistance,
			)
		}
	}

	return r, true
}

// weightedRanges decodes a member whose value is an array of
// {"weight": w, "range": {...}} bins.
func weightedRanges[T difficulty.Number](
	d *Decoder,
	target *syntax.Spanned[[]difficulty.WeightedRange[T]],
	member ast.Member,
) {
	value := member.Value

	if !value.Is(ast.KindArray) {
		d.error(value.Span, fmt.Sprintf(
			"expected %q's value to be an array of weighted ranges",
			member.Key.Val,
		))

		return
	}

	bins := make([]difficulty.WeightedRange[T], 0, len(value.Items))

	for _, item := range value.Items {
		if !item.Is(ast.KindObject) {
			d.error(item.Span, "expected a weighted range object")
			continue
		}

		bin := difficulty.WeightedRange[T]{
			Weight: syntax.Defaulted(0.0),
			Range:  syntax.Defaulted(difficulty.DefaultRange[T]()),
		}

		for _, binMember := range d.dedup(item.Members) {
			switch binMember.Key.Val {
			case "weight":
				if v, ok := validNumber[float64](d, binMember.Value); ok {
					bin.Weight = syntax.Wrap(v, binMember.Value.Span)
				}
			case "range":
				if r, ok := rangeObject[T](d, binMember.Value); ok {
					bin.Range = syntax.Wrap(r, binMember.Value.Span)
				}
			default:
				d.unexpectedMember(
					binMember.Key,
					fmt.Sprintf(
						"unexpected member %q when expecting a weighted range",
						binMember.Key.Val,
					),
					difficulty.WeightedRangeFields,
					maxSuggestDistance,
				)
			}
		}

		bins = append(bins, bin)
	}

	*target = syntax.Wrap(bins, value.Span)
}

// pool decodes one of the five enemy pool edit objects.
func (d *Decoder) pool(target *syntax.Spanned[difficulty.EnemyPool], value *ast.Node) {
	if !value.Is(ast.KindObject) {
		d.error(value.Span, "expected an enemy pool object")
		return
	}

	pool := difficulty.DefaultEnemyPool()

	for _, member := range d.dedup(value.Members) {
		switch member.Key.Val {
		case "clear":
			d.boolean(&pool.Clear, member.Value)
		case "add":
			d.descriptorNames(&pool.Add, member.Value)
		case "remove":
			d.descriptorNames(&pool.Remove, member.Value)
		default:
			d.unexpectedMember(
				member.Key,
				fmt.Sprintf("unexpected member: %q", member.Key.Val),
				difficulty.PoolFields,
				maxSuggestDistance,
			)
		}
	}

	*target = syntax.Wrap(pool, value.Span)
}

// descriptorNames decodes an array of descriptor name strings, as found in
// a pool's add and remove lists.
func (d *Decoder) descriptorNames(target *syntax.Spanned[[]syntax.Spanned[string]], value *ast.Node) {
	if !value.Is(ast.KindArray) {
		d.unexpectedKind(value, "array")
		return
	}

	names := make([]syntax.Spanned[string], 0, len(value.Items))

	for _, item := range value.Items {
		if !item.Is(ast.KindString) {
			d.unexpectedKind(item, "string")
			continue
		}

		names = append(names, syntax.Wrap(item.Str, item.Span))
	}

	*target = syntax.Wrap(names, value.Span)
}

// descriptors decodes the EnemyDescriptors object, a mapping of descriptor
// name to definition, preserving document order.
func (d *Decoder) descriptors(value *ast.Node) (difficulty.DescriptorMap, bool) {
	var descriptors difficulty.DescriptorMap

	if !value.Is(ast.KindObject) {
		d.error(value.Span, "expected an enemy descriptors object")
		return descriptors, false
	}

	for _, member := range d.dedup(value.Members) {
		descriptor, ok := d.descriptor(member.Value)
		if !ok {
			continue
		}

		descriptors.Insert(difficulty.DescriptorEntry{
			Name:       member.Key,
			Descriptor: syntax.Wrap(descriptor, member.Key.Span),
		})
	}

	return descriptors, true
}

// descriptor decodes a single enemy descriptor definition.
func (d *Decoder) descriptor(value *ast.Node) (difficulty.EnemyDescriptor, bool) {
	descriptor := difficulty.DefaultEnemyDescriptor()

	if !value.Is(ast.KindObject) {
		d.error(value.Span, "expected an enemy descriptor object")
		return descriptor, false
	}

	for _, member := range d.dedup(value.Members) {
		switch member.Key.Val {
		case "Base":
			d.str(&descriptor.Base, member.Value)
		case "SpawnSpread":
			number(d, &descriptor.SpawnSpread, member.Value)
		case "IdealSpawnSize":
			number(d, &descriptor.IdealSpawnSize, member.Value)
		case "CanBeUsedForConstantPressure":
			d.boolean(&descriptor.CanBeUsedForConstantPressure, member.Value)
		case "CanBeUsedInEncounters":
			d.boolean(&descriptor.CanBeUsedInEncounters, member.Value)
		case "DifficultyRating":
			number(d, &descriptor.DifficultyRating, member.Value)
		case "MinSpawnCount":
			number(d, &descriptor.MinSpawnCount, member.Value)
		case "MaxSpawnCount":
			number(d, &descriptor.MaxSpawnCount, member.Value)
		case "Rarity":
			number(d, &descriptor.Rarity, member.Value)
		case "SpawnAmountModifier":
			number(d, &descriptor.SpawnAmountModifier, member.Value)
		case "Elite":
			d.boolean(&descriptor.Elite, member.Value)
		case "Scale":
			number(d, &descriptor.Scale, member.Value)
		case "TimeDilation":
			number(d, &descriptor.TimeDilation, member.Value)
		case "PawnStats":
			if stats, ok := d.pawnStats(member.Value); ok {
				descriptor.PawnStats = syntax.Wrap(stats, member.Value.Span)
			}
		default:
			d.unexpectedMember(
				member.Key,
				fmt.Sprintf("unexpected member: %q", member.Key.Val),
				difficulty.DescriptorFields,
				maxSuggestDistance,
			)
		}
	}

	return descriptor, true
}

// pawnStats decodes a PawnStats object, keyed by the closed set of stat
// names the game understands.
func (d *Decoder) pawnStats(value *ast.Node) (difficulty.PawnStats, bool) {
	if !value.Is(ast.KindObject) {
		d.unexpectedKind(value, "object")
		return nil, false
	}

	var stats difficulty.PawnStats

	for _, member := range d.dedup(value.Members) {
		if !slices.Contains(difficulty.PawnStatNames, member.Key.Val) {
			d.unexpectedMember(
				member.Key,
				fmt.Sprintf("unexpected member %q when expecting a pawn stat", member.Key.Val),
				difficulty.PawnStatNames,
				maxSuggestDistance,
			)

			continue
		}

		if !member.Value.Is(ast.KindNumber) {
			d.unexpectedKind(member.Value, "number")
			continue
		}

		stats = append(stats, difficulty.PawnStat{
			Name:  member.Key,
			Value: syntax.Wrap(member.Value.Num, member.Value.Span),
		})
	}

	return stats, true
}

// seasonalEvents decodes the SeasonalEvents array of event name strings.
func (d *Decoder) seasonalEvents(target *syntax.Spanned[[]syntax.Spanned[string]], value *ast.Node) {
	d.descriptorNames(target, value)
}

// escortMule decodes the EscortMule resistance object.
func (d *Decoder) escortMule(target *syntax.Spanned[difficulty.EscortMule], value *ast.Node) {
	if !value.Is(ast.KindObject) {
		d.error(value.Span, "expected an escort mule object")
		return
	}

	// When the object is present but a member is missing, the game falls
	// back to zero, not to the defaults it uses when the whole object is
	// absent
	mule := difficulty.EscortMule{
		FriendlyFireModifier:           syntax.Defaulted(0.0),
		NeutralDamageModifier:          syntax.Defaulted(0.0),
		BigHitDamageModifier:           syntax.Defaulted(0.0),
		BigHitDamageReductionThreshold: syntax.Defaulted(0.0),
	}

	for _, member := range d.dedup(value.Members) {
		switch member.Key.Val {
		case "FriendlyFireModifier":
			number(d, &mule.FriendlyFireModifier, member.Value)
		case "NeutralDamageModifier":
			number(d, &mule.NeutralDamageModifier, member.Value)
		case "BigHitDamageModifier":
			number(d, &mule.BigHitDamageModifier, member.Value)
		case "BigHitDamageReductionThreshold":
			number(d, &mule.BigHitDamageReductionThreshold, member.Value)
		default:
			d.unexpectedMember(
				member.Key,
				fmt.Sprintf("unexpected member: %q", member.Key.Val),
				difficulty.EscortMuleFields,
				maxSuggestDistance,
			)
		}
	}

	*target = syntax.Wrap(mule, value.Span)
}

// dedup walks an object's members in document order, reporting any name
// defined more than once and returning only the first occurrence of each.
func (d *Decoder) dedup(members []ast.Member) []ast.Member {
	seen := make(map[string]syntax.Span, len(members))
	unique := make([]ast.Member, 0, len(members))

	for _, member := range members {
		name := member.Key.Val

		first, duplicate := seen[name]
		if duplicate {
			d.diagnostics = append(d.diagnostics, diag.New(
				diag.Error,
				fmt.Sprintf("member %q defined multiple times", name),
			).WithLabel(
				first,
				fmt.Sprintf("member %q first defined here", name),
				diag.Red,
			).WithLabel(
				member.Key.Span,
				fmt.Sprintf("member %q later redefined here", name),
				diag.Red,
			))

			continue
		}

		seen[name] = member.Key.Span
		unique = append(unique, member)
	}

	return unique
}

// unexpectedMember reports a member outside the closed set valid in its
// context, with a spelling suggestion when one is close enough.
func (d *Decoder) unexpectedMember(
	key syntax.Spanned[string],
	message string,
	candidates []string,
	maxDistance int,
) {
	diagnostic := diag.New(diag.Error, message).WithLabel(key.Span, "", diag.Red)

	if suggestion, ok := suggest.Best(key.Val, candidates, maxDistance); ok {
		diagnostic = diagnostic.WithHelp(fmt.Sprintf("did you mean %q instead?", suggestion))
	}

	d.diagnostics = append(d.diagnostics, diagnostic)
}

// unexpectedKind reports a member value of the wrong JSON kind.
func (d *Decoder) unexpectedKind(value *ast.Node, expected string) {
	d.error(value.Span, fmt.Sprintf(
		"unexpected member value JSON kind: expected %s but found %s",
		expected,
		describe(value),
	))
}

// error reports a decode error with a fixed message.
func (d *Decoder) error(span syntax.Span, msg string) {
	d.diagnostics = append(
		d.diagnostics,
		diag.New(diag.Error, msg).WithLabel(span, "", diag.Red),
	)
}

// describe returns the lowercase JSON kind name of a node, for use in
// diagnostic messages.
func describe(node *ast.Node) string {
	if node == nil {
		return "nothing"
	}

	return strings.ToLower(node.Kind.String())
}
