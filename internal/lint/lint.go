// Package lint implements the semantic checks run over a decoded
// Custom Difficulty model.
//
// Each lint is a pure pass over the model, the model is never mutated.
// [Run] executes them in a fixed order so diagnostic output is stable
// across runs.
package lint

import (
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/cdlint/internal/config"
	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/difficulty"
	"go.followtheprocess.codes/cdlint/internal/graph"
	"go.followtheprocess.codes/cdlint/internal/syntax"
)

// Run executes every lint against cd in a fixed order, returning the
// combined diagnostics.
//
// When cfg enables it and graphOut is non nil, the descriptor "Base"
// reference graph is written to graphOut in DOT format; a write failure is
// returned as an error alongside the diagnostics gathered so far.
func Run(cfg config.Config, cd *difficulty.CustomDifficulty, graphOut io.Writer) ([]diag.Diagnostic, error) {
	var diagnostics []diag.Diagnostic

	diagnostics = append(diagnostics, emptyName(cd)...)
	diagnostics = append(diagnostics, undefinedDescriptors(cfg, cd)...)
	diagnostics = append(diagnostics, ambiguousPools(cd)...)
	diagnostics = append(diagnostics, minLargerThanMax(cd)...)
	diagnostics = append(diagnostics, unusedCustomDescriptors(cfg, cd)...)

	cyclic, err := cyclicReferences(cfg, cd, graphOut)

	diagnostics = append(diagnostics, cyclic...)
	if err != nil {
		return diagnostics, err
	}

	return diagnostics, nil
}

// emptyName warns when the difficulty has no usable name.
func emptyName(cd *difficulty.CustomDifficulty) []diag.Diagnostic {
	if strings.TrimSpace(cd.Name.Val) != "" {
		return nil
	}

	return []diag.Diagnostic{
		diag.New(diag.Warning, "custom difficulty name is empty").
			WithLabel(cd.Name.Span, "", diag.Yellow),
	}
}

// undefinedDescriptors errors on every reference to an Enemy Descriptor
// that is neither shipped with the game, declared in the config, nor
// defined in the document.
//
// Definitions are walked in document order, so a descriptor whose "Base"
// is its own name before that name exists is a forward self reference and
// does not count as a definition.
func undefinedDescriptors(cfg config.Config, cd *difficulty.CustomDifficulty) []diag.Diagnostic {
	var diagnostics []diag.Diagnostic

	defined := definedSet(cfg)

	for _, entry := range cd.EnemyDescriptors.Val.Entries() {
		name := entry.Name.Val
		base := entry.Descriptor.Val.Base

		if !defined[name] {
			if !base.Span.IsDummy() && base.Val == name {
				diagnostics = append(diagnostics, diag.New(
					diag.Error,
					fmt.Sprintf(
						"attempt to reference %q in its \"Base\" field that is not a pre-defined Enemy Descriptor",
						name,
					),
				).WithLabel(entry.Name.Span, "", diag.Red))
			} else {
				defined[name] = true
			}
		} else if !base.Span.IsDummy() && !defined[base.Val] {
			diagnostics = append(diagnostics, diag.New(
				diag.Error,
				fmt.Sprintf(
					"attempt to reference undefined Enemy Descriptor %q as \"Base\"",
					base.Val,
				),
			).WithLabel(entry.Descriptor.Span, "", diag.Red))
		}
	}

	for _, pool := range pools(cd) {
		for _, list := range []syntax.Spanned[[]syntax.Spanned[string]]{pool.Val.Add, pool.Val.Remove} {
			for _, name := range list.Val {
				if defined[name.Val] {
					continue
				}

				diagnostics = append(diagnostics, diag.New(
					diag.Error,
					fmt.Sprintf("attempt to reference undefined Enemy Descriptor %q", name.Val),
				).WithLabel(name.Span, "", diag.Red))
			}
		}
	}

	return diagnostics
}

// ambiguousPools warns when a pool both adds and removes the same
// descriptor, the net effect depends on edit order the game never
// documents.
func ambiguousPools(cd *difficulty.CustomDifficulty) []diag.Diagnostic {
	var diagnostics []diag.Diagnostic

	for _, pool := range pools(cd) {
		added := make(map[string]syntax.Span)

		for _, name := range pool.Val.Add.Val {
			if _, seen := added[name.Val]; !seen {
				added[name.Val] = name.Span
			}
		}

		for _, name := range pool.Val.Remove.Val {
			addSpan, conflict := added[name.Val]
			if !conflict {
				continue
			}

			diagnostics = append(diagnostics, diag.New(
				diag.Warning,
				fmt.Sprintf("%q is both added to and removed from the same enemy pool", name.Val),
			).WithLabel(
				addSpan,
				fmt.Sprintf("%q added here", name.Val),
				diag.Yellow,
			).WithLabel(
				name.Span,
				fmt.Sprintf("%q removed here", name.Val),
				diag.Yellow,
			))
		}
	}

	return diagnostics
}

const minMaxMessage = "min > max in this range, which may lead to surprising behavior in Custom Difficulty and in game"

// minLargerThanMax warns about every range in the document whose min bound
// exceeds its max bound.
func minLargerThanMax(cd *difficulty.CustomDifficulty) []diag.Diagnostic {
	var diagnostics []diag.Diagnostic

	diagnostics = checkBins(diagnostics, cd.EncounterDifficulty.Val)
	diagnostics = checkBins(diagnostics, cd.StationaryDifficulty.Val)
	diagnostics = checkBins(diagnostics, cd.EnemyWaveInterval.Val)
	diagnostics = checkBins(diagnostics, cd.EnemyNormalWaveInterval.Val)
	diagnostics = checkBins(diagnostics, cd.EnemyNormalWaveDifficulty.Val)
	diagnostics = checkBins(diagnostics, cd.EnemyDiversity.Val)
	diagnostics = checkBins(diagnostics, cd.StationaryEnemyDiversity.Val)
	diagnostics = checkBins(diagnostics, cd.VeteranNormal.Val)
	diagnostics = checkBins(diagnostics, cd.VeteranLarge.Val)

	diagnostics = checkRange(diagnostics, cd.DisruptiveEnemyPoolCount.Val)
	diagnostics = checkRange(diagnostics, cd.MinPoolSize.Val)

	return diagnostics
}

// checkBins applies the min > max check to every bin in a weighted range
// field.
func checkBins[T difficulty.Number](diagnostics []diag.Diagnostic, bins []difficulty.WeightedRange[T]) []diag.Diagnostic {
	for _, bin := range bins {
		diagnostics = checkRange(diagnostics, bin.Range.Val)
	}

	return diagnostics
}

// checkRange appends a warning if the range's min exceeds its max.
func checkRange[T difficulty.Number](diagnostics []diag.Diagnostic, r difficulty.Range[T]) []diag.Diagnostic {
	if r.Min.Val <= r.Max.Val {
		return diagnostics
	}

	return append(diagnostics, diag.New(diag.Warning, minMaxMessage).
		WithLabel(r.Min.Span, "", diag.Yellow).
		WithLabel(r.Max.Span, "", diag.Yellow))
}

// unusedCustomDescriptors warns about custom descriptors (not part of the
// game or the config vocabulary) that no pool ever adds or removes.
func unusedCustomDescriptors(cfg config.Config, cd *difficulty.CustomDifficulty) []diag.Diagnostic {
	var diagnostics []diag.Diagnostic

	known := definedSet(cfg)

	used := make(map[string]bool)
	for _, pool := range pools(cd) {
		for _, name := range pool.Val.Add.Val {
			used[name.Val] = true
		}

		for _, name := range pool.Val.Remove.Val {
			used[name.Val] = true
		}
	}

	for _, entry := range cd.EnemyDescriptors.Val.Entries() {
		name := entry.Name.Val
		if known[name] || used[name] {
			continue
		}

		diagnostics = append(diagnostics, diag.New(
			diag.Warning,
			fmt.Sprintf("custom Enemy Descriptor %q is defined but never used", name),
		).WithLabel(
			entry.Name.Span,
			fmt.Sprintf("%q is defined here", name),
			diag.Yellow,
		))
	}

	return diagnostics
}

// cyclicReferences errors on cyclic Enemy Descriptor "Base" references,
// which crash the game.
//
// Self loops are tolerated on their own (overriding a shipped descriptor
// names itself as its Base all the time) but become a crash when any
// later declared descriptor references the self looping one, so that
// interaction is reported specially. Everything else goes through
// elementary circuit enumeration.
//
// References to undefined descriptors are skipped here, the undefined
// reference lint already reports them.
func cyclicReferences(cfg config.Config, cd *difficulty.CustomDifficulty, graphOut io.Writer) ([]diag.Diagnostic, error) {
	var diagnostics []diag.Diagnostic

	g := graph.New()
	for _, name := range cfg.ExtraEnemyDescriptors {
		g.AddNode(name)
	}

	for _, name := range difficulty.VanillaDescriptors {
		g.AddNode(name)
	}

	defined := definedSet(cfg)

	entries := cd.EnemyDescriptors.Val.Entries()
	for _, entry := range entries {
		defined[entry.Name.Val] = true
	}

	for _, entry := range entries {
		g.AddNode(entry.Name.Val)

		base := entry.Descriptor.Val.Base
		if base.Span.IsDummy() || base.Val == "" || !defined[base.Val] {
			continue
		}

		g.AddEdge(entry.Name.Val, base.Val)
	}

	circuits := g.Circuits()
	if len(circuits) > 0 {
		diagnostics = append(diagnostics, diag.New(
			diag.Error,
			`cycle detected in Enemy Descriptor "Base" references`,
		))
	}

	for _, name := range g.SelfLoops() {
		declared := -1

		for i, entry := range entries {
			if entry.Name.Val == name {
				declared = i
				break
			}
		}

		if declared == -1 {
			continue
		}

		for _, later := range entries[declared+1:] {
			base := later.Descriptor.Val.Base
			if base.Span.IsDummy() || base.Val != name {
				continue
			}

			diagnostics = append(diagnostics, diag.New(
				diag.Error,
				fmt.Sprintf(
					"%q is self-referential, but %q references it later, which will cause a crash",
					name,
					later.Name.Val,
				),
			).WithLabel(
				base.Span,
				fmt.Sprintf("%q references %q here", later.Name.Val, name),
				diag.Red,
			).WithHelp(fmt.Sprintf(
				"consider moving the self-referential %q to the end of the Enemy Descriptors list",
				name,
			)))
		}
	}

	for i, circuit := range circuits {
		var path strings.Builder

		for j, name := range circuit {
			if j == 0 {
				fmt.Fprintf(&path, "%q", name)
			} else {
				fmt.Fprintf(&path, " -> %q", name)
			}
		}

		fmt.Fprintf(&path, " -> %q", circuit[0])

		diagnostics = append(diagnostics, diag.New(
			diag.Error,
			fmt.Sprintf("cycle [%d]: %s", i+1, path.String()),
		))
	}

	if cfg.GenerateCyclicReferenceGraph && graphOut != nil {
		if err := g.Encode(graphOut); err != nil {
			return diagnostics, fmt.Errorf("exporting the reference graph: %w", err)
		}
	}

	return diagnostics, nil
}

// definedSet returns the names considered defined before the document
// itself declares anything: the vocabulary shipped with the game plus any
// extras from the config.
func definedSet(cfg config.Config) map[string]bool {
	defined := make(map[string]bool, len(difficulty.VanillaDescriptors)+len(cfg.ExtraEnemyDescriptors))

	for _, name := range difficulty.VanillaDescriptors {
		defined[name] = true
	}

	for _, name := range cfg.ExtraEnemyDescriptors {
		defined[name] = true
	}

	return defined
}

// pools returns the five enemy pools in a fixed order.
func pools(cd *difficulty.CustomDifficulty) []syntax.Spanned[difficulty.EnemyPool] {
	return []syntax.Spanned[difficulty.EnemyPool]{
		cd.EnemyPool,
		cd.CommonEnemies,
		cd.DisruptiveEnemies,
		cd.SpecialEnemies,
		cd.StationaryEnemies,
	}
}
