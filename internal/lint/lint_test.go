package lint_test

import (
	"io"
	"slices"
	"strings"
	"testing"

	"go.followtheprocess.codes/cdlint/internal/config"
	"go.followtheprocess.codes/cdlint/internal/decoder"
	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/lint"
	"go.followtheprocess.codes/cdlint/internal/syntax/parser"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run parses and decodes src, then runs every lint over the result. The
// source must be clean as far as the decoder is concerned so the test is
// exercising lints, not decode errors.
func run(t *testing.T, src string, cfg config.Config, graphOut io.Writer) []diag.Diagnostic {
	t.Helper()

	root, err := parser.New(t.Name(), []byte(src)).Parse()
	test.Ok(t, err)

	dec := decoder.New()
	cd, err := dec.Decode(root)
	test.Ok(t, err)
	test.Equal(t, len(dec.Diagnostics()), 0)

	diagnostics, err := lint.Run(cfg, &cd, graphOut)
	test.Ok(t, err)

	return diagnostics
}

// messages projects diagnostics down to their messages.
func messages(diagnostics []diag.Diagnostic) []string {
	msgs := make([]string, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		msgs = append(msgs, diagnostic.Message)
	}

	return msgs
}

func TestEmptyName(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Document under test
		want bool   // Whether the empty name warning should fire
	}{
		{
			name: "missing",
			src:  `{}`,
			want: true,
		},
		{
			name: "empty",
			src:  `{"Name": ""}`,
			want: true,
		},
		{
			name: "whitespace only",
			src:  `{"Name": "   "}`,
			want: true,
		},
		{
			name: "set",
			src:  `{"Name": "Hazard 6x2"}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := run(t, tt.src, config.Config{}, nil)

			if !tt.want {
				test.Equal(t, len(diagnostics), 0)
				return
			}

			test.Equal(t, len(diagnostics), 1)
			test.Equal(t, diagnostics[0].Severity, diag.Warning)
			test.Equal(t, diagnostics[0].Message, "custom difficulty name is empty")
		})
	}
}

func TestUndefinedDescriptors(t *testing.T) {
	tests := []struct {
		name string        // Name of the test case
		src  string        // Document under test
		cfg  config.Config // Config to lint with
		want []string      // Expected diagnostic messages, in order
	}{
		{
			name: "new descriptor with vanilla base",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CustomBoss": {"Base": "ED_Spider_Tank_Boss"}
				},
				"SpecialEnemies": {"add": ["ED_CustomBoss"]}
			}`,
			want: nil,
		},
		{
			name: "forward self reference",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CustomBoss": {"Base": "ED_CustomBoss"}
				},
				"SpecialEnemies": {"add": ["ED_CustomBoss"]}
			}`,
			want: []string{
				`attempt to reference "ED_CustomBoss" in its "Base" field that is not a pre-defined Enemy Descriptor`,
				// A failed definition is no definition at all, so the pool
				// reference dangles too
				`attempt to reference undefined Enemy Descriptor "ED_CustomBoss"`,
			},
		},
		{
			name: "undefined base on an override",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_Spider_Grunt": {"Base": "ED_DoesNotExist"}
				}
			}`,
			want: []string{
				`attempt to reference undefined Enemy Descriptor "ED_DoesNotExist" as "Base"`,
			},
		},
		{
			name: "pool reference to undefined descriptor",
			src: `{
				"Name": "Test",
				"CommonEnemies": {"add": ["ED_Missing"]}
			}`,
			want: []string{
				`attempt to reference undefined Enemy Descriptor "ED_Missing"`,
			},
		},
		{
			name: "extra descriptors from config are defined",
			src: `{
				"Name": "Test",
				"CommonEnemies": {"add": ["ED_Missing"]}
			}`,
			cfg:  config.Config{ExtraEnemyDescriptors: []string{"ED_Missing"}},
			want: nil,
		},
		{
			name: "backward reference between customs",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CustomGrunt": {"Base": "ED_Spider_Grunt"},
					"ED_CustomGruntVeteran": {"Base": "ED_CustomGrunt"}
				},
				"CommonEnemies": {"add": ["ED_CustomGrunt", "ED_CustomGruntVeteran"]}
			}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := run(t, tt.src, tt.cfg, nil)

			test.EqualFunc(t, messages(diagnostics), tt.want, slices.Equal)

			for _, diagnostic := range diagnostics {
				test.Equal(t, diagnostic.Severity, diag.Error)
			}
		})
	}
}

func TestAmbiguousPools(t *testing.T) {
	src := `{
		"Name": "Test",
		"CommonEnemies": {
			"add": ["ED_Spider_Grunt"],
			"remove": ["ED_Spider_Grunt"]
		}
	}`

	diagnostics := run(t, src, config.Config{}, nil)

	test.Equal(t, len(diagnostics), 1)

	diagnostic := diagnostics[0]
	test.Equal(t, diagnostic.Severity, diag.Warning)
	test.Equal(
		t,
		diagnostic.Message,
		`"ED_Spider_Grunt" is both added to and removed from the same enemy pool`,
	)

	test.Equal(t, len(diagnostic.Labels), 2)
	test.Equal(t, diagnostic.Labels[0].Msg, `"ED_Spider_Grunt" added here`)
	test.Equal(t, diagnostic.Labels[1].Msg, `"ED_Spider_Grunt" removed here`)
}

func TestAmbiguousPoolsDifferentPools(t *testing.T) {
	// Adding to one pool and removing from another is a legitimate edit
	src := `{
		"Name": "Test",
		"CommonEnemies": {"add": ["ED_Spider_Grunt"]},
		"DisruptiveEnemies": {"remove": ["ED_Spider_Grunt"]}
	}`

	diagnostics := run(t, src, config.Config{}, nil)
	test.Equal(t, len(diagnostics), 0)
}

func TestMinLargerThanMax(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Document under test
		want int    // Number of expected warnings
	}{
		{
			name: "weighted range inverted",
			src: `{
				"Name": "Test",
				"EnemyDiversity": [
					{"weight": 1.0, "range": {"min": 5, "max": 2}}
				]
			}`,
			want: 1,
		},
		{
			name: "weighted range ok",
			src: `{
				"Name": "Test",
				"EnemyDiversity": [
					{"weight": 1.0, "range": {"min": 2, "max": 5}}
				]
			}`,
			want: 0,
		},
		{
			name: "min equal to max ok",
			src: `{
				"Name": "Test",
				"EnemyWaveInterval": [
					{"weight": 1.0, "range": {"min": 90, "max": 90}}
				]
			}`,
			want: 0,
		},
		{
			name: "plain range inverted",
			src: `{
				"Name": "Test",
				"MinPoolSize": {"min": 40, "max": 20}
			}`,
			want: 1,
		},
		{
			name: "disruptive pool count inverted",
			src: `{
				"Name": "Test",
				"DisruptiveEnemyPoolCount": {"min": 3, "max": 1}
			}`,
			want: 1,
		},
		{
			name: "multiple inverted bins",
			src: `{
				"Name": "Test",
				"VeteranNormal": [
					{"weight": 1.0, "range": {"min": 0.9, "max": 0.3}},
					{"weight": 2.0, "range": {"min": 0.1, "max": 0.5}},
					{"weight": 3.0, "range": {"min": 1.0, "max": 0.0}}
				]
			}`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := run(t, tt.src, config.Config{}, nil)

			test.Equal(t, len(diagnostics), tt.want)

			for _, diagnostic := range diagnostics {
				test.Equal(t, diagnostic.Severity, diag.Warning)
				test.Equal(
					t,
					diagnostic.Message,
					"min > max in this range, which may lead to surprising behavior in Custom Difficulty and in game",
				)
				test.Equal(t, len(diagnostic.Labels), 2)
			}
		})
	}
}

func TestUnusedCustomDescriptors(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Document under test
		want []string // Expected diagnostic messages, in order
	}{
		{
			name: "unused custom",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CustomBoss": {"Base": "ED_Spider_Tank_Boss"}
				}
			}`,
			want: []string{
				`custom Enemy Descriptor "ED_CustomBoss" is defined but never used`,
			},
		},
		{
			name: "used in a remove still counts",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CustomBoss": {"Base": "ED_Spider_Tank_Boss"}
				},
				"DisruptiveEnemies": {"remove": ["ED_CustomBoss"]}
			}`,
			want: nil,
		},
		{
			name: "vanilla override needs no pool edit",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_Spider_Grunt": {"Base": "ED_Spider_Grunt", "Scale": 2.0}
				}
			}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := run(t, tt.src, config.Config{}, nil)

			test.EqualFunc(t, messages(diagnostics), tt.want, slices.Equal)
		})
	}
}

func TestCyclicReferences(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Document under test
		want []string // Expected diagnostic messages, in order
	}{
		{
			name: "three cycle",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CycleA": {"Base": "ED_CycleB"},
					"ED_CycleB": {"Base": "ED_CycleC"},
					"ED_CycleC": {"Base": "ED_CycleA"}
				},
				"CommonEnemies": {"add": ["ED_CycleA", "ED_CycleB", "ED_CycleC"]}
			}`,
			want: []string{
				`cycle detected in Enemy Descriptor "Base" references`,
				`cycle [1]: "ED_CycleC" -> "ED_CycleA" -> "ED_CycleB" -> "ED_CycleC"`,
			},
		},
		{
			name: "three cycle different declaration order",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_CycleB": {"Base": "ED_CycleC"},
					"ED_CycleA": {"Base": "ED_CycleB"},
					"ED_CycleC": {"Base": "ED_CycleA"}
				},
				"CommonEnemies": {"add": ["ED_CycleA", "ED_CycleB", "ED_CycleC"]}
			}`,
			want: []string{
				`cycle detected in Enemy Descriptor "Base" references`,
				`cycle [1]: "ED_CycleA" -> "ED_CycleB" -> "ED_CycleC" -> "ED_CycleA"`,
			},
		},
		{
			name: "self loop alone is tolerated",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_Spider_Grunt": {"Base": "ED_Spider_Grunt", "Scale": 1.5}
				}
			}`,
			want: nil,
		},
		{
			name: "self loop referenced later",
			src: `{
				"Name": "Test",
				"EnemyDescriptors": {
					"ED_Spider_Grunt": {"Base": "ED_Spider_Grunt", "Scale": 1.5},
					"ED_CustomGrunt": {"Base": "ED_Spider_Grunt"}
				},
				"CommonEnemies": {"add": ["ED_CustomGrunt"]}
			}`,
			want: []string{
				`"ED_Spider_Grunt" is self-referential, but "ED_CustomGrunt" references it later, which will cause a crash`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := run(t, tt.src, config.Config{}, nil)

			test.EqualFunc(t, messages(diagnostics), tt.want, slices.Equal)

			for _, diagnostic := range diagnostics {
				test.Equal(t, diagnostic.Severity, diag.Error)
			}
		})
	}
}

func TestCyclicReferencesSelfLoopDetail(t *testing.T) {
	src := `{
		"Name": "Test",
		"EnemyDescriptors": {
			"ED_Spider_Grunt": {"Base": "ED_Spider_Grunt"},
			"ED_CustomGrunt": {"Base": "ED_Spider_Grunt"}
		},
		"CommonEnemies": {"add": ["ED_CustomGrunt"]}
	}`

	diagnostics := run(t, src, config.Config{}, nil)
	test.Equal(t, len(diagnostics), 1)

	diagnostic := diagnostics[0]
	test.Equal(
		t,
		diagnostic.Help,
		`consider moving the self-referential "ED_Spider_Grunt" to the end of the Enemy Descriptors list`,
	)

	test.Equal(t, len(diagnostic.Labels), 1)
	test.Equal(
		t,
		diagnostic.Labels[0].Msg,
		`"ED_CustomGrunt" references "ED_Spider_Grunt" here`,
	)
}

func TestGraphExport(t *testing.T) {
	src := `{
		"Name": "Test",
		"EnemyDescriptors": {
			"ED_CustomBoss": {"Base": "ED_Spider_Tank_Boss"}
		},
		"SpecialEnemies": {"add": ["ED_CustomBoss"]}
	}`

	cfg := config.Config{GenerateCyclicReferenceGraph: true}

	var graph strings.Builder
	diagnostics := run(t, src, cfg, &graph)
	test.Equal(t, len(diagnostics), 0)

	dot := graph.String()
	test.True(t, strings.HasPrefix(dot, "digraph {"))
	test.True(t, strings.Contains(dot, `label = "ED_CustomBoss"`))
	test.True(t, strings.Contains(dot, `label = "ED_Spider_Tank_Boss"`))
	test.True(t, strings.Contains(dot, "->"))
}

func TestGraphExportDisabled(t *testing.T) {
	src := `{"Name": "Test"}`

	var graph strings.Builder
	diagnostics := run(t, src, config.Config{}, &graph)

	test.Equal(t, len(diagnostics), 0)
	test.Equal(t, graph.String(), "")
}

func TestRunOrder(t *testing.T) {
	// One document tripping several lints at once, the output order is the
	// lint registration order
	src := `{
		"Name": "",
		"EnemyDescriptors": {
			"ED_Lonely": {"Base": "ED_Spider_Grunt"}
		},
		"MinPoolSize": {"min": 40, "max": 20}
	}`

	want := []string{
		"custom difficulty name is empty",
		"min > max in this range, which may lead to surprising behavior in Custom Difficulty and in game",
		`custom Enemy Descriptor "ED_Lonely" is defined but never used`,
	}

	diagnostics := run(t, src, config.Config{}, nil)
	test.EqualFunc(t, messages(diagnostics), want, slices.Equal)
}
