package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.followtheprocess.codes/cdlint/internal/config"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoad(t *testing.T) {
	contents := `extra_enemy_descriptors = ["ED_ModdedEnemy", "ED_AnotherOne"]
generate_cyclic_reference_graph = true
`

	path := filepath.Join(t.TempDir(), "cdlint.toml")
	err := os.WriteFile(path, []byte(contents), 0o644)
	test.Ok(t, err)

	cfg, err := config.Load(path)
	test.Ok(t, err)

	test.EqualFunc(
		t,
		cfg.ExtraEnemyDescriptors,
		[]string{"ED_ModdedEnemy", "ED_AnotherOne"},
		slices.Equal,
	)
	test.True(t, cfg.GenerateCyclicReferenceGraph)
}

func TestLoadMissing(t *testing.T) {
	// A missing config file is fine, you just get the defaults
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	test.Ok(t, err)

	test.Equal(t, len(cfg.ExtraEnemyDescriptors), 0)
	test.True(t, !cfg.GenerateCyclicReferenceGraph)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cdlint.toml")
	err := os.WriteFile(path, []byte("extra_enemy_descriptors = not valid"), 0o644)
	test.Ok(t, err)

	_, err = config.Load(path)
	test.Err(t, err)
}
