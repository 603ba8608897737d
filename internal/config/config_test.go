package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/whiskergen/searchcore/internal/errs"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() must be valid, got %v", err)
	}
}

func TestValidateRejectsUnknownAlgorithm(t *testing.T) {
	cfg := Default()
	cfg.Algorithm = "bogus"
	err := cfg.Validate()
	if !errors.Is(err, errs.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeProbabilities(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"crossover probability too high", func(c *Configuration) { c.CrossoverProbability = 1.5 }},
		{"mutation probability negative", func(c *Configuration) { c.MutationProbability = -0.1 }},
		{"population size zero", func(c *Configuration) { c.PopulationSize = 0 }},
		{"chromosome length zero", func(c *Configuration) { c.ChromosomeLength = 0 }},
		{"start of focused phase zero", func(c *Configuration) { c.StartOfFocusedPhase = 0 }},
		{"start of focused phase above one", func(c *Configuration) { c.StartOfFocusedPhase = 1.2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), errs.ErrInvalidConfiguration)
		})
	}
}

func TestValidateRequiresActuatorIDsForVariableLengthTestChromosome(t *testing.T) {
	cfg := Default()
	cfg.Chromosome = "variablelengthtest"
	cfg.ActuatorIDs = nil
	require.ErrorIs(t, cfg.Validate(), errs.ErrInvalidConfiguration)

	cfg.ActuatorIDs = []string{"sprite1"}
	require.NoError(t, cfg.Validate())
}

func TestLoadLayersTomlFileThenOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "algorithm = \"mosa\"\npopulation-size = 42\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := Load(path, func(c *Configuration) {
		c.Seed = 7
	})
	require.NoError(t, err)

	want := Default()
	want.Algorithm = "mosa"
	want.PopulationSize = 42
	want.Seed = 7
	require.Equal(t, want, cfg)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	_, err := Load("", func(c *Configuration) {
		c.FixedTime = 0
		c.Algorithm = "random"
		c.SelectionOperator = "not-a-real-operator"
	})
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestDefaultFixedTimeIsZero(t *testing.T) {
	require.Equal(t, time.Duration(0), Default().FixedTime)
}
