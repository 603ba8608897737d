package testgen

import (
	"context"
	"testing"

	"github.com/whiskergen/searchcore/internal/config"
	"github.com/whiskergen/searchcore/internal/refhost"
)

func TestNewRejectsNonTestChromosome(t *testing.T) {
	cfg := config.Default()
	cfg.Chromosome = "bitstring"
	host := refhost.New(refhost.NewSampleProgram())
	if _, err := New(cfg, host, refhost.NewSampleProgram()); err == nil {
		t.Fatalf("expected an error for a bitstring chromosome through the façade")
	}
}

func TestNewRejectsMissingHost(t *testing.T) {
	cfg := config.Default()
	cfg.Chromosome = "test"
	if _, err := New(cfg, nil, nil); err == nil {
		t.Fatalf("expected an error when no host/program is supplied")
	}
}

func TestRunOnSampleProgramCoversSomeGoals(t *testing.T) {
	cfg := config.Default()
	cfg.Chromosome = "test"
	cfg.Algorithm = "random"
	cfg.ChromosomeLength = 5
	cfg.FixedIterations = 300
	cfg.ActuatorIDs = []string{"button", "score", "flag"}
	cfg.Seed = 42

	program := refhost.NewSampleProgram()
	host := refhost.New(program)

	gen, err := New(cfg, host, program)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	suite, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gen.Archive().Len() == 0 {
		t.Fatalf("expected the sample program's easily reached goals to be covered")
	}
	if len(suite.Tests) == 0 {
		t.Fatalf("expected at least one generated test")
	}
	for _, test := range suite.Tests {
		if len(test.CoveredGoals) == 0 {
			t.Fatalf("every returned test should be attributed to at least one covered goal")
		}
	}
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Chromosome = "test"
	cfg.Algorithm = "random"
	cfg.ChromosomeLength = 4
	cfg.FixedIterations = 100
	cfg.ActuatorIDs = []string{"button", "score"}
	cfg.Seed = 7

	run := func() int {
		program := refhost.NewSampleProgram()
		host := refhost.New(program)
		gen, err := New(cfg, host, program)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := gen.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return gen.Archive().Len()
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("expected the same seed to cover the same number of goals, got %d and %d", a, b)
	}
}
