// Package config resolves the recognized configuration keys of
// spec.md §6 into a validated Configuration value, layering defaults,
// an optional TOML file, and explicit overrides the way the teacher's
// cmd/whiskergen flag set layers onto engine.DefaultConfig.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/whiskergen/searchcore/internal/errs"
)

// Configuration mirrors spec.md §6's external configuration surface.
type Configuration struct {
	Algorithm      string `toml:"algorithm"`
	TestGenerator  string `toml:"test-generator"`
	Chromosome     string `toml:"chromosome"`
	PopulationSize int    `toml:"population-size"`
	ChromosomeLength int  `toml:"chromosome-length"`

	CrossoverOperator    string  `toml:"crossover.operator"`
	CrossoverProbability float64 `toml:"crossover.probability"`

	MutationOperator    string  `toml:"mutation.operator"`
	MutationProbability float64 `toml:"mutation.probability"`
	MutationAlpha       float64 `toml:"mutation.alpha"`

	MutationMaxCountStart        int `toml:"mutation.maxMutationCountStart"`
	MutationMaxCountFocusedPhase int `toml:"mutation.maxMutationCountFocusedPhase"`

	SelectionOperator string `toml:"selection.operator"`
	TournamentK       int    `toml:"selection.tournamentK"`

	RandomSelectionProbabilityStart        float64 `toml:"selection.randomSelectionProbabilityStart"`
	RandomSelectionProbabilityFocusedPhase float64 `toml:"selection.randomSelectionProbabilityFocusedPhase"`

	ArchiveMaxSizeStart        int `toml:"archive.maxArchiveSizeStart"`
	ArchiveMaxSizeFocusedPhase int `toml:"archive.maxArchiveSizeFocusedPhase"`

	StartOfFocusedPhase float64 `toml:"startOfFocusedPhase"`

	StoppingCondition string        `toml:"stopping.condition"`
	FixedIterations   int           `toml:"stopping.fixedIterations"`
	FixedTime         time.Duration `toml:"stopping.fixedTime"`

	ActuatorIDs []string `toml:"actuator-ids"`

	Seed    int64 `toml:"seed"`
	Workers int   `toml:"workers"`
	Format  string `toml:"format"`
}

// Default returns a configuration with sensible defaults, the way the
// teacher's engine.DefaultConfig seeds its Config before flags or a file
// override any field.
func Default() Configuration {
	return Configuration{
		Algorithm:                       "random",
		TestGenerator:                   "random",
		Chromosome:                      "bitstring",
		PopulationSize:                  50,
		ChromosomeLength:                10,
		CrossoverOperator:               "singlepoint",
		CrossoverProbability:            0.7,
		MutationOperator:                "bitflip",
		MutationProbability:             0.3,
		MutationAlpha:                   0.5,
		MutationMaxCountStart:           1,
		MutationMaxCountFocusedPhase:    10,
		SelectionOperator:               "rank",
		TournamentK:                     5,
		RandomSelectionProbabilityStart:        0.5,
		RandomSelectionProbabilityFocusedPhase: 0.0,
		ArchiveMaxSizeStart:             10,
		ArchiveMaxSizeFocusedPhase:      1,
		StartOfFocusedPhase:             0.5,
		StoppingCondition:               "fixed-iterations",
		FixedIterations:                 1000,
		FixedTime:                       0,
		Seed:                            0,
		Workers:                         runtime.NumCPU(),
		Format:                          "text",
	}
}

// Load layers a TOML file (if tomlPath is non-empty) over Default, then
// applies overrides last. overrides is typically populated from flags by
// the caller before Load runs validation.
func Load(tomlPath string, overrides func(*Configuration)) (Configuration, error) {
	cfg := Default()
	if tomlPath != "" {
		data, err := os.ReadFile(tomlPath)
		if err != nil {
			return Configuration{}, fmt.Errorf("%w: reading %s: %v", errs.ErrInvalidConfiguration, tomlPath, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Configuration{}, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidConfiguration, tomlPath, err)
		}
	}
	if overrides != nil {
		overrides(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

var validAlgorithms = map[string]bool{"random": true, "one-plus-one": true, "simplega": true, "mosa": true, "mio": true}
var validChromosomes = map[string]bool{"bitstring": true, "integerlist": true, "test": true, "variablelengthtest": true}
var validCrossovers = map[string]bool{"singlepoint": true, "singlepointrelative": true}
var validMutations = map[string]bool{"bitflip": true, "integerlist": true, "variablelength": true}
var validSelections = map[string]bool{"rank": true, "tournament": true}

// Validate checks the algorithm, chromosome, crossover, mutation and
// selection names against spec.md §6's recognized value sets, the
// population size, chromosome length, crossover and mutation
// probabilities and startOfFocusedPhase against their numeric ranges,
// and that a variable-length test chromosome has actuator ids. It
// returns an error wrapping errs.ErrInvalidConfiguration describing the
// first problem found. The remaining fields (test-generator,
// stopping.condition, selection.tournamentK, format, and the other
// numeric fields) are not checked here.
func (c Configuration) Validate() error {
	if !validAlgorithms[c.Algorithm] {
		return fmt.Errorf("%w: unknown algorithm %q", errs.ErrInvalidConfiguration, c.Algorithm)
	}
	if !validChromosomes[c.Chromosome] {
		return fmt.Errorf("%w: unknown chromosome %q", errs.ErrInvalidConfiguration, c.Chromosome)
	}
	if !validCrossovers[c.CrossoverOperator] {
		return fmt.Errorf("%w: unknown crossover operator %q", errs.ErrInvalidConfiguration, c.CrossoverOperator)
	}
	if !validMutations[c.MutationOperator] {
		return fmt.Errorf("%w: unknown mutation operator %q", errs.ErrInvalidConfiguration, c.MutationOperator)
	}
	if !validSelections[c.SelectionOperator] {
		return fmt.Errorf("%w: unknown selection operator %q", errs.ErrInvalidConfiguration, c.SelectionOperator)
	}
	if c.PopulationSize < 1 {
		return fmt.Errorf("%w: population-size must be >= 1", errs.ErrInvalidConfiguration)
	}
	if c.ChromosomeLength < 1 {
		return fmt.Errorf("%w: chromosome-length must be >= 1", errs.ErrInvalidConfiguration)
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return fmt.Errorf("%w: crossover.probability must be in [0,1]", errs.ErrInvalidConfiguration)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return fmt.Errorf("%w: mutation.probability must be in [0,1]", errs.ErrInvalidConfiguration)
	}
	if c.StartOfFocusedPhase <= 0 || c.StartOfFocusedPhase > 1 {
		return fmt.Errorf("%w: startOfFocusedPhase must be in (0,1]", errs.ErrInvalidConfiguration)
	}
	if c.Chromosome == "variablelengthtest" && len(c.ActuatorIDs) == 0 {
		return fmt.Errorf("%w: a variable-length test chromosome requires at least one actuator id", errs.ErrInvalidConfiguration)
	}
	return nil
}
