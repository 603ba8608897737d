// Command whiskergen drives the search core against the reference
// ExecutionHost, mirroring the teacher's single flag.Parse()-then-run
// shape (main.go's cfg := engine.DefaultConfig() followed by flag.*Var
// calls bound directly to config fields), generalized into two verbs:
// "generate" runs a configured search algorithm to produce a test suite,
// and "simulate" replays a single chromosome against the sample program
// for inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/config"
	"github.com/whiskergen/searchcore/internal/refhost"
	"github.com/whiskergen/searchcore/internal/report"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/testgen"
)

func main() {
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		verb := os.Args[1]
		os.Args = append(os.Args[:1], os.Args[2:]...)
		switch verb {
		case "simulate":
			runSimulate()
			return
		case "generate":
			// falls through to the default flow below
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q (expected \"generate\" or \"simulate\")\n", verb)
			os.Exit(1)
		}
	}
	runGenerate()
}

func runGenerate() {
	defaults := config.Default()

	var (
		configPath       string
		verbose          bool
		algorithm        string
		chromosomeKind   string
		populationSize   int
		chromosomeLength int
		crossoverOp      string
		crossoverProb    float64
		mutationOp       string
		mutationProb     float64
		mutationAlpha    float64
		selectionOp      string
		tournamentK      int
		seed             int64
		workers          int
		format           string
		stoppingCond     string
		fixedIterations  int
		fixedTimeSeconds int
		actuators        string
	)

	flag.StringVar(&configPath, "config", "", "path to a TOML config file, layered under Default() and under these flags")
	flag.BoolVar(&verbose, "verbose", false, "log the fully resolved configuration to stderr before running")
	flag.StringVar(&algorithm, "algorithm", defaults.Algorithm, "search algorithm (random, one-plus-one, simplega, mosa, mio)")
	flag.StringVar(&chromosomeKind, "chromosome", defaults.Chromosome, "chromosome genotype (test, variablelengthtest)")
	flag.IntVar(&populationSize, "population-size", defaults.PopulationSize, "population size for population-based algorithms")
	flag.IntVar(&chromosomeLength, "chromosome-length", defaults.ChromosomeLength, "initial event-sequence length")
	flag.StringVar(&crossoverOp, "crossover-operator", defaults.CrossoverOperator, "crossover operator (singlepoint, singlepointrelative)")
	flag.Float64Var(&crossoverProb, "crossover-probability", defaults.CrossoverProbability, "crossover probability")
	flag.StringVar(&mutationOp, "mutation-operator", defaults.MutationOperator, "mutation operator (variablelength)")
	flag.Float64Var(&mutationProb, "mutation-probability", defaults.MutationProbability, "mutation probability")
	flag.Float64Var(&mutationAlpha, "mutation-alpha", defaults.MutationAlpha, "length-drift bias for variable-length mutation")
	flag.StringVar(&selectionOp, "selection-operator", defaults.SelectionOperator, "selection operator (rank, tournament); only simplega honours this")
	flag.IntVar(&tournamentK, "tournament-k", defaults.TournamentK, "tournament size")
	flag.Int64Var(&seed, "seed", defaults.Seed, "random seed (0 = derive from wall clock)")
	flag.IntVar(&workers, "workers", defaults.Workers, "number of parallel evaluation workers")
	flag.StringVar(&format, "format", defaults.Format, "output format (text, json)")
	flag.StringVar(&stoppingCond, "stopping-condition", defaults.StoppingCondition, "fixed-iterations, fixed-time, optimal-solution, fixed-iterations-or-optimal")
	flag.IntVar(&fixedIterations, "fixed-iterations", defaults.FixedIterations, "iteration budget")
	flag.IntVar(&fixedTimeSeconds, "fixed-time-seconds", 0, "time budget in seconds (0 = unused)")
	flag.StringVar(&actuators, "actuators", "button,score,flag", "comma-separated actuator ids the generator may address")
	flag.Parse()

	// Only the flags the user actually typed should override a -config
	// file's values; untouched flags would otherwise silently clobber
	// whatever the file set, since every flag.*Var above also carries a
	// Default()-derived value.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(configPath, func(c *config.Configuration) {
		if set["algorithm"] {
			c.Algorithm = algorithm
		}
		if set["chromosome"] {
			c.Chromosome = chromosomeKind
		}
		if set["population-size"] {
			c.PopulationSize = populationSize
		}
		if set["chromosome-length"] {
			c.ChromosomeLength = chromosomeLength
		}
		if set["crossover-operator"] {
			c.CrossoverOperator = crossoverOp
		}
		if set["crossover-probability"] {
			c.CrossoverProbability = crossoverProb
		}
		if set["mutation-operator"] {
			c.MutationOperator = mutationOp
		}
		if set["mutation-probability"] {
			c.MutationProbability = mutationProb
		}
		if set["mutation-alpha"] {
			c.MutationAlpha = mutationAlpha
		}
		if set["selection-operator"] {
			c.SelectionOperator = selectionOp
		}
		if set["tournament-k"] {
			c.TournamentK = tournamentK
		}
		if set["seed"] {
			c.Seed = seed
		}
		if set["workers"] {
			c.Workers = workers
		}
		if set["format"] {
			c.Format = format
		}
		if set["stopping-condition"] {
			c.StoppingCondition = stoppingCond
		}
		if set["fixed-iterations"] {
			c.FixedIterations = fixedIterations
		}
		if set["fixed-time-seconds"] {
			c.FixedTime = time.Duration(fixedTimeSeconds) * time.Second
		}
		// A -config file may already have set actuator-ids; only fall
		// back to the flag's own default when neither the file nor an
		// explicit -actuators flag supplied any.
		if set["actuators"] || len(c.ActuatorIDs) == 0 {
			c.ActuatorIDs = strings.Split(actuators, ",")
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "resolved configuration: %+v\n", cfg)
	}

	program := refhost.NewSampleProgram()
	host := refhost.New(program)

	gen, err := testgen.New(cfg, host, program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	suite, err := gen.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch cfg.Format {
	case "json":
		if err := report.WriteJSONFinal(os.Stdout, suite); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		report.WriteTextFinal(os.Stdout, suite)
	}
}

// runSimulate generates a random event sequence (sized by -length, drawn
// from -seed), replays it against the sample program and prints the
// events and the statements they executed, for interactively inspecting
// the reference ExecutionHost's behaviour.
func runSimulate() {
	var seed int64
	var length int
	flag.Int64Var(&seed, "seed", 1, "random seed for the simulated event sequence")
	flag.IntVar(&length, "length", 6, "number of events to simulate")
	flag.Parse()

	program := refhost.NewSampleProgram()
	host := refhost.New(program)

	r := rng.New(seed)
	generator := chromosome.TestChromosomeGenerator{
		InitLength:  length,
		ActuatorIDs: []string{"button", "score", "flag"},
		EventKinds:  []chromosome.EventKind{chromosome.EventClick, chromosome.EventKeyPress, chromosome.EventSlider, chromosome.EventBoolToggle},
	}
	c := generator.Generate(r).(*chromosome.TestChromosome)

	tr, err := host.Evaluate(context.Background(), c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Simulated %d events against %q:\n", len(c.Events), program.Name())
	for _, e := range c.Events {
		fmt.Printf("  actuator=%-8s kind=%d int=%-4d bool=%t\n", e.ActuatorID, e.Kind, e.IntArg, e.BoolArg)
	}
	fmt.Println("Executed statements:")
	for id := range tr.ExecutedStatements {
		fmt.Printf("  %s\n", id)
	}
}
