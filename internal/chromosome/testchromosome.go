package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// EventKind identifies the shape of an input event's payload.
type EventKind int

const (
	// EventClick fires an actuator with no payload (a block's "when this
	// sprite clicked" hat, or a stage click).
	EventClick EventKind = iota
	// EventKeyPress fires an actuator carrying an integer key code.
	EventKeyPress
	// EventSlider fires an actuator carrying an integer slider value.
	EventSlider
	// EventBoolToggle fires an actuator carrying a boolean state.
	EventBoolToggle
)

// InputEvent is one gene of a TestChromosome: a single simulated input to
// the program under test, addressed to one actuator (a sprite input, a
// stage variable, a sensor mock).
type InputEvent struct {
	ActuatorID string
	Kind       EventKind
	IntArg     int
	BoolArg    bool
}

func cloneEvent(e InputEvent) InputEvent { return e }

// TestChromosome is a variable-length sequence of InputEvents: the genes
// encode the sequence of input events the reference ExecutionHost will
// replay against the program under test.
type TestChromosome struct {
	Events      []InputEvent
	ActuatorIDs []string
	EventKinds  []EventKind
	mutation    Mutation
	crossover   Crossover
}

// NewTestChromosome constructs a TestChromosome wired to the given
// operators. A nil mutation or crossover defaults to
// VariableLengthMutation/SinglePointRelativeCrossover, the canonical
// pairing for a variable-length genotype (spec.md §4.2).
func NewTestChromosome(events []InputEvent, actuatorIDs []string, kinds []EventKind, mutation Mutation, crossover Crossover) *TestChromosome {
	if mutation == nil {
		mutation = VariableLengthMutation{ReplaceP: 0.34, InsertP: 0.33, DeleteP: 0.33, Alpha: 0.5}
	}
	if crossover == nil {
		crossover = SinglePointRelativeCrossover{}
	}
	copied := make([]InputEvent, len(events))
	for i, e := range events {
		copied[i] = cloneEvent(e)
	}
	return &TestChromosome{
		Events:      copied,
		ActuatorIDs: actuatorIDs,
		EventKinds:  kinds,
		mutation:    mutation,
		crossover:   crossover,
	}
}

func (t *TestChromosome) Len() int { return len(t.Events) }

func (t *TestChromosome) Clone() Chromosome {
	return NewTestChromosome(t.Events, t.ActuatorIDs, t.EventKinds, t.mutation, t.crossover)
}

func (t *TestChromosome) Mutate(r *rng.Source) Chromosome {
	return t.mutation.Mutate(r, t)
}

func (t *TestChromosome) Crossover(r *rng.Source, other Chromosome) (Chromosome, Chromosome) {
	return t.crossover.Cross(r, t, other)
}

func (t *TestChromosome) withEvents(events []InputEvent) *TestChromosome {
	return NewTestChromosome(events, t.ActuatorIDs, t.EventKinds, t.mutation, t.crossover)
}

// randomEvent draws a uniformly random event from the chromosome's
// configured actuator/kind universe.
func (t *TestChromosome) randomEvent(r *rng.Source) InputEvent {
	actuator := ""
	if len(t.ActuatorIDs) > 0 {
		actuator = rng.Pick(r, t.ActuatorIDs)
	}
	kind := EventClick
	if len(t.EventKinds) > 0 {
		kind = rng.Pick(r, t.EventKinds)
	}
	switch kind {
	case EventKeyPress:
		return InputEvent{ActuatorID: actuator, Kind: kind, IntArg: r.NextIntn(0, 128)}
	case EventSlider:
		return InputEvent{ActuatorID: actuator, Kind: kind, IntArg: r.NextIntn(-100, 101)}
	case EventBoolToggle:
		return InputEvent{ActuatorID: actuator, Kind: kind, BoolArg: r.NextBool()}
	default:
		return InputEvent{ActuatorID: actuator, Kind: EventClick}
	}
}
