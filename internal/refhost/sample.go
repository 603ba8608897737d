package refhost

import "github.com/whiskergen/searchcore/internal/trace"

// NewSampleProgram returns a small bundled program used by the test
// suite and the CLI's simulate subcommand: a scoreboard with a button
// actuator and a numeric score actuator, guarded the way a simple
// Scratch scoring script would be.
func NewSampleProgram() *Program {
	return &Program{
		ProgramName: "scoreboard",
		Statements: []Statement{
			{ID: trace.StatementID("on-click"), Guard: &Guard{ActuatorID: "button", Comparator: CmpIsTrue}},
			{ID: trace.StatementID("score-high"), Guard: &Guard{ActuatorID: "score", Comparator: CmpGte, Operand: 100}},
			{ID: trace.StatementID("score-low"), Guard: &Guard{ActuatorID: "score", Comparator: CmpLt, Operand: 0}},
			{ID: trace.StatementID("flag-raised"), Guard: &Guard{ActuatorID: "flag", Comparator: CmpIsTrue}},
			{ID: trace.StatementID("idle"), Guard: nil},
		},
	}
}
