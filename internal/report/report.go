// Package report renders a testgen.TestSuite as human-readable text or
// JSON, grounded on the teacher's pkg/engine/output.go WriteTextFinal/
// WriteJSONFinal pair. The LaTeX hall-of-fame writer and its pdflatex
// compile step have no analogue here — there is no typeset artifact for
// a generated test suite — so only the text/JSON final-report shape
// survives the transformation (see DESIGN.md).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/whiskergen/searchcore/internal/testgen"
)

// WriteTextFinal writes suite in human-readable form: one line per test
// listing its covered goals and event count, followed by a summary line.
func WriteTextFinal(w io.Writer, suite testgen.TestSuite) {
	fmt.Fprintln(w, "========== TEST SUITE ==========")
	fmt.Fprintf(w, "Run:   %s\n", suite.RunID)
	fmt.Fprintf(w, "Tests: %d\n", len(suite.Tests))
	for i, test := range suite.Tests {
		fmt.Fprintf(w, "  #%-3d events=%-3d goals=%v\n", i+1, len(test.Events), test.CoveredGoals)
	}
	fmt.Fprintln(w, "--- statistics ---")
	for name, value := range suite.Statistics.Counters {
		fmt.Fprintf(w, "  %s: %d\n", name, value)
	}
	for name, value := range suite.Statistics.Gauges {
		fmt.Fprintf(w, "  %s: %.4f\n", name, value)
	}
	fmt.Fprintf(w, "  elapsed: %s\n", suite.Statistics.Elapsed)
	fmt.Fprintln(w, "=================================")
}

// WriteJSONFinal writes suite as indented JSON.
func WriteJSONFinal(w io.Writer, suite testgen.TestSuite) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(suite)
}
