package chromosome

import (
	"fmt"
	"strings"
)

// Signature returns a deterministic string key for c's gene content,
// used by search algorithms to deduplicate chromosomes that arrived
// through independent clones (spec.md §4.7.1's "one chromosome per newly
// covered goal, deduplicated" and MOSA/MIO's "distinct(archive.values())").
// Two chromosomes with equal genes produce equal signatures regardless
// of identity.
func Signature(c Chromosome) string {
	switch v := c.(type) {
	case *BitString:
		parts := make([]string, len(v.Genes))
		for i, g := range v.Genes {
			if g {
				parts[i] = "1"
			} else {
				parts[i] = "0"
			}
		}
		return "bits:" + strings.Join(parts, "")
	case *IntegerList:
		parts := make([]string, len(v.Genes))
		for i, g := range v.Genes {
			parts[i] = fmt.Sprintf("%d", g)
		}
		return "ints:" + strings.Join(parts, ",")
	case *TestChromosome:
		parts := make([]string, len(v.Events))
		for i, e := range v.Events {
			parts[i] = fmt.Sprintf("%s|%d|%d|%t", e.ActuatorID, e.Kind, e.IntArg, e.BoolArg)
		}
		return "events:" + strings.Join(parts, ";")
	default:
		return fmt.Sprintf("%p", c)
	}
}
