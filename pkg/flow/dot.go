package flow

import (
	"fmt"
	"strings"
)

// ToDOT builds a Graphviz digraph of the step sequence: one node per step
// labeled with its heading and count, one edge per transition annotated
// with the drop when records were excluded. This is a quick structural
// preview, not the styled layout.
func ToDOT(steps []Step) (string, error) {
	if len(steps) == 0 {
		return "", ErrEmptyInput
	}

	var b strings.Builder
	b.WriteString("digraph cohortflow {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\"];\n")

	for i, s := range steps {
		fmt.Fprintf(&b, "  n%d [label=%q];\n", i, fmt.Sprintf("%s\n(n = %d)", s.heading(i), s.Count))
	}
	for i := 1; i < len(steps); i++ {
		delta := steps[i-1].Count - steps[i].Count
		if delta > 0 {
			fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", i-1, i, fmt.Sprintf("-%d", delta))
			continue
		}
		fmt.Fprintf(&b, "  n%d -> n%d;\n", i-1, i)
	}

	b.WriteString("}\n")
	return b.String(), nil
}
