package lists

import (
	"strings"

	"github.com/nao1215/neocc/internal/table"
)

// ParsePlain returns one designator per non-blank line with whitespace
// runs collapsed and a leading "# " comment marker removed.
func ParsePlain(text string) []string {
	lines := table.NonBlank(table.Lines(text))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "# ")
		if l = table.CollapseSpaces(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
