package tabs

import (
	"strings"
	"testing"
)

// cell is a value placed at a fixed character position.
type cell struct {
	at   int
	text string
}

// layout renders cells into one fixed-width line.
func layout(t *testing.T, cells ...cell) string {
	t.Helper()
	var buf []rune
	for _, c := range cells {
		for len(buf) < c.at {
			buf = append(buf, ' ')
		}
		if len(buf) > c.at {
			t.Fatalf("cell %q at %d overlaps previous cell", c.text, c.at)
		}
		buf = append(buf, []rune(c.text)...)
	}
	return string(buf)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
