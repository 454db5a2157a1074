package tabs

import (
	"fmt"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// ParseCloseApproaches parses the .clolin file of an object: a whitespace
// table with a header row.
func ParseCloseApproaches(name, text string) (*model.CloseApproaches, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: file empty for object %s", model.ErrDataUnavailable, name)
	}
	lines := table.NonBlank(table.Lines(text))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: file empty for object %s", model.ErrDataUnavailable, name)
	}
	header := strings.Fields(lines[0])
	t := table.FromRecords(header, table.Fields(lines[1:]))
	return &model.CloseApproaches{Object: name, Table: t}, nil
}
