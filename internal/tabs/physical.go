package tabs

import (
	"fmt"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

const (
	propertyLabelClass = "col-lg-3 font-weight-bold d-none d-lg-block"
	propertyValueClass = "col-12"
	diameterSpanID     = "_NEOSearch_WAR_PSDBportlet_:j_idt10:j_idt639:diameter-value"
)

// The page renders the labels and values of every tab; these ranges select
// the physical-properties ones.
const (
	propertyLabelFirst = 13
	propertyLabelEnd   = 27
	propertyValueEnd   = 42
	propertySourcesIdx = 2
)

// Value slots holding unit drop-downs or the diameter widget.
var propertyValueOverrides = map[int]string{
	13: "deg",
	16: "deg",
	34: "m",
}

const propertyDiameterSlot = 33

// ParsePhysicalProperties parses the physical-properties page of an object.
func ParsePhysicalProperties(name, text string) (*model.PhysicalProperties, error) {
	p, err := parsePage(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	notFound := fmt.Errorf("%w: object not found: %s", model.ErrDataUnavailable, name)

	labels := p.findAll("div", "class", classIs(propertyLabelClass))
	values := p.findAll("div", "class", classHas(propertyValueClass))
	tables := p.elements("table")
	spans := p.findAll("span", "id", idIs(diameterSpanID))
	if len(labels) < propertyLabelEnd || len(values) < propertyValueEnd ||
		len(tables) <= propertySourcesIdx || len(spans) == 0 {
		return nil, notFound
	}

	slots := make([]string, propertyValueEnd)
	for i := range slots {
		slots[i] = strings.TrimSpace(textContent(values[i]))
		if o, ok := propertyValueOverrides[i]; ok {
			slots[i] = o
		}
	}
	slots[propertyDiameterSlot] = strings.TrimSpace(textContent(spans[0]))

	props := table.New("Property", "Values", "Unit", "Source")
	for i, l := range labels[propertyLabelFirst:propertyLabelEnd] {
		k := 3 * i
		if err := props.Append(
			table.Str(strings.TrimSpace(textContent(l))),
			table.Infer(slots[k]),
			table.Infer(slots[k+1]),
			table.Infer(slots[k+2]),
		); err != nil {
			return nil, err
		}
	}

	return &model.PhysicalProperties{
		Object:     name,
		Properties: props,
		Sources:    sourcesTable(tableRows(tables[propertySourcesIdx])),
	}, nil
}

// sourcesTable uses the first row as header when the page provides one.
func sourcesTable(rows [][]string) *table.Table {
	if len(rows) == 0 {
		return table.New()
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	header := rows[0]
	if len(header) != width {
		return table.FromRecords(table.Positional(width), rows)
	}
	return table.FromRecords(header, rows[1:])
}
