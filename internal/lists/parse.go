package lists

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
)

// Parse decodes the text of a list file according to the list's format.
func Parse(name model.ListName, text string) (*model.ListResult, error) {
	switch name {
	case model.ListNEA, model.ListUpdatedNEA, model.ListMonthlyUpdate:
		return &model.ListResult{Name: name, Designators: ParsePlain(text)}, nil
	case model.ListRisk, model.ListRiskSpecial:
		t, err := ParseRisk(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &model.ListResult{Name: name, Table: t}, nil
	case model.ListCloseApproachUpcoming, model.ListCloseApproachRecent:
		t, err := ParseCloseApproaches(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &model.ListResult{Name: name, Table: t}, nil
	case model.ListPriority, model.ListPriorityFaint:
		t, err := ParsePriority(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &model.ListResult{Name: name, Table: t}, nil
	case model.ListCloseEncounter:
		t, err := ParseCloseEncounter(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &model.ListResult{Name: name, Table: t}, nil
	default:
		_, err := model.ParseListName(string(name))
		return nil, err
	}
}
