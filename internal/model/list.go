package model

import "github.com/nao1215/neocc/internal/table"

// ListName identifies one of the NEOCC list files.
type ListName string

// NEOCC lists.
const (
	ListNEA                   ListName = "nea_list"
	ListUpdatedNEA            ListName = "updated_nea"
	ListMonthlyUpdate         ListName = "monthly_update"
	ListRisk                  ListName = "risk_list"
	ListRiskSpecial           ListName = "risk_list_special"
	ListCloseApproachUpcoming ListName = "close_appr_upcoming"
	ListCloseApproachRecent   ListName = "close_appr_recent"
	ListPriority              ListName = "priority_list"
	ListPriorityFaint         ListName = "priority_list_faint"
	ListCloseEncounter        ListName = "close_encounter"
)

// ListNames returns every list identifier in documentation order.
func ListNames() []ListName {
	return []ListName{
		ListNEA,
		ListUpdatedNEA,
		ListMonthlyUpdate,
		ListRisk,
		ListRiskSpecial,
		ListCloseApproachUpcoming,
		ListCloseApproachRecent,
		ListPriority,
		ListPriorityFaint,
		ListCloseEncounter,
	}
}

// ParseListName validates a list identifier.
func ParseListName(s string) (ListName, error) {
	valid := make([]string, 0, len(ListNames()))
	for _, n := range ListNames() {
		if string(n) == s {
			return n, nil
		}
		valid = append(valid, string(n))
	}
	return "", InvalidSelector("list name", s, valid)
}

// ListResult is a parsed list. Plain designator lists fill Designators;
// every other list fills Table.
type ListResult struct {
	Name        ListName     `json:"name"`
	Designators []string     `json:"designators,omitempty"`
	Table       *table.Table `json:"table,omitempty"`
}

// Objects returns the object designators of the list: the designators of
// a plain list, or the first column of a tabular list.
func (r *ListResult) Objects() []string {
	if r.Table == nil {
		return append([]string(nil), r.Designators...)
	}
	out := make([]string, 0, r.Table.Len())
	for _, row := range r.Table.Rows {
		if len(row) > 0 && !row[0].IsNull() {
			out = append(out, row[0].String())
		}
	}
	return out
}

// Len returns the number of entries in the list.
func (r *ListResult) Len() int {
	if r.Table == nil {
		return len(r.Designators)
	}
	return r.Table.Len()
}
