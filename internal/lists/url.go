package lists

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
)

// DefaultBaseURL is the NEOCC download endpoint lists are fetched from.
const DefaultBaseURL = "https://neo.ssa.esa.int/PSDB-portlet/download?file="

var filenames = map[model.ListName]string{
	model.ListNEA:                   "allneo.lst",
	model.ListUpdatedNEA:            "updated_nea.lst",
	model.ListMonthlyUpdate:         "monthly_update.done",
	model.ListRisk:                  "esa_risk_list",
	model.ListRiskSpecial:           "esa_special_risk_list",
	model.ListCloseApproachUpcoming: "esa_upcoming_close_app",
	model.ListCloseApproachRecent:   "esa_recent_close_app",
	model.ListPriority:              "esa_priority_neo_list",
	model.ListPriorityFaint:         "esa_faint_neo_list",
	model.ListCloseEncounter:        "close_encounter2.txt",
}

// Filename returns the remote file of a list.
func Filename(name model.ListName) (string, error) {
	f, ok := filenames[name]
	if !ok {
		_, err := model.ParseListName(string(name))
		return "", err
	}
	return f, nil
}

// ResolveURL returns the download URL of a list. An empty base selects
// DefaultBaseURL.
func ResolveURL(base string, name model.ListName) (string, error) {
	f, err := Filename(name)
	if err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s%s", base, f), nil
}
