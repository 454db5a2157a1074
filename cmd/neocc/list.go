package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/neocc/internal/config"
	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/report"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <name>",
		Short: "Download and parse a NEOCC list",
		Long: `List downloads one of the lists published by the NEOCC and prints it.

Available lists:
  nea_list             every known near-Earth asteroid
  updated_nea          objects whose orbit was updated recently
  monthly_update       objects updated in the last monthly run
  risk_list            objects with a non-zero impact probability
  risk_list_special    objects with a special risk assessment
  close_appr_upcoming  upcoming close approaches
  close_appr_recent    recent close approaches
  priority_list        observation priority list
  priority_list_faint  observation priority list for faint objects
  close_encounter      close encounters of the current week

Examples:
  # Print the risk list as a table
  neocc list risk_list

  # Save a snapshot of the NEA list for 'neocc compare'
  neocc list nea_list --save

  # Export the upcoming close approaches to a workbook
  neocc list close_appr_upcoming --xlsx approaches.xlsx`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: listNames(),
		RunE:      runListCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().Bool("save", false,
		"Store the designators of the list as a snapshot for 'neocc compare'")

	return cmd
}

func listNames() []string {
	names := make([]string, 0, len(model.ListNames()))
	for _, n := range model.ListNames() {
		names = append(names, string(n))
	}
	return names
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, args []string) (err error) {
	name, err := model.ParseListName(args[0])
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}

	a, err := prepare(cmd, save, func(cfg *config.Config) error {
		return readReportFlags(cmd, cfg)
	})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	ctx := cmd.Context()
	list, err := a.query.List(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}

	if err := writeReport(a.cfg, cmd.OutOrStdout(), func(w report.Writer) error {
		_, err := w.WriteList(list)
		return err
	}); err != nil {
		return err
	}

	if !save {
		return nil
	}
	objects := list.Objects()
	id, err := a.db.SaveSnapshot(ctx, name, objects, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved snapshot %d of %s (%s objects)\n",
		id, name, humanize.Comma(int64(len(objects))))
	return nil
}
