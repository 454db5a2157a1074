package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/neocc/internal/config"
	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/query"
	"github.com/nao1215/neocc/internal/report"
	"github.com/nao1215/neocc/internal/tabs"
)

// NewObjectCmd creates the object command.
func NewObjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object <designator>...",
		Short: "Query one tab of one or more objects",
		Long: `Object downloads and parses one tab of the NEOCC object page.

Tabs:
  summary              physical summary and discovery circumstances
  impacts              virtual impactors of the risk assessment
  close_approaches     close approaches to planets and the Moon
  physical_properties  physical properties with their sources
  observations         optical, roving, satellite and radar observations
  orbit_properties     orbit solution (requires --elements and --epoch)
  ephemerides          ephemerides for an observatory (requires --observatory,
                       --start, --stop, --step and --step-unit)

Several designators are queried concurrently (see --batch).

Examples:
  # Virtual impactors of Apophis
  neocc object "99942 Apophis" --tab impacts

  # Keplerian orbit at the middle of the observed arc, as JSON
  neocc object 2023DW --tab orbit_properties --elements keplerian --epoch middle --json

  # One week of daily ephemerides from Mauna Kea
  neocc object 433 --tab ephemerides --observatory 568 \
    --start "2024-01-01 00:00" --stop "2024-01-08 00:00" --step 1 --step-unit days

  # Close approaches of several objects
  neocc object 2023DW "99942 Apophis" --tab close_approaches --markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: runObjectCmd,
	}

	cmd.Flags().StringP("tab", "t", "", "Tab to query (required)")
	cmd.Flags().String("elements", "", "Orbital elements: keplerian or equinoctial")
	cmd.Flags().String("epoch", "", "Orbit epoch: middle or present")
	cmd.Flags().String("observatory", "", "Observatory code for ephemerides")
	cmd.Flags().String("start", "", `Ephemerides start, "YYYY-MM-DD hh:mm"`)
	cmd.Flags().String("stop", "", `Ephemerides stop, "YYYY-MM-DD hh:mm"`)
	cmd.Flags().Float64("step", 0, "Ephemerides time step")
	cmd.Flags().String("step-unit", "", "Ephemerides time step unit: days, hours or minutes")
	cmd.Flags().IntP("batch", "b", 0, "Number of concurrent queries (default from configuration)")
	_ = cmd.MarkFlagRequired("tab")
	_ = cmd.RegisterFlagCompletionFunc("tab", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return tabNames(), cobra.ShellCompDirectiveNoFileComp
	})

	addReportFlags(cmd)

	return cmd
}

func tabNames() []string {
	names := make([]string, 0, len(model.Tabs()))
	for _, t := range model.Tabs() {
		names = append(names, string(t))
	}
	return names
}

// readTabOptions builds the tab and its arguments from the flags.
func readTabOptions(cmd *cobra.Command) (model.Tab, tabs.Options, error) {
	var opts tabs.Options

	tabName, err := cmd.Flags().GetString("tab")
	if err != nil {
		return "", opts, err
	}
	tab, err := model.ParseTab(tabName)
	if err != nil {
		return "", opts, err
	}

	elements, err := cmd.Flags().GetString("elements")
	if err != nil {
		return "", opts, err
	}
	epoch, err := cmd.Flags().GetString("epoch")
	if err != nil {
		return "", opts, err
	}
	opts.Elements = model.OrbitElements(elements)
	opts.Epoch = model.OrbitEpoch(epoch)

	eph := &opts.Ephemerides
	if eph.Observatory, err = cmd.Flags().GetString("observatory"); err != nil {
		return "", opts, err
	}
	if eph.Start, err = cmd.Flags().GetString("start"); err != nil {
		return "", opts, err
	}
	if eph.Stop, err = cmd.Flags().GetString("stop"); err != nil {
		return "", opts, err
	}
	if eph.Step, err = cmd.Flags().GetFloat64("step"); err != nil {
		return "", opts, err
	}
	if eph.Unit, err = cmd.Flags().GetString("step-unit"); err != nil {
		return "", opts, err
	}
	return tab, opts, nil
}

// runObjectCmd executes the object command.
func runObjectCmd(cmd *cobra.Command, args []string) (err error) {
	tab, opts, err := readTabOptions(cmd)
	if err != nil {
		return err
	}
	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	a, err := prepare(cmd, false, func(cfg *config.Config) error {
		if batch != 0 {
			cfg.BatchSize = batch
		}
		return readReportFlags(cmd, cfg)
	})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, a.Close()) }()

	ctx := cmd.Context()
	if len(args) == 1 {
		res, err := a.query.Object(ctx, args[0], tab, opts)
		if err != nil {
			return fmt.Errorf("failed to query %s of %s: %w", tab, args[0], err)
		}
		return writeReport(a.cfg, cmd.OutOrStdout(), func(w report.Writer) error {
			_, err := w.WriteObjects([]report.ObjectReport{{Object: args[0], Tab: tab, Result: res}})
			return err
		})
	}

	results, err := a.query.Batch(ctx, args, tab, opts, a.cfg.BatchSize)
	if err != nil {
		return err
	}
	objects, failed := objectReports(results)
	if err := writeReport(a.cfg, cmd.OutOrStdout(), func(w report.Writer) error {
		_, err := w.WriteObjects(objects)
		return err
	}); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

// objectReports converts batch results for the report writers and counts
// the failures.
func objectReports(results []query.Result) ([]report.ObjectReport, int) {
	out := make([]report.ObjectReport, len(results))
	failed := 0
	for i, r := range results {
		out[i] = report.ObjectReport{Object: r.Object, Tab: r.Tab, Result: r.Result}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			failed++
		}
	}
	return out, failed
}
