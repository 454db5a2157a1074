package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nao1215/neocc/internal/database"
	"github.com/nao1215/neocc/internal/model"
)

// errNotEnoughSnapshots is returned when a list has fewer than two
// snapshots to compare.
var errNotEnoughSnapshots = errors.New("at least two snapshots are required")

// NewCompareCmd creates the compare command.
// This command compares list snapshots stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <list>",
		Short: "Compare the two latest snapshots of a list",
		Long: `Compare shows which objects entered or left a list between its two most
recent snapshots. Snapshots are taken with 'neocc list <name> --save'.

Examples:
  # Objects added to or removed from the risk list
  neocc compare risk_list

  # Show every stored snapshot of the NEA list
  neocc compare nea_list --history

  # Output the comparison as JSON
  neocc compare risk_list --json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: listNames(),
		RunE:      runCompareCmd,
	}

	cmd.Flags().BoolP("history", "H", false, "List the stored snapshots of the list")
	cmd.Flags().BoolP("json", "j", false, "Output the comparison in JSON format")

	return cmd
}

// comparison is the JSON form of a snapshot diff.
type comparison struct {
	List    model.ListName `json:"list"`
	Older   snapshotRef    `json:"older"`
	Newer   snapshotRef    `json:"newer"`
	Added   []string       `json:"added"`
	Removed []string       `json:"removed"`
}

type snapshotRef struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Count   int       `json:"count"`
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) (err error) {
	name, err := model.ParseListName(args[0])
	if err != nil {
		return err
	}
	history, err := cmd.Flags().GetBool("history")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { err = errors.Join(err, db.Close()) }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if history {
		metas, err := db.SnapshotHistory(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get snapshot history: %w", err)
		}
		return printHistory(out, name, metas)
	}

	snaps, err := db.LatestSnapshots(ctx, name, 2)
	if err != nil {
		return fmt.Errorf("failed to get snapshots: %w", err)
	}
	if len(snaps) < 2 {
		return fmt.Errorf("%w for %s (found %d, use 'neocc list %s --save')",
			errNotEnoughSnapshots, name, len(snaps), name)
	}
	newer, older := snaps[0], snaps[1]
	added, removed := database.DiffDesignators(older.Designators, newer.Designators)

	c := comparison{
		List:    name,
		Older:   snapshotRef{ID: older.ID, TakenAt: older.TakenAt, Count: len(older.Designators)},
		Newer:   snapshotRef{ID: newer.ID, TakenAt: newer.TakenAt, Count: len(newer.Designators)},
		Added:   added,
		Removed: removed,
	}
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	printComparison(out, c, older.Hash == newer.Hash)
	return nil
}

// printHistory prints the snapshots of a list, newest first.
func printHistory(out io.Writer, name model.ListName, metas []database.SnapshotMetadata) error {
	if len(metas) == 0 {
		fmt.Fprintf(out, "No snapshots found for %s\n", name)
		fmt.Fprintf(out, "\nUse 'neocc list %s --save' to take one.\n", name)
		return nil
	}

	fmt.Fprintf(out, "Snapshots of %s (%d):\n\n", name, len(metas))
	tw := tablewriter.NewWriter(out)
	tw.Header("ID", "Taken", "Age", "Objects", "Hash")
	for _, m := range metas {
		hash := m.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		if err := tw.Append(
			strconv.FormatInt(m.ID, 10),
			m.TakenAt.Local().Format("2006-01-02 15:04:05"),
			humanize.Time(m.TakenAt),
			humanize.Comma(int64(m.Count)),
			hash,
		); err != nil {
			return err
		}
	}
	return tw.Render()
}

// printComparison prints a human-readable snapshot diff.
func printComparison(out io.Writer, c comparison, identical bool) {
	fmt.Fprintf(out, "Comparing %s snapshot %d (%s, %s objects) with snapshot %d (%s, %s objects)\n\n",
		c.List,
		c.Older.ID, humanize.Time(c.Older.TakenAt), humanize.Comma(int64(c.Older.Count)),
		c.Newer.ID, humanize.Time(c.Newer.TakenAt), humanize.Comma(int64(c.Newer.Count)),
	)
	if identical || (len(c.Added) == 0 && len(c.Removed) == 0) {
		fmt.Fprintln(out, "No changes.")
		return
	}

	fmt.Fprintf(out, "Added (%d):\n", len(c.Added))
	for _, d := range c.Added {
		fmt.Fprintf(out, "  + %s\n", d)
	}
	fmt.Fprintf(out, "\nRemoved (%d):\n", len(c.Removed))
	for _, d := range c.Removed {
		fmt.Fprintf(out, "  - %s\n", d)
	}
}
