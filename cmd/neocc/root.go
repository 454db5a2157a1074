package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for neocc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neocc",
		Short: "Query the ESA NEO Coordination Centre portal",
		Long: `neocc downloads and parses the data published by the ESA NEO
Coordination Centre: the near-Earth object lists and the per-object tabs
(summary, impacts, close approaches, physical properties, observations,
orbit properties and ephemerides).

Fetched documents are cached in a local sqlite database under the XDG
data directory. Use --no-cache to always contact the portal.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .neocc in current or home directory)")
	flags.Bool("no-cache", false, "Do not read or write the document cache")
	flags.String("metrics-file", "",
		"Write request metrics in Prometheus text format to this file on exit")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewObjectCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel queries in
// flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
