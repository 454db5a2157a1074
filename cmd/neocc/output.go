package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/neocc/internal/config"
	"github.com/nao1215/neocc/internal/report"
)

// addReportFlags registers the output format flags shared by list and
// object.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown and --xlsx)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json and --xlsx)")
	cmd.Flags().String("xlsx", "",
		"Write an Excel workbook to this file (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file (creates directories if needed)")
}

// readReportFlags copies the output format flags into cfg.
func readReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	xlsx, err := cmd.Flags().GetString("xlsx")
	if err != nil {
		return err
	}
	if xlsx != "" {
		cfg.XLSXReport = true
		cfg.ReportFile = xlsx
	}
	return nil
}

// openReport returns the report destination: the report file when set,
// stdout otherwise. The returned close function is never nil.
func openReport(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	case cfg.XLSXReport:
		return report.NewXLSXWriter(w)
	default:
		return report.NewSimpleWriter(w)
	}
}

// writeReport opens the destination, renders with write and closes it.
func writeReport(cfg *config.Config, stdout io.Writer, write func(report.Writer) error) (err error) {
	out, closeOut, err := openReport(cfg, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return write(newReportWriter(cfg, out))
}
