package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/devcontent/internal/diagnostics"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Print host metrics and the latest crash dump",
	RunE:  runSystem,
}

var (
	systemFormat string
)

func init() {
	rootCmd.AddCommand(systemCmd)
	systemCmd.Flags().StringVarP(&systemFormat, "format", "f", "json", "Output format (json, yaml)")
}

// systemReport is the output of the system command.
type systemReport struct {
	Host      diagnostics.HostMetrics `json:"host" yaml:"host"`
	LastCrash *crashSummary           `json:"last_crash,omitempty" yaml:"last_crash,omitempty"`
}

type crashSummary struct {
	Workflow     string `json:"workflow" yaml:"workflow"`
	InvocationID string `json:"invocation_id" yaml:"invocation_id"`
	PanicValue   string `json:"panic_value" yaml:"panic_value"`
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
}

func runSystem(cmd *cobra.Command, _ []string) error {
	rep := systemReport{Host: diagnostics.NewCollector().Collect()}
	if dir := appConfig.Diagnostics.CrashDump.Dir; dir != "" {
		// A missing directory just means no panic was ever recovered.
		if dump, err := diagnostics.LoadLatestCrashDump(dir); err == nil {
			rep.LastCrash = &crashSummary{
				Workflow:     dump.Workflow,
				InvocationID: dump.InvocationID,
				PanicValue:   dump.PanicValue,
				Timestamp:    dump.Timestamp.UTC().Format(time.RFC3339),
			}
		}
	}
	return writeSystemReport(cmd.OutOrStdout(), rep, systemFormat)
}

func writeSystemReport(w io.Writer, rep systemReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
