package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
)

// WriteSummary writes a plain-text summary of snap.
func WriteSummary(w io.Writer, snap console.Snapshot) error {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "SESSION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "  Taken:       %s\n", snap.TakenAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  View:        %s\n", snap.View.Label())
	fmt.Fprintf(w, "  Sample data: %t\n", snap.SampleMode)
	if snap.Status != nil {
		fmt.Fprintf(w, "  Status:      [%s] %s\n", snap.Status.Level, snap.Status.Text)
	}
	if snap.FocusSeed != "" {
		fmt.Fprintf(w, "  Next focus:  %s\n", snap.FocusSeed)
	}
	fmt.Fprintln(w, "")

	if err := writeWorkflowTable(w, snap); err != nil {
		return err
	}
	if err := writeCampaignTable(w, snap); err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))
	return nil
}

func writeWorkflowTable(w io.Writer, snap console.Snapshot) error {
	fmt.Fprintln(w, "WORKFLOWS")
	fmt.Fprintln(w, strings.Repeat("-", 40))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Kind\tPhase\tFinished\tNote")
	for _, st := range snap.Workflows {
		finished := "-"
		if st.FinishedAt != nil {
			finished = st.FinishedAt.UTC().Format("15:04:05")
		}
		note := st.LastError
		if st.Degraded {
			note = "degraded result"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", st.Kind, st.Phase, finished, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, "")
	return nil
}

func writeCampaignTable(w io.Writer, snap console.Snapshot) error {
	if len(snap.Campaigns) == 0 {
		return nil
	}
	fmt.Fprintln(w, "CAMPAIGNS")
	fmt.Fprintln(w, strings.Repeat("-", 40))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tDate\tStatus\tRepository\tTitle")
	for _, c := range snap.Campaigns {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", c.ID, c.CreatedDate, c.Status, c.SourceRepo, c.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, "")
	return nil
}
