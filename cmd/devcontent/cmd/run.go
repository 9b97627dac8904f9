package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/report"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
	"github.com/hugo-lorenzo-mato/devcontent/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run <generate|deliver|analyze|scan>",
	Short: "Run one workflow and print its result",
	Long: `Run a single workflow against the agent service and print its result.

Blank inputs take the sample presets when --sample is set.

Examples:
  # Generate launch content for a repository
  devcontent run generate --repo acme/widgets --focus "v2 release"

  # Deliver the generated email and copy the tweet
  devcontent run generate --repo acme/widgets --copy twitter

  # Scan trends and print JSON
  devcontent run scan --domain "web development" --format json

  # Run with the sample session
  devcontent run analyze --sample`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"generate", "deliver", "analyze", "scan"},
	RunE:      runWorkflow,
}

var (
	runRepo          string
	runFocus         string
	runRecipient     string
	runSubject       string
	runBody          string
	runEventTitle    string
	runEventDateTime string
	runCalendar      string
	runCampaign      string
	runOpenRate      string
	runClickRate     string
	runShares        string
	runConversions   string
	runDomain        string
	runCopy          string
	runFormat        string
	runVerbose       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVar(&runRepo, "repo", "", "Repository to generate content for (generate)")
	f.StringVar(&runFocus, "focus", "", "Content focus (generate)")
	f.StringVar(&runRecipient, "recipient", "", "Email recipient (deliver)")
	f.StringVar(&runSubject, "subject", "", "Override the email draft subject (deliver)")
	f.StringVar(&runBody, "body", "", "Override the email draft body (deliver)")
	f.StringVar(&runEventTitle, "event-title", "", "Calendar event title (deliver)")
	f.StringVar(&runEventDateTime, "event-datetime", "", "Calendar event date and time (deliver)")
	f.StringVar(&runCalendar, "calendar", "", "Calendar to book the event in (deliver)")
	f.StringVar(&runCampaign, "campaign", "", "Campaign name (analyze)")
	f.StringVar(&runOpenRate, "open-rate", "", "Email open rate (analyze)")
	f.StringVar(&runClickRate, "click-rate", "", "Email click rate (analyze)")
	f.StringVar(&runShares, "shares", "", "Social shares (analyze)")
	f.StringVar(&runConversions, "conversions", "", "Conversions (analyze)")
	f.StringVar(&runDomain, "domain", "", "Domain to scan (scan)")
	f.StringVar(&runCopy, "copy", "", "Copy a draft to the clipboard afterwards (email, twitter, linkedin, devto, blog)")
	f.StringVarP(&runFormat, "format", "f", "markdown", "Result format (markdown, json)")
	f.BoolVarP(&runVerbose, "verbose", "v", false, "Print every session event")
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	kind, err := core.ParseKind(args[0])
	if err != nil {
		return err
	}
	if runFormat != "markdown" && runFormat != "json" {
		return fmt.Errorf("unknown format %q (want markdown or json)", runFormat)
	}
	var target clip.Target
	if runCopy != "" {
		if target, err = clip.ParseTarget(runCopy); err != nil {
			return err
		}
	}

	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, runErr := executeWorkflow(ctx, a, kind, cmd.ErrOrStderr())
	if runErr == nil {
		runErr = printResult(cmd.OutOrStdout(), st)
	}
	if runErr == nil && target != "" {
		res, err := clip.New().CopyDraft(a.session.Drafts().Snapshot(), target)
		if err != nil {
			runErr = fmt.Errorf("copying %s draft: %w", target, err)
		} else {
			printCopied(cmd.ErrOrStderr(), res)
		}
	}

	closeErr := a.close()
	if runErr != nil {
		return runErr
	}
	if st.Phase == core.PhaseFailed {
		return fmt.Errorf("%s failed: %s", kind, st.LastError)
	}
	return closeErr
}

// executeWorkflow starts one workflow and blocks until it completes,
// printing session events to w.
func executeWorkflow(ctx context.Context, a *app, kind core.WorkflowKind, w io.Writer) (core.WorkflowState, error) {
	ch := a.bus.Subscribe()
	followed := make(chan struct{})
	go func() {
		defer close(followed)
		tui.Follow(ctx, newPrinter(w, runVerbose), ch)
	}()
	defer func() {
		a.bus.Unsubscribe(ch)
		<-followed
	}()

	if _, err := startWorkflow(ctx, a.session, kind); err != nil {
		return core.WorkflowState{}, fmt.Errorf("starting %s: %s", kind, core.UserMessage(err, err.Error()))
	}
	if err := a.session.Runner().Wait(ctx); err != nil {
		return core.WorkflowState{}, fmt.Errorf("waiting for %s: %w", kind, err)
	}
	st, _ := a.session.Runner().State(kind)
	return st, nil
}

// startWorkflow builds the input of kind from the flags, falling back to
// the session presets for blank fields.
func startWorkflow(ctx context.Context, s *console.Session, kind core.WorkflowKind) (string, error) {
	p := s.Presets()
	switch kind {
	case core.KindGenerate:
		return s.Generate(ctx, core.GenerateInput{
			Repo:  orDefault(runRepo, p.Generate.Repo),
			Focus: orDefault(runFocus, p.Generate.Focus),
		})
	case core.KindDeliver:
		if runSubject != "" || runBody != "" {
			email := s.Drafts().Email()
			email.Subject = orDefault(runSubject, email.Subject)
			email.Body = orDefault(runBody, email.Body)
			s.Drafts().UpdateEmail(email)
		}
		return s.Deliver(ctx, core.DeliverInput{
			Recipient:     orDefault(runRecipient, p.Deliver.Recipient),
			EventTitle:    orDefault(runEventTitle, p.Deliver.EventTitle),
			EventDateTime: orDefault(runEventDateTime, p.Deliver.EventDateTime),
			Calendar:      orDefault(runCalendar, p.Deliver.Calendar),
		})
	case core.KindAnalyze:
		return s.Analyze(ctx, core.AnalyzeInput{
			CampaignName: orDefault(runCampaign, p.Analyze.CampaignName),
			OpenRate:     orDefault(runOpenRate, p.Analyze.OpenRate),
			ClickRate:    orDefault(runClickRate, p.Analyze.ClickRate),
			Shares:       orDefault(runShares, p.Analyze.Shares),
			Conversions:  orDefault(runConversions, p.Analyze.Conversions),
		})
	default:
		return s.Scan(ctx, core.ScanInput{Domain: orDefault(runDomain, p.Scan.Domain)})
	}
}

func printResult(w io.Writer, st core.WorkflowState) error {
	if runFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	if st.Result == nil {
		return nil
	}
	_, err := io.WriteString(w, report.ResultMarkdown(st))
	return err
}

func printCopied(w io.Writer, res clip.Result) {
	if res.FilePath != "" {
		fmt.Fprintf(w, "%s draft written to %s\n", res.Target, res.FilePath)
		return
	}
	fmt.Fprintf(w, "copied %s draft (%d bytes, %s)\n", res.Target, res.Bytes, res.Method)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
