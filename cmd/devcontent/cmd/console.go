package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/report"
	"github.com/hugo-lorenzo-mato/devcontent/internal/tui"
)

// errNoTerminal is returned when the console is started without a TTY.
var errNoTerminal = errors.New("the console needs an interactive terminal; use 'devcontent run' or 'devcontent serve'")

// runConsole opens the interactive console and prints a session summary
// when the operator quits.
func runConsole(_ *cobra.Command, _ []string) error {
	if tui.NewDetector().Detect() != tui.ModeTUI {
		return errNoTerminal
	}

	logs := tui.NewLogHandler(logging.ParseLevel(appConfig.Log.Level), 256)
	a, err := newApp(appOptions{logHandler: logs})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := tui.Run(ctx, a.session,
		tui.WithCopier(clip.New()),
		tui.WithLogMessages(logs.Messages()),
	)
	snap := a.session.Snapshot()
	closeErr := a.close()
	if runErr != nil {
		return fmt.Errorf("running console: %w", runErr)
	}

	if err := report.WriteSummary(os.Stdout, snap); err != nil {
		return err
	}
	return closeErr
}
