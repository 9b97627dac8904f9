package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/devcontent/internal/api"
	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the devcontent HTTP API for one console session.

The server exposes the session over REST and streams its events as
server-sent events. With --tui the interactive console runs against the
same session.

Examples:
  # Start with the configured host and port (localhost:8080)
  devcontent serve

  # Start on a custom host and port
  devcontent serve --host 0.0.0.0 --port 3000

  # Disable CORS (for production behind a reverse proxy)
  devcontent serve --no-cors

  # Serve the API and open the console
  devcontent serve --tui`,
	RunE: runServe,
}

var (
	serveHost   string
	servePort   int
	serveNoCORS bool
	serveTUI    bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "",
		"Host address to bind to (default from server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0,
		"Port to listen on (default from server.port)")
	serveCmd.Flags().BoolVar(&serveNoCORS, "no-cors", false,
		"Disable CORS headers")
	serveCmd.Flags().BoolVar(&serveTUI, "tui", false,
		"Also run the interactive console")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	opts := appOptions{}
	var logs *tui.LogHandler
	if serveTUI {
		if tui.NewDetector().Detect() != tui.ModeTUI {
			return errNoTerminal
		}
		logs = tui.NewLogHandler(logging.ParseLevel(cfg.Log.Level), 256)
		opts.logHandler = logs
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	serverOpts := []api.ServerOption{
		api.WithLogger(a.logger),
		api.WithHostCollector(a.collector),
	}
	if cfg.Server.EnableCORS && !serveNoCORS {
		serverOpts = append(serverOpts, api.WithCORS(cfg.Server.CORSOrigins))
	}
	server := api.NewServer(a.session, serverOpts...)
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(gctx, addr); err != nil {
			return fmt.Errorf("serving API: %w", err)
		}
		return nil
	})
	if serveTUI {
		g.Go(func() error {
			// Quitting the console stops the server.
			defer stop()
			return tui.Run(gctx, a.session,
				tui.WithCopier(clip.New()),
				tui.WithLogMessages(logs.Messages()),
			)
		})
	}

	a.logger.Info("server started", "addr", addr, "cors", cfg.Server.EnableCORS && !serveNoCORS, "tui", serveTUI)
	runErr := g.Wait()
	a.logger.Info("shutting down")
	closeErr := a.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
