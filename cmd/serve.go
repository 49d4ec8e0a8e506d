package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

var addrFlag string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the calculator over HTTP.

Endpoints:
  POST /api/v1/calculate      {"text": "...", "mode": "both", "target": 8}
  GET  /api/v1/sheet?date=    A day's saved sheet with its calculation
  GET  /healthz               Liveness check

The server stops on SIGINT or SIGTERM, letting in-flight requests finish.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		serve(ctx, addrFlag)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (default from config listen_addr)")
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP API until ctx is done
func serve(ctx context.Context, addr string) {
	services, ok := loadServices()
	if !ok {
		return
	}
	if addr == "" {
		addr = services.Config.Get().ListenAddr
	}

	srv := server.New(services)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start(addr)
	}()
	_, _ = fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", addr)

	select {
	case err := <-errc:
		if err != nil {
			fail(fmt.Sprintf("Failed to serve on %s", addr), err, "Use --addr to pick another address")
		}
		return
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fail("Failed to shut down server", err, "")
		return
	}
	<-errc
	_, _ = fmt.Fprintln(deps.Stdout, "Server stopped")
}
