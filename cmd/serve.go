package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/checkflac/checkflac/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP validation API",
		Long: `Starts an HTTP API for checking FLAC releases on the specified port.

Checks are started with a POST to /api/checks and run in the background;
poll /api/checks/<id> for the findings. The albums are read from the
server's filesystem, so this is meant to run on the machine holding the
music library.`,
		Example: `  # Start server on default port 8888
  checkflac serve

  # Start server on custom port
  checkflac serve --port 3000

  # Start a check and fetch its results
  curl -XPOST localhost:8888/api/checks -d '{"roots": ["/music/some-album"]}'
  curl localhost:8888/api/checks/<check_id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New(cmd.Context())

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/checks", handler.HandleChecks)
			mux.HandleFunc("/api/checks/", handler.HandleCheckDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Validation API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
