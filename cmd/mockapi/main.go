// Command mockapi serves the in-memory backend used by the tests, for
// trying lista without a real server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lista/internal/mockapi"
)

// demoPassword is the password of the account seeded with --user
const demoPassword = "password123"

type serveOptions struct {
	addr    string
	version string
	user    string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Serve the in-memory task backend over HTTP",
		Long: `Serve the in-memory task backend over HTTP.

Point lista at it with LISTA_API_URL=http://<addr>/api and
LISTA_API_DOMAIN=http://<addr>. Data lives only as long as the process.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&opts.version, "version", "v1", "API version segment")
	cmd.Flags().StringVar(&opts.user, "user", "", "Seed a user with this email (password: "+demoPassword+")")
	return cmd
}

// newHandler builds the backend wrapped in CORS for local browser clients
func newHandler(opts serveOptions) (http.Handler, error) {
	api := mockapi.New(mockapi.WithVersion(opts.version))
	if opts.user != "" {
		u, err := api.AddUser("Demo", opts.user, demoPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		slog.Info("seeded user", "id", u.ID, "email", opts.user)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", mockapi.XSRFHeader},
		AllowCredentials: true,
	})
	return c.Handler(api), nil
}

func serve(ctx context.Context, opts serveOptions) error {
	handler, err := newHandler(opts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("mock api listening", "addr", opts.addr, "version", opts.version, "pid", os.Getpid())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mock api stopped: %w", err)
	}
	slog.Info("mock api shut down")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := newServeCmd().ExecuteContext(ctx); err != nil {
		slog.Error("mockapi failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
