package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Neruzzz/utility-helper/internal/chat"
	"github.com/Neruzzz/utility-helper/internal/chat/assistant"
	"github.com/Neruzzz/utility-helper/internal/httpx"
	"github.com/Neruzzz/utility-helper/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  GET  /functions         list function definitions
  POST /functions/{name}  call a function with {"inputs": {...}}
  POST /chat              talk to the assistant (needs OPENAI_API_KEY)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTel.Enabled {
		shutdown, err := httpx.InitTelemetry(ctx, httpx.ServiceName, cfg.OTel.Endpoint)
		if err != nil {
			return fmt.Errorf("telemetry init: %w", err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	dir, closeDir, err := openDirectory(ctx)
	if err != nil {
		return err
	}
	defer closeDir()

	reg := tools.NewRegistry(newService(dir))
	server := chat.NewServer(reg, assistant.New(reg, cfg.OpenAI.Model))

	r := mux.NewRouter()
	r.Use(
		httpx.Logger(),
		httpx.Recovery(),
	)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "Hi, I can count days for you!")
	})

	api := mux.NewRouter()
	server.Routes(api)
	instrumentedAPI := otelhttp.NewHandler(
		httpx.MetricsMiddleware(api),
		"utility-helper.api",
	)
	r.PathPrefix("/").Handler(instrumentedAPI)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	slog.Info("Starting the server...", "addr", cfg.HTTP.Addr, "mode", cfg.Mode())
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
