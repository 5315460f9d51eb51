package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/helpdesk-tools/inventory/internal/api"
	"github.com/helpdesk-tools/inventory/internal/config"
	"github.com/helpdesk-tools/inventory/internal/metrics"
	"github.com/helpdesk-tools/inventory/internal/middleware"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Office inventory backend",
	}
	rootCmd.AddCommand(serveCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := cfg.InitializeDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			inventoryAPI := api.NewAPI(db)
			metrics.Register(inventoryAPI.MachineRepo())

			skipHealth := func(r *http.Request) bool {
				return r.URL.Path == "/" || r.URL.Path == "/metrics"
			}

			r := chi.NewRouter()
			r.Use(chimiddleware.Recoverer)
			r.Use(middleware.RequestLogger(logger, skipHealth))
			r.Use(metrics.Middleware)

			inventoryAPI.RegisterRoutes(r)
			r.Handle("/metrics", metrics.Handler())

			addr := ":" + cfg.Port
			logger.Info("starting inventory API", "addr", addr, "db_path", cfg.DBPath)
			return http.ListenAndServe(addr, r)
		},
	}
}
