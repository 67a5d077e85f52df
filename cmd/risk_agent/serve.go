package main

import (
	"fmt"

	"github.com/jonathan/risk-router/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP scoring server",
	Long:  `Start an HTTP server exposing POST /predict, POST /explain, GET /health and GET /metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or $PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := buildService(cmd.Context(), true)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer closeFn()

	port := app.cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:         port,
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
	}, svc, app.logger)

	return srv.Start(cmd.Context())
}
