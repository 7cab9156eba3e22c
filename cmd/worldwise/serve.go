package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jacksmith/worldwise/internal/server"
	"github.com/jacksmith/worldwise/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local cities API",
	Long: `Serve the cities API from .worldwise/cities.yaml in the current directory
(create it with 'worldwise init').

Endpoints:
  GET    /cities
  GET    /cities/{id}
  POST   /cities
  DELETE /cities/{id}
  GET    /health
  GET    /metrics

Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr string
	serveDir  string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8000)")
	serveCmd.Flags().StringVar(&serveDir, "dir", ".", "directory containing .worldwise/")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(serveDir)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving cities", zap.String("data", st.DataPath()), zap.String("addr", addr))
	return server.New(st, cfg.Server, logger.Named("server")).ListenAndServe(ctx, addr)
}
