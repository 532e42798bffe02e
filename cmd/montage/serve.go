package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/montage-edit/montage/internal/logging"
	"github.com/montage-edit/montage/pkg/adapters/file"
	httpAdapter "github.com/montage-edit/montage/pkg/adapters/http"
	"github.com/montage-edit/montage/pkg/adapters/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored timelines over a read-only JSON API",
	Long:  `Serves the timelines stored in a file catalog directory over HTTP, with inspection endpoints and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		catalog := middleware.Chain(file.New(dir, nil),
			middleware.NewLoggingMiddleware(logger),
		)
		handler := httpAdapter.NewHandler(catalog, logger)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting montage server", "addr", srv.Addr, "catalog", dir)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("dir", ".montage/timelines", "Directory of the file catalog")
	rootCmd.AddCommand(serveCmd)
}
