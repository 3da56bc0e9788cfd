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

	"github.com/gohashira/wtf/internal/api"
	"github.com/gohashira/wtf/internal/config"
	"github.com/gohashira/wtf/internal/router"
)

func serveCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve [content-root]",
		Short: "Start the website server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(args) == 1 {
				cfg.ContentRoot = args[0]
			}
			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "address to bind to")
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on")
	return cmd
}

func runServe(cfg config.Config) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rt, err := router.New(cfg.ContentRoot)
	if err != nil {
		return fmt.Errorf("content root: %w", err)
	}

	srv := api.NewServer(rt, log, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("starting wtf", "addr", cfg.Addr(), "content_root", cfg.ContentRoot)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
