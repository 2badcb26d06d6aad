package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/frasig/internal/cli"
	"github.com/aretw0/frasig/internal/presentation/tui"
	httpAdapter "github.com/aretw0/frasig/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form",
	Long:  `Starts the FRASIG web form, the JSON API and the operational endpoints over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		rt, err := cli.CreateEngine(cfg, logger, reg)
		if err != nil {
			fmt.Printf("Error initializing frasig: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		// The parser may still be starting; the form degrades to "no graphic" until it answers.
		probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rt.Ping(probeCtx); err != nil {
			logger.Warn("Parser backend not reachable yet", "err", err)
		}
		cancelProbe()

		handler := httpAdapter.NewHandler(rt.Engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			httpAdapter.WithHealthCheck(rt.Ping),
			httpAdapter.WithRequestTimeout(cfg.Parser.Timeout+5*time.Second),
		)

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if !quiet {
				tui.PrintBanner(os.Stdout)
			}
			fmt.Printf("Starting FRASIG Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			rt.Close()
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("FRASIG Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5000, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
