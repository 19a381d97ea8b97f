package commands

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/internal/config"
	"github.com/Sumatoshi-tech/hierpart/pkg/mcp"
	"github.com/Sumatoshi-tech/hierpart/pkg/observability"
	"github.com/Sumatoshi-tech/hierpart/pkg/version"
)

// metricsReadHeaderTimeout bounds header reads on the scrape endpoint.
const metricsReadHeaderTimeout = 5 * time.Second

// MCPCommand holds configuration for the mcp command.
type MCPCommand struct {
	configPath  string
	metricsAddr string
}

// NewMCPCommand creates the mcp cobra command, serving hierpart tools over
// stdio transport.
func NewMCPCommand() *cobra.Command {
	mc := &MCPCommand{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve partition tools over the Model Context Protocol (stdio)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mc.Run(cmd)
		},
	}

	cmd.Flags().StringVar(&mc.metricsAddr, "metrics-addr", "", "expose a Prometheus /metrics endpoint on this address")
	cmd.Flags().StringVarP(&mc.configPath, "config", "c", "", "path to a config file")

	return cmd
}

// Run initializes observability and blocks serving MCP requests on stdio.
func (mc *MCPCommand) Run(cmd *cobra.Command) error {
	cfg, err := config.Load(mc.configPath)
	if err != nil {
		return err
	}

	providers, err := observability.Init(observability.Config{
		ServiceName:    "hierpart",
		ServiceVersion: version.Version,
		LogLevel:       cfg.Logging.Level,
		LogFormat:      cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	defer func() {
		shutdownErr := providers.Shutdown(ctx)
		if shutdownErr != nil {
			providers.Logger.Error("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewCompareMetrics(providers.Meter)
	if err != nil {
		return err
	}

	addr := mc.metricsAddr
	if addr == "" && cfg.Metrics.Enabled {
		addr = cfg.Metrics.Addr
	}

	if addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(providers.Registry, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}

		go func() {
			serveErr := srv.ListenAndServe()
			if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				providers.Logger.Error("metrics endpoint failed", "error", serveErr)
			}
		}()
		defer srv.Close()

		providers.Logger.Info("metrics endpoint listening", "addr", addr)
	}

	server := mcp.NewServer(mcp.ServerDeps{
		Logger:  providers.Logger,
		Metrics: metrics,
	})

	providers.Logger.Info("mcp server starting", "tools", server.ListToolNames())

	err = server.Run(ctx)
	if err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}

	return nil
}
