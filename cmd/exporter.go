package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protect-cli/internal/client"
	"protect-cli/internal/config"
	"protect-cli/internal/footage"
	"protect-cli/internal/metrics"
)

// Variables to hold flag values
var (
	expListen     string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	settings config.Settings
	listen   string
	api      *client.ProtectClient
	server   *http.Server
	done     chan struct{}
}

func newProgram(s config.Settings, listen string) *program {
	return &program{
		settings: s,
		listen:   listen,
		api:      client.New(s.ClientConfig()),
	}
}

// handler serves the footage metrics of the selected cameras.
func (p *program) handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		metrics.NewFootageCollector(p.api, footage.ParseSelection(p.settings.Cameras), p.settings.Timeout, logger),
		collectors.NewGoCollector(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(logger),
	}))
	return mux
}

func (p *program) Start(s service.Service) error {
	// Start should not block. The server exists before the goroutine so
	// that Stop can always shut it down.
	p.server = &http.Server{
		Addr:              p.listen,
		Handler:           p.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	p.done = make(chan struct{})
	go p.run(p.server, p.done)
	return nil
}

func (p *program) run(server *http.Server, done chan struct{}) {
	defer close(done)

	// The collector logs in again whenever the session is rejected, so an
	// initial failure is only reported
	if _, err := p.api.Login(context.Background()); err != nil {
		logger.Warn("initial login failed", zap.Error(err))
	} else {
		logger.Info("initial login successful")
	}

	logger.Info("protect exporter listening", zap.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server error", zap.Error(err))
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block for long. Signal the app to stop.
	logger.Info("stopping service")
	if p.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.server.Shutdown(ctx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	select {
	case <-p.done:
	case <-ctx.Done():
	}
	return nil
}

// serviceArguments rebuilds the command line the service manager runs.
func serviceArguments(s config.Settings) []string {
	args := []string{
		"exporter",
		"--address", s.Address,
		"--username", s.Username,
		"--password", s.Password,
		"--cameras", s.Cameras,
		"--listen", expListen,
	}
	if s.Port != 0 {
		args = append(args, "--port", strconv.Itoa(s.Port))
	}
	if s.NotUnifiOS {
		args = append(args, "--not-unifi-os")
	}
	if s.VerifySSL {
		args = append(args, "--verify-ssl")
	}
	return args
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus exporter for footage ranges",
	Long: `Starts a long-running HTTP server that exposes the footage range of
every selected camera as Prometheus metrics. Can be installed as a system service.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load(settings)

		svcConfig := &service.Config{
			Name:        "protect-exporter",
			DisplayName: "UniFi Protect Footage Exporter",
			Description: "Exposes UniFi Protect footage ranges to Prometheus",
			Arguments:   serviceArguments(s),
		}

		prg := newProgram(s, expListen)

		svc, err := service.New(prg, svcConfig)
		if err != nil {
			return err
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && !s.HasCredentials() {
				return errNoCredentials
			}
			if err := service.Control(svc, serviceAction); err != nil {
				return fmt.Errorf("failed to %s service: %w", serviceAction, err)
			}
			logger.Info("service action completed", zap.String("action", serviceAction))
			return nil
		}

		if !s.HasCredentials() {
			return errNoCredentials
		}

		// Run blocks until the service manager or an interrupt stops it
		return svc.Run()
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().StringVar(&expListen, "listen", ":9100", "Address to listen on")
	exporterCmd.Flags().String("cameras", footage.SelectAll, "Comma-separated camera IDs to export, or 'all'")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
