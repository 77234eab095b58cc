// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rteeter/logCollection/internal/api"
	"github.com/rteeter/logCollection/internal/auth"
	"github.com/rteeter/logCollection/internal/config"
	"github.com/rteeter/logCollection/internal/logfile"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

// @title Log Retrieval API
// @version 1.0
// @description Serves the most recent lines of files in a single log directory, optionally filtered by a keyword.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the server token.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "log-retrieval-server",
		Short:         "Minimal log retrieval server",
		Long:          "Serves the most recent lines of files in a single log directory over HTTP, with optional bearer token auth.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile, cmd.Flags())
			if err != nil {
				// Use a basic logger here as the configured one isn't ready yet
				log.New(os.Stderr).Errorf("Failed to load configuration: %v", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntP("port", "p", 8000, "Port to listen on")
	flags.StringP("token", "t", "", "Authentication token (disables auth when empty)")
	flags.String("log-dir", "/var/log", "Directory log files are served from")
	flags.Int("lines", 1000, "Number of lines returned when the request does not specify one")
	flags.Int("max-lines", 0, "Largest accepted lines value (0 for no limit)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error or fatal")
	flags.StringVar(&envFile, "env-file", ".env", "Optional env file with configuration")

	return cmd
}

func setupLogger(level string) {
	log.SetOutput(os.Stderr)
	log.SetTimeFormat("2006-01-02 15:04:05")

	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	default:
		log.Warnf("Invalid LOG_LEVEL '%s' specified in config, defaulting to 'info'", level)
		log.SetLevel(log.InfoLevel)
	}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, cfg *config.Config) error {
	setupLogger(cfg.LogLevel)
	log.Infof("Configuration loaded successfully. Log level set to '%s'.", cfg.LogLevel)
	log.Debugf("API Port: %d", cfg.APIPort)
	log.Debugf("Default lines: %d, max lines: %d", cfg.DefaultLines, cfg.MaxLinesLimit)
	log.Debugf("Timeouts: read %s, write %s, request %s", cfg.ReadTimeout, cfg.WriteTimeout, cfg.RequestTimeout)

	guard, err := logfile.NewGuard(cfg.LogDir, cfg.Patterns())
	if err != nil {
		log.Errorf("Invalid log directory: %v", err)
		return err
	}
	log.Infof("Serving logs from %s", guard.Root())
	if patterns := cfg.Patterns(); len(patterns) > 0 {
		log.Infof("Restricting files to patterns: %v", patterns)
	}

	validator := auth.NewTokenValidator(cfg.AuthToken)
	if validator.Enabled() {
		log.Info("Authentication enabled")
	} else {
		log.Warn("Authentication disabled. Set AUTH_TOKEN or --token to require a bearer token.")
	}

	// --- Initialize Gin router ---
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	if proxies, ok := cfg.Proxies(); ok {
		log.Infof("Setting trusted proxies: %v", proxies)
		if err := router.SetTrustedProxies(proxies); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
		}
	} else {
		log.Warn("All proxies are trusted (default). Set TRUSTED_PROXIES=nil to disable proxy trust or provide a comma-separated list of trusted proxy IPs.")
	}

	handler := api.NewHandler(guard, logfile.NewReader(), api.Options{
		DefaultLines:   cfg.DefaultLines,
		MaxLinesLimit:  cfg.MaxLinesLimit,
		RequestTimeout: cfg.RequestTimeout,
		Version:        version,
		AuthEnabled:    validator.Enabled(),
	})
	api.SetupRoutes(router, handler, validator)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnable {
			log.Infof("Starting HTTPS server on port %d", cfg.APIPort)
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		log.Infof("Starting HTTP server on port %d", cfg.APIPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Failed to start server: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
