package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bukabox/M4tracking-sub000/internal/bus"
	"github.com/bukabox/M4tracking-sub000/internal/config"
	"github.com/bukabox/M4tracking-sub000/internal/dashboard"
	"github.com/bukabox/M4tracking-sub000/internal/dataset"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "m4track.yaml", "configuration file")

	return cmd
}

func runServe(configPath string) error {
	// .env is optional; real deployments set env directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	changes := bus.New()
	svc := dashboard.NewService(cfg, changes, log)

	cols, err := dataset.NewLoader(cfg.Server.DataDir).Load()
	if err != nil {
		// Partial or malformed collections degrade to empty display.
		log.Warn().Err(err).Msg("loading collections")
	}
	svc.SetCollections(cols)
	svc.Rebuild()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go svc.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	svc.RegisterRoutes(router)

	server := &http.Server{Addr: cfg.Server.Listen, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Listen).Msg("dashboard API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return server.Shutdown(context.Background())
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(errors.Unwrap(err)) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
