// Command server exposes the orthodromic engine over HTTP as JSON, GeoJSON,
// FlatGeobuf and the binary stream format.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	orthodrome "github.com/tingold/orb-orthodrome"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "orthodrome-server",
		Short: "Serve great-circle computations over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml if present)")
	flags.Int("port", 8080, "HTTP listen port")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Int("segments", 36, "default number of segments for ellipses and arcs")
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("geometry.default_segments", flags.Lookup("segments"))

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func run(cfg *Config) error {
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	registry := orthodrome.NewRegistry()
	registry.Default()
	if _, err := registry.Resolve(cfg.Geometry.DefaultDatum); err != nil {
		return fmt.Errorf("geometry.default_datum: %w", err)
	}

	app := newApp(newAPI(registry, cfg.Geometry, log), cfg.Server)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("server starting", zap.String("addr", addr), zap.Strings("datums", registry.IDs()))
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
