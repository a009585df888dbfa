package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/config"
	"github.com/san-kum/deepshow/internal/scene"
)

var (
	configFile  string
	catalogFile string
	logLevel    string
	runsDir     string

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "deepshow",
		Short:         "narrated animated walkthrough of the DeepControl AIPC pump controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		RunE: runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "scene catalog (yaml); default is the built-in show")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&runsDir, "runs", config.DefaultRunsDir, "render run directory")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(
		newPlayCmd(),
		newRenderCmd(),
		newScenesCmd(),
		newTimelineCmd(),
		newSignalCmd(),
		newServeCmd(),
		newRunsCmd(),
		newConfigCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads --config over the defaults and applies the persistent
// flags that were set explicitly.
func loadConfig(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = catalogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("runs") {
		cfg.RunsDir = runsDir
	}

	return setupLogging(cfg.LogLevel, os.Stderr)
}

func setupLogging(level string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	return nil
}

func loadCatalog() (*scene.Catalog, error) {
	if cfg.Catalog == "" {
		return scene.Default(), nil
	}
	c, err := scene.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cfg.Catalog, err)
	}
	log.Debug().Str("path", cfg.Catalog).Int("scenes", c.Len()).Msg("catalog loaded")
	return c, nil
}
