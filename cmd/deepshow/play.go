package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/tui"
)

var (
	playFPS        int
	playTheme      string
	playTransition time.Duration
	playTick       time.Duration
	playAutoplay   bool
	playLogFile    string
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&playFPS, "fps", 30, "preview frame rate")
	cmd.Flags().StringVar(&playTheme, "theme", "neon", "color theme (neon, minimal, ocean)")
	cmd.Flags().DurationVar(&playTransition, "transition", time.Second, "scene transition length (0 for cuts)")
	cmd.Flags().DurationVar(&playTick, "tick", 100*time.Millisecond, "playback tick interval")
	cmd.Flags().BoolVar(&playAutoplay, "autoplay", true, "start playing immediately")
	cmd.Flags().StringVar(&playLogFile, "log-file", "", "write logs here while the terminal UI runs")
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "play the show in the terminal",
		RunE:  runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Playback.FPS = playFPS
	}
	if flags.Changed("theme") {
		cfg.Playback.Theme = playTheme
	}
	if flags.Changed("transition") {
		cfg.Playback.Transition = playTransition
	}
	if flags.Changed("tick") {
		cfg.Playback.TickInterval = playTick
	}
	if flags.Changed("autoplay") {
		cfg.Playback.Autoplay = playAutoplay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; keep log lines out of it.
	var logOut io.Writer = io.Discard
	if playLogFile != "" {
		f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if err := setupLogging(cfg.LogLevel, logOut); err != nil {
		return err
	}
	defer setupLogging(cfg.LogLevel, os.Stderr)

	log.Info().Int("scenes", catalog.Len()).Int("fps", cfg.Playback.FPS).Msg("starting terminal player")
	return tui.Run(cmd.Context(), tui.Options{
		Catalog:      catalog,
		Registry:     scenes.Default(),
		TickInterval: cfg.Playback.TickInterval,
		FPS:          cfg.Playback.FPS,
		Transition:   cfg.Playback.Transition,
		Theme:        cfg.Playback.Theme,
		Autoplay:     cfg.Playback.Autoplay,
	})
}
