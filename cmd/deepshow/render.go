package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/config"
	"github.com/san-kum/deepshow/internal/export"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/storage"
)

var (
	renderPreset   string
	renderFormat   string
	renderOut      string
	renderWidth    int
	renderHeight   int
	renderFPS      int
	renderWorkers  int
	renderLimit    int
	renderGIFWidth int
	renderNoRecord bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the show to PNG frames, GIF or MP4",
		Long: "Render plays the show at a fixed frame rate and writes every frame.\n" +
			"Formats: png (a directory of frames), gif, mp4 (needs ffmpeg).\n" +
			"Presets: " + strings.Join(config.ListPresets(), ", "),
		RunE: runRender,
	}
	cmd.Flags().StringVar(&renderPreset, "preset", "", "resolution preset")
	cmd.Flags().StringVarP(&renderFormat, "format", "f", "mp4", "png, gif or mp4")
	cmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, or directory for png")
	cmd.Flags().IntVar(&renderWidth, "width", 1280, "frame width")
	cmd.Flags().IntVar(&renderHeight, "height", 720, "frame height")
	cmd.Flags().IntVar(&renderFPS, "fps", 30, "frames per second")
	cmd.Flags().IntVar(&renderWorkers, "workers", 0, "parallel painters (0 = one per CPU)")
	cmd.Flags().IntVar(&renderLimit, "limit", 0, "stop after this many frames")
	cmd.Flags().IntVar(&renderGIFWidth, "gif-width", 480, "gif frame width")
	cmd.Flags().BoolVar(&renderNoRecord, "no-record", false, "do not record the run")
	cmd.Flags().DurationVar(&playTransition, "transition", config.DefaultTransition, "scene transition length (0 for cuts)")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if renderPreset != "" {
		if err := cfg.ApplyPreset(renderPreset); err != nil {
			return err
		}
	}
	if flags.Changed("format") {
		cfg.Render.Format = renderFormat
		if !flags.Changed("out") && renderPreset == "" {
			cfg.Render.Output = "deepshow." + renderFormat
		}
	}
	if flags.Changed("out") {
		cfg.Render.Output = renderOut
	}
	if flags.Changed("width") {
		cfg.Render.Width = renderWidth
	}
	if flags.Changed("height") {
		cfg.Render.Height = renderHeight
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = renderFPS
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = renderWorkers
	}
	if flags.Changed("gif-width") {
		cfg.Render.GIFWidth = renderGIFWidth
	}
	if flags.Changed("transition") {
		cfg.Playback.Transition = playTransition
	}
	if cfg.Render.Format == "png" && filepath.Ext(cfg.Render.Output) != "" {
		cfg.Render.Output = strings.TrimSuffix(cfg.Render.Output, filepath.Ext(cfg.Render.Output))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	e := &export.Exporter{Catalog: catalog, Registry: scenes.Default()}
	if !renderNoRecord {
		e.Store = storage.New(cfg.RunsDir)
	}

	res, err := e.Render(cmd.Context(), export.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		FPS:        cfg.Render.FPS,
		Format:     cfg.Render.Format,
		Output:     cfg.Render.Output,
		Workers:    cfg.Render.Workers,
		Transition: cfg.Playback.Transition,
		GIFWidth:   cfg.Render.GIFWidth,
		Limit:      renderLimit,
	})
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d frames to %s in %v (%d workers)\n", res.Frames, res.Output, res.Elapsed.Round(time.Millisecond), res.Workers)
	if res.RunID != "" {
		fmt.Printf("run id: %s\n", res.RunID)
	}
	return nil
}
