// Package export renders the show offline. Frames are planned by stepping
// a playback controller and a render dispatcher with a fixed delta, painted
// in parallel on raster surfaces, and written in order to a PNG sequence,
// an animated GIF or an ffmpeg encode.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scene"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/storage"
)

var ErrSize = errors.New("export: frame size and rate must be positive")

type Options struct {
	Width, Height int
	FPS           int
	Format        string
	// Output is a file for gif and mp4, a directory for png.
	Output     string
	Workers    int
	Transition time.Duration
	GIFWidth   int
	// Limit caps the number of frames written. Zero writes the whole show.
	Limit int
}

type Result struct {
	RunID   string
	Output  string
	Frames  int
	Workers int
	Elapsed time.Duration
}

// Exporter renders a catalog with a registry and records each run in an
// optional store. Nil Catalog and Registry mean the built-in show.
type Exporter struct {
	Catalog  *scene.Catalog
	Registry *scenes.Registry
	Store    *storage.Store
}

func (e *Exporter) Render(ctx context.Context, opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, ErrSize
	}
	catalog, registry := e.Catalog, e.Registry
	if catalog == nil {
		catalog = scene.Default()
	}
	if registry == nil {
		registry = scenes.Default()
	}
	if err := registry.Validate(catalog); err != nil {
		return nil, err
	}

	start := time.Now()
	frames, d, err := PlanFrames(catalog, registry, opts.FPS, opts.Transition)
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && opts.Limit < len(frames) {
		frames = frames[:opts.Limit]
	}

	sink, err := NewSink(ctx, opts)
	if err != nil {
		return nil, err
	}

	workers := Workers(opts.Workers)
	log.Info().
		Str("format", opts.Format).
		Str("output", opts.Output).
		Int("frames", len(frames)).
		Int("workers", workers).
		Msgf("rendering %dx%d at %d fps", opts.Width, opts.Height, opts.FPS)

	if err := Paint(ctx, d, frames, opts.Width, opts.Height, workers, sink); err != nil {
		sink.Close()
		return nil, err
	}
	if err := sink.Close(); err != nil {
		return nil, err
	}

	res := &Result{
		Output:  opts.Output,
		Frames:  len(frames),
		Workers: workers,
		Elapsed: time.Since(start),
	}

	if e.Store != nil {
		records := make([]storage.FrameRecord, len(frames))
		for i, f := range frames {
			records[i] = f.Record()
		}
		res.RunID, err = e.Store.Save(storage.RunMetadata{
			Format:     opts.Format,
			Output:     opts.Output,
			Width:      opts.Width,
			Height:     opts.Height,
			FPS:        opts.FPS,
			Frames:     len(frames),
			Scenes:     catalog.Len(),
			Duration:   catalog.Total(),
			Transition: opts.Transition.Seconds(),
			Workers:    workers,
			RenderTime: res.Elapsed.Seconds(),
		}, records)
		if err != nil {
			return res, fmt.Errorf("failed to record run: %w", err)
		}
	}

	log.Info().Str("run", res.RunID).Dur("elapsed", res.Elapsed).Msg("render complete")
	return res, nil
}

// Paint paints frames with d on up to workers rasters at a time and hands
// them to sink in frame order.
func Paint(ctx context.Context, d *render.Dispatcher, frames []Frame, width, height, workers int, sink Sink) error {
	workers = max(1, workers)

	pool := make(chan *canvas.Raster, workers)
	for i := 0; i < workers; i++ {
		fonts, err := canvas.LoadFonts()
		if err != nil {
			return err
		}
		defer fonts.Close()
		r := canvas.NewRaster(width, height, fonts)
		defer r.Close()
		pool <- r
	}

	batch := BatchSize(workers, width, height)
	for lo := 0; lo < len(frames); lo += batch {
		hi := min(lo+batch, len(frames))
		images, err := paintBatch(ctx, d, frames[lo:hi], width, height, workers, pool)
		if err != nil {
			return err
		}
		for _, img := range images {
			if err := sink.WriteFrame(img); err != nil {
				return err
			}
		}
		log.Debug().Int("done", hi).Int("total", len(frames)).Msg("frames written")
	}
	return nil
}

func paintBatch(ctx context.Context, d *render.Dispatcher, frames []Frame, width, height, workers int, pool chan *canvas.Raster) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := <-pool
			defer func() { pool <- r }()

			if err := d.Paint(r, float64(width), float64(height), f.Plan); err != nil {
				return fmt.Errorf("frame %d: %w", f.Index, err)
			}
			if err := r.Err(); err != nil {
				return fmt.Errorf("frame %d: %w", f.Index, err)
			}

			img := image.NewRGBA(image.Rect(0, 0, width, height))
			xdraw.Draw(img, img.Bounds(), r.Image(), image.Point{}, xdraw.Src)
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
