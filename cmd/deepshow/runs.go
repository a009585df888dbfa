package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/storage"
	"github.com/san-kum/deepshow/internal/viz"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list and inspect recorded render runs",
		RunE:  listRuns,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "show a run's settings and scene timeline",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	})
	return cmd
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.RunsDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFORMAT\tSIZE\tFPS\tFRAMES\tWORKERS\tRENDER")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\t%.1fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Format,
			run.Width, run.Height,
			run.FPS,
			run.Frames,
			run.Workers,
			run.RenderTime,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.RunsDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTimeline(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("output: %s (%s)\n", meta.Output, meta.Format)
	fmt.Printf("size: %dx%d at %d fps\n", meta.Width, meta.Height, meta.FPS)
	fmt.Printf("show: %d scenes, %s, transition %.2fs\n", meta.Scenes, viz.Clock(meta.Duration), meta.Transition)
	fmt.Printf("frames: %d in %.1fs on %d workers\n\n", meta.Frames, meta.RenderTime, meta.Workers)

	if len(frames) == 0 {
		return nil
	}

	sceneIDs := make([]float64, len(frames))
	fades := 0
	for i, f := range frames {
		sceneIDs[i] = float64(f.Scene)
		if f.From != 0 {
			fades++
		}
	}
	fmt.Println(asciigraph.Plot(sceneIDs,
		asciigraph.Height(max(meta.Scenes, 2)),
		asciigraph.Width(80),
		asciigraph.Precision(0),
		asciigraph.Caption("scene by frame"),
	))
	fmt.Printf("\ntransition frames: %d\n", fades)
	return nil
}
