package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/export"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/viz"
)

var (
	timelineSVG   string
	timelineWidth int
)

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "list the scenes in the catalog",
		RunE:  listScenes,
	}
}

func listScenes(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	registry := scenes.Default()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tDURATION\tRENDERER\tTITLE")
	for _, s := range catalog.Scenes() {
		name := registry.Name(s.ID)
		if name == "" {
			name = "(missing)"
		}
		fmt.Fprintf(w, "%d\t%s\t%.1fs\t%s\t%s\n", s.ID, viz.Clock(catalog.Offset(s.ID)), s.Duration, name, s.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ntotal %s\n", viz.Clock(catalog.Total()))
	return registry.Validate(catalog)
}

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "show the scene timeline",
		RunE:  showTimeline,
	}
	cmd.Flags().StringVar(&timelineSVG, "svg", "", "write the timeline as SVG to this path")
	cmd.Flags().IntVar(&timelineWidth, "width", 72, "timeline width in cells (or pixels with --svg)")
	return cmd
}

func showTimeline(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	if timelineSVG != "" {
		width := timelineWidth
		if !cmd.Flags().Changed("width") {
			width = 900
		}
		if err := os.WriteFile(timelineSVG, []byte(export.TimelineSVG(catalog, width, 140)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", timelineSVG)
		return nil
	}

	cells := max(timelineWidth, catalog.Len())
	var bar, labels strings.Builder
	used := 0
	for i, s := range catalog.Scenes() {
		n := int(float64(cells)*(catalog.Offset(s.ID)+s.Duration)/catalog.Total()+0.5) - used
		if i == catalog.Len()-1 {
			n = cells - used
		}
		n = max(n, 1)
		used += n

		style := viz.Subtle
		if i%2 == 0 {
			style = viz.Title
		}
		bar.WriteString(style.Render(strings.Repeat("█", n)))
		label := fmt.Sprintf("%d", s.ID)
		labels.WriteString(label + strings.Repeat(" ", max(n-len(label), 0)))
	}

	fmt.Println(bar.String())
	fmt.Println(labels.String())
	fmt.Printf("0:00%s%s\n", strings.Repeat(" ", max(cells-10, 1)), viz.Clock(catalog.Total()))
	return nil
}
