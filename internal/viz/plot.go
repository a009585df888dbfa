package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Series is one named trace for Plot.
type Series struct {
	Name  string
	Data  []float64
	Color asciigraph.AnsiColor
}

// Plot charts every non-empty series on a shared axis. Width and height
// are in terminal cells.
func Plot(caption string, width, height int, series ...Series) string {
	var data [][]float64
	var colors []asciigraph.AnsiColor
	for _, s := range series {
		if len(s.Data) == 0 {
			continue
		}
		data = append(data, s.Data)
		colors = append(colors, s.Color)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(max(height, 2)),
		asciigraph.Width(max(width, 10)),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)
}

// Tail returns at most the last n values of data.
func Tail(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	return data[len(data)-n:]
}
