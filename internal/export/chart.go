package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// EnergyChartPNG renders the per-step energy series as a PNG line chart.
func EnergyChartPNG(times, energies []float64, w io.Writer) error {
	if len(times) != len(energies) || len(times) < 2 {
		return fmt.Errorf("energy chart needs at least 2 matching samples, got %d/%d", len(times), len(energies))
	}

	graph := chart.Chart{
		Title: "field energy",
		XAxis: chart.XAxis{Name: "time (s)"},
		YAxis: chart.YAxis{Name: "sum of squares"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "energy",
				XValues: times,
				YValues: energies,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
