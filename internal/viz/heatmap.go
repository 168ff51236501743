package viz

import (
	"math"
	"strings"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

var rampRunes = []rune{'█', '▓', '▒', '·', '▒', '▓', '█'}

// RenderField downsamples a field to cols×rows terminal cells and renders
// it as a colored character heatmap. Each cell shows the average of its
// grid block; scale sets the amplitude mapped to full intensity.
func RenderField(field fdtd.Field, nx, ny, cols, rows int, scale float64) string {
	if cols < 1 || rows < 1 || nx < 1 || ny < 1 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := blockAverage(field, nx, ny, cols, rows, c, r)
			sb.WriteString(cellFor(v, scale))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// blockAverage averages the grid block mapped to terminal cell (c, r). The
// terminal x axis follows the grid j axis, the terminal y axis the i axis.
func blockAverage(field fdtd.Field, nx, ny, cols, rows, c, r int) float64 {
	i0 := r * nx / rows
	i1 := (r + 1) * nx / rows
	j0 := c * ny / cols
	j1 := (c + 1) * ny / cols
	if i1 <= i0 {
		i1 = i0 + 1
	}
	if j1 <= j0 {
		j1 = j0 + 1
	}

	sum := 0.0
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			sum += field[i*ny+j]
		}
	}
	return sum / float64((i1-i0)*(j1-j0))
}

func cellFor(v, scale float64) string {
	u := v / scale
	if u > 1 {
		u = 1
	}
	if u < -1 {
		u = -1
	}
	// bucket 0..6, center bucket is near-zero
	bucket := int(math.Round((u + 1) / 2 * 6))
	return rampStyles[bucket].Render(string(rampRunes[bucket]))
}

// CenterRow extracts the row through the source for profile plots.
func CenterRow(field fdtd.Field, nx, ny int) []float64 {
	i := nx / 2
	row := make([]float64, ny)
	copy(row, field[i*ny:(i+1)*ny])
	return row
}
