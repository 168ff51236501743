package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

// FieldToSVG renders a snapshot as an SVG heatmap, one rect per grid cell.
// Amplitude maps to a blue-black-red ramp normalized to the field's own
// peak; scale is the rendered cell size in pixels.
func FieldToSVG(field fdtd.Field, nx, ny int, scale float64) string {
	if len(field) != nx*ny || nx < 1 || ny < 1 {
		return ""
	}
	if scale <= 0 {
		scale = 4
	}

	peak := 0.0
	for _, v := range field {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		peak = 1
	}

	width := float64(ny) * scale
	height := float64(nx) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			u := field[i*ny+j] / peak
			r, g, b := rampColor(u)
			if r == 0 && g == 0 && b == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(j)*scale, float64(i)*scale, scale, scale, r, g, b))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func rampColor(u float64) (uint8, uint8, uint8) {
	if u > 1 {
		u = 1
	}
	if u < -1 {
		u = -1
	}
	mag := uint8(math.Abs(u) * 255)
	if u >= 0 {
		return mag, mag / 4, 0
	}
	return 0, mag / 4, mag
}
