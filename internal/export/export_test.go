package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

func TestFieldToSVG(t *testing.T) {
	field := fdtd.Field{0, 0.5, -0.5, 1.0}
	svg := FieldToSVG(field, 2, 2, 4)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected XML header")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected svg element")
	}
	if !strings.Contains(svg, "<rect x=") {
		t.Error("expected at least one cell rect")
	}
}

func TestFieldToSVGShapeMismatch(t *testing.T) {
	if svg := FieldToSVG(make(fdtd.Field, 3), 2, 2, 4); svg != "" {
		t.Error("expected empty output for shape mismatch")
	}
}

func TestEnergyChartPNG(t *testing.T) {
	times := []float64{0, 1e-15, 2e-15, 3e-15}
	energies := []float64{0, 0.5, 1.0, 0.8}

	var buf bytes.Buffer
	if err := EnergyChartPNG(times, energies, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected PNG bytes")
	}

	if err := EnergyChartPNG(times, energies[:2], &buf); err == nil {
		t.Error("expected error for mismatched series lengths")
	}
}
