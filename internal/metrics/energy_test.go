package metrics

import (
	"testing"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

func TestEnergy(t *testing.T) {
	m := NewEnergy()

	if m.Value() != 0 {
		t.Error("expected zero energy before any observation")
	}

	f := fdtd.Field{3, 4, 0, 0}
	m.Observe(0, f, 0)
	if m.Value() != 25 {
		t.Errorf("expected energy 25, got %f", m.Value())
	}

	// Energy tracks the latest snapshot, not an accumulation.
	m.Observe(1, fdtd.Field{1, 0, 0, 0}, 1e-15)
	if m.Value() != 1 {
		t.Errorf("expected energy 1 after second observation, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestPeakAmplitude(t *testing.T) {
	m := NewPeakAmplitude()

	m.Observe(0, fdtd.Field{0.5, -2.0, 1.0}, 0)
	if m.Value() != 2.0 {
		t.Errorf("expected peak 2.0, got %f", m.Value())
	}

	// Peak is monotone over the run.
	m.Observe(1, fdtd.Field{0.1, 0.1, 0.1}, 1e-15)
	if m.Value() != 2.0 {
		t.Errorf("expected peak to stay 2.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}

func TestFieldEnergy(t *testing.T) {
	if e := FieldEnergy(fdtd.Field{}); e != 0 {
		t.Errorf("expected zero energy for empty field, got %f", e)
	}
	if e := FieldEnergy(fdtd.Field{-1, 2}); e != 5 {
		t.Errorf("expected energy 5, got %f", e)
	}
}
