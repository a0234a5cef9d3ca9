package pulseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/db47h/pulseq"
)

func TestShapes(t *testing.T) {
	td := []struct {
		name    string
		s       pulseq.Shape
		x, want float64
	}{
		{"zero", pulseq.Zero, 0.5, 0},
		{"rect_start", pulseq.Rect, 0, 1},
		{"rect_mid", pulseq.Rect, 0.5, 1},
		{"rect_below", pulseq.Rect, -0.1, 0},
		{"rect_at_one", pulseq.Rect, 1, 0},
		{"gauss_peak", pulseq.Gauss, 0.5, 1},
		{"gauss_below", pulseq.Gauss, -0.5, 0},
		{"gauss_above", pulseq.Gauss, 1.5, 0},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			assert.InDelta(t, d.want, d.s.At(d.x), 1e-12)
		})
	}
}

func TestShape_gaussSymmetry(t *testing.T) {
	assert.InDelta(t, pulseq.Gauss.At(0.25), pulseq.Gauss.At(0.75), 1e-15)
	assert.Less(t, pulseq.Gauss.At(0.1), pulseq.Gauss.At(0.4))
}

func TestShape_Eval(t *testing.T) {
	got := pulseq.Rect.Eval([]float64{0, 0.25, 0.5, 0.75})
	assert.Equal(t, []float64{1, 1, 1, 1}, got)
}

func TestShape_Mul(t *testing.T) {
	half := pulseq.NewShape("half", func(float64) float64 { return 0.5 })
	prod := pulseq.Rect.Mul(half)
	assert.Equal(t, "rect", prod.Name(), "composition keeps the receiver's name")
	assert.InDelta(t, 0.5, prod.At(0.3), 1e-15)
	assert.InDelta(t, 0, prod.At(1.2), 1e-15, "windowing survives composition")
}

func TestShape_zeroValue(t *testing.T) {
	var s pulseq.Shape
	assert.Equal(t, 0.0, s.At(0.5))
	assert.Equal(t, "", s.Name())
}
