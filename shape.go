// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulseq

import "math"

// A Shape is a named envelope function defined on the normalized interval
// [0,1). Shapes describe the form of a pulse independently of its duration
// and amplitude; the engine always evaluates them on in-range fractions.
//
type Shape struct {
	name string
	fn   func(x float64) float64
}

// NewShape returns a shape evaluating fn. The name is informational and
// shows up in pulse listings and schematic captions.
//
func NewShape(name string, fn func(x float64) float64) Shape {
	return Shape{name: name, fn: fn}
}

// Name returns the shape name.
func (s Shape) Name() string { return s.name }

// At evaluates the shape at the fractional time x. The zero value of Shape
// evaluates to 0 everywhere.
func (s Shape) At(x float64) float64 {
	if s.fn == nil {
		return 0
	}
	return s.fn(x)
}

// Eval evaluates the shape elementwise over a slice of fractional times.
func (s Shape) Eval(fractions []float64) []float64 {
	out := make([]float64, len(fractions))
	for i, x := range fractions {
		out[i] = s.At(x)
	}
	return out
}

// Mul returns the pointwise product of s and o. The result keeps the name
// of s unless renamed with a subsequent NewShape.
//
func (s Shape) Mul(o Shape) Shape {
	return Shape{name: s.name, fn: func(x float64) float64 { return s.At(x) * o.At(x) }}
}

// Pre-built shapes. These are initialized once and must not be modified.
var (
	// Zero is the constant 0 envelope, used by wait and placeholder
	// readout pulses.
	Zero = NewShape("", func(float64) float64 { return 0 })

	// Rect is 1 on [0,1) and 0 outside.
	Rect = NewShape("rect", func(x float64) float64 {
		if x >= 0 && x < 1 {
			return 1
		}
		return 0
	})

	// Gauss is a Gaussian with mean 0.5 and standard deviation 0.166 of
	// the unit interval, hard-windowed to [0,1) by Rect.
	Gauss = NewShape("gauss", func(x float64) float64 {
		d := (x - 0.5) / 0.166
		return math.Exp(-0.5 * d * d)
	}).Mul(Rect)
)
