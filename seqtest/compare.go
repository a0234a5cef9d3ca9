// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package seqtest provides utility functions for testing sequences and
// rendered waveforms.
//
package seqtest

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/db47h/pulseq"
)

// EqualWaveforms asserts that got has the same length as want and matches
// it elementwise within tol (in absolute complex distance).
func EqualWaveforms(t *testing.T, want, got pulseq.Waveform, tol float64) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), "waveform length") {
		return false
	}
	for i := range want {
		if d := cmplx.Abs(got[i] - want[i]); d > tol {
			t.Errorf("sample %d: got %v, want %v (|Δ| = %g > %g)", i, got[i], want[i], d, tol)
			return false
		}
	}
	return true
}

// EqualSamples asserts that two real sample slices match elementwise
// within tol.
func EqualSamples(t *testing.T, want, got []float64, tol float64) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), "sample count") {
		return false
	}
	for i := range want {
		if d := math.Abs(got[i] - want[i]); d > tol {
			t.Errorf("sample %d: got %g, want %g (|Δ| = %g > %g)", i, got[i], want[i], d, tol)
			return false
		}
	}
	return true
}

// Bounded asserts that the real part of every sample lies within
// [-limit, limit].
func Bounded(t *testing.T, w pulseq.Waveform, limit float64) bool {
	t.Helper()
	for i, z := range w {
		if v := real(z); v < -limit || v > limit {
			t.Errorf("sample %d: %g outside [-%g, %g]", i, v, limit, limit)
			return false
		}
	}
	return true
}

// Real asserts that no sample of w has an imaginary component.
func Real(t *testing.T, w pulseq.Waveform) bool {
	t.Helper()
	return assert.True(t, w.IsReal(), "waveform has a nonzero imaginary component")
}
