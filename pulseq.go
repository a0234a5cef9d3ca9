// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulseq

import (
	"math"
	"math/cmplx"
)

// A Role tags how the engine schedules a pulse.
type Role int

const (
	// Signal pulses render their shaped envelope.
	Signal Role = iota
	// Wait pulses render as silence for their duration.
	Wait
	// Readout pulses render as silence and record the readout marker at
	// the start of their slice.
	Readout
)

func (r Role) String() string {
	switch r {
	case Signal:
		return "signal"
	case Wait:
		return "wait"
	case Readout:
		return "readout"
	}
	return "unknown"
}

// A Pulse is one scheduled unit of a sequence: an envelope shape, a fixed
// or variable duration, and the IQ-mixer calibration used for heterodyne
// mixing. Pulses are constructed once with NewPulse and treated as
// immutable afterwards.
//
type Pulse struct {
	name        string
	shape       Shape
	duration    Duration
	amplitude   float64
	phase       float64 // degrees
	iqFrequency float64 // Hz, 0 selects homodyne mixing
	iqDCOffset  complex128
	iqAngle     float64 // degrees between I and Q, nominally 90
	role        Role
}

// An Option configures a Pulse at construction time.
type Option func(*Pulse)

// WithShape sets the envelope shape. The default is Rect.
func WithShape(s Shape) Option { return func(p *Pulse) { p.shape = s } }

// WithAmplitude sets the relative amplitude. The default is 1.
func WithAmplitude(a float64) Option { return func(p *Pulse) { p.amplitude = a } }

// WithPhase sets the pulse phase in degrees (e.g. 90 for a pulse around
// the y-axis of the Bloch sphere).
func WithPhase(deg float64) Option { return func(p *Pulse) { p.phase = deg } }

// WithIQFrequency sets the IQ frequency in Hz for heterodyne mixing. A
// frequency of 0 (the default) selects homodyne mixing: the envelope stays
// real and no carrier is applied.
func WithIQFrequency(hz float64) Option { return func(p *Pulse) { p.iqFrequency = hz } }

// WithIQDCOffset sets the complex mixer calibration offset: the real part
// is the dc offset of I, the imaginary part the dc offset of Q.
func WithIQDCOffset(off complex128) Option { return func(p *Pulse) { p.iqDCOffset = off } }

// WithIQAngle sets the angle between I and Q in degrees. The default is
// 90; other values model an imperfect mixer and rotate Q relative to I.
func WithIQAngle(deg float64) Option { return func(p *Pulse) { p.iqAngle = deg } }

// WithRole sets the pulse role. The default is Signal.
func WithRole(r Role) Option { return func(p *Pulse) { p.role = r } }

// NewPulse returns a pulse with the given name and duration. The defaults
// are a Rect shape, amplitude 1, phase 0, homodyne mixing and a 90 degree
// IQ angle.
//
func NewPulse(name string, d Duration, opts ...Option) *Pulse {
	p := &Pulse{
		name:      name,
		shape:     Rect,
		duration:  d,
		amplitude: 1,
		iqAngle:   90,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Name returns the pulse name.
func (p *Pulse) Name() string { return p.name }

// Shape returns the envelope shape.
func (p *Pulse) Shape() Shape { return p.shape }

// Duration returns the pulse duration.
func (p *Pulse) Duration() Duration { return p.duration }

// Amplitude returns the relative amplitude.
func (p *Pulse) Amplitude() float64 { return p.amplitude }

// Phase returns the pulse phase in degrees.
func (p *Pulse) Phase() float64 { return p.phase }

// IQFrequency returns the IQ frequency in Hz.
func (p *Pulse) IQFrequency() float64 { return p.iqFrequency }

// IQDCOffset returns the complex mixer calibration offset.
func (p *Pulse) IQDCOffset() complex128 { return p.iqDCOffset }

// IQAngle returns the angle between I and Q in degrees.
func (p *Pulse) IQAngle() float64 { return p.iqAngle }

// Role returns the pulse role.
func (p *Pulse) Role() Role { return p.role }

// Envelope returns the real envelope of the pulse sampled at the given
// rate: amplitude*shape(t/d) for t = 0, 1/rate, ... < d. It returns an
// UnresolvedDurationError if the duration is still a function of
// parameters.
//
func (p *Pulse) Envelope(sampleRate float64) ([]float64, error) {
	if p.duration.Variable() {
		return nil, &UnresolvedDurationError{Pulse: p.name}
	}
	d, err := p.duration.Resolve(nil)
	if err != nil {
		return nil, err
	}
	return p.envelope(d, sampleRate), nil
}

// envelope samples the shaped envelope over [0, d) at 1/sampleRate.
func (p *Pulse) envelope(d, sampleRate float64) []float64 {
	n := int(math.Ceil(d * sampleRate))
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		if t >= d {
			break
		}
		out = append(out, p.amplitude*p.shape.At(t/d))
	}
	return out
}

// ComplexEnvelope returns the envelope with the IQ carrier applied. For
// homodyne pulses (IQ frequency 0) the result equals Envelope with no
// imaginary component. Otherwise the envelope is modulated onto
// exp(i(2*pi*f*t - phase)), the quadrature angle correction is applied and
// the dc offset is added.
//
func (p *Pulse) ComplexEnvelope(sampleRate float64) (Waveform, error) {
	env, err := p.Envelope(sampleRate)
	if err != nil {
		return nil, err
	}
	if p.iqFrequency == 0 {
		return fromReal(env), nil
	}
	wfm := make(Waveform, len(env))
	for i, v := range env {
		t := float64(i) / sampleRate
		wfm[i] = complex(v, 0) * carrier(p.iqFrequency, t, p.phase)
	}
	quadratureCorrect(wfm, p.iqAngle)
	for i := range wfm {
		wfm[i] += p.iqDCOffset
	}
	return wfm, nil
}

// carrier returns the IQ carrier exp(i(2*pi*f*t - pi/180*phaseDeg)).
func carrier(f, t, phaseDeg float64) complex128 {
	return cmplx.Exp(complex(0, 2*math.Pi*f*t-math.Pi/180*phaseDeg))
}

// quadratureCorrect compensates an IQ mixer whose channels are not exactly
// 90 degrees apart by rotating Q relative to I: I = Re(z),
// Q = Im(z*exp(i*pi/180*(90-angle))).
func quadratureCorrect(w Waveform, angleDeg float64) {
	if angleDeg == 90 {
		return
	}
	rot := cmplx.Exp(complex(0, math.Pi/180*(90-angleDeg)))
	for i, z := range w {
		w[i] = complex(real(z), imag(z*rot))
	}
}
