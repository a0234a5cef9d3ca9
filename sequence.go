// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulseq

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// A Sequence is an ordered collection of pulse slices. Pulses appended
// with parallel=true share a slice with the next pulse and start at the
// same time offset. Render resolves variable durations, stitches all
// slices into one waveform and locates the readout marker.
//
// A Sequence is not safe for concurrent use.
//
type Sequence struct {
	slices       [][]*Pulse
	pulses       map[string]*Pulse
	variables    map[string]struct{}
	nextParallel bool
	sample       *Sample
	sampleRate   float64
	dcCorrection complex128
}

// A SequenceOption configures a Sequence at construction time.
type SequenceOption func(*Sequence)

// WithSample attaches the device settings. A nonzero Sample.Clock takes
// precedence over WithSampleRate.
func WithSample(s *Sample) SequenceOption { return func(q *Sequence) { q.sample = s } }

// WithSampleRate sets an explicit sample rate in Hz, used when no sample
// provides a clock.
func WithSampleRate(hz float64) SequenceOption { return func(q *Sequence) { q.sampleRate = hz } }

// WithDCCorrection sets the dc bias added to every rendered sample: the
// real part is the dc offset of I during idle times, the imaginary part
// the dc offset of Q. It adds to the per-pulse dc offsets.
func WithDCCorrection(dc complex128) SequenceOption { return func(q *Sequence) { q.dcCorrection = dc } }

// New returns an empty sequence.
func New(opts ...SequenceOption) *Sequence {
	q := &Sequence{
		pulses:    make(map[string]*Pulse),
		variables: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(q)
	}
	if q.sample != nil && q.sample.Clock != 0 {
		q.sampleRate = q.sample.Clock
	}
	return q
}

// SampleRate returns the resolved sample rate in Hz, or 0 if none is set.
func (q *Sequence) SampleRate() float64 { return q.sampleRate }

// DCCorrection returns the global dc bias.
func (q *Sequence) DCCorrection() complex128 { return q.dcCorrection }

// Append schedules a pulse at the end of the sequence. If the previous
// Append set parallel to true, the pulse joins the previous slice and
// starts at the same time offset instead of opening a new one.
//
// The pulse name must be non-empty and unique within the sequence; the
// identical pulse object may however be scheduled several times under its
// one registry entry. On error the sequence is left unchanged.
//
func (q *Sequence) Append(p *Pulse, parallel bool) error {
	if p == nil {
		return errors.New("nil pulse")
	}
	if p.name == "" {
		return &InvalidNameError{}
	}
	if prev, ok := q.pulses[p.name]; ok {
		if prev != p {
			return &InvalidNameError{Name: p.name}
		}
	} else {
		q.pulses[p.name] = p
	}
	for _, n := range p.duration.Params() {
		q.variables[n] = struct{}{}
	}
	if !q.nextParallel {
		q.slices = append(q.slices, nil)
	}
	last := len(q.slices) - 1
	q.slices[last] = append(q.slices[last], p)
	q.nextParallel = parallel
	return nil
}

// AppendWait schedules a silent pulse of the given duration. An empty name
// is replaced by the first unused "wait[N]".
//
func (q *Sequence) AppendWait(d Duration, name string) error {
	if name == "" {
		name = q.freeName("wait")
	}
	return q.Append(NewPulse(name, d, WithShape(Zero), WithRole(Wait)), false)
}

// AppendReadout schedules the readout marker. With a nil custom pulse a
// placeholder named "readout[N]" is generated, its duration taken from the
// sample's readout tone length (0 if absent). A custom pulse whose role is
// not Readout is coerced and a warning is logged.
//
func (q *Sequence) AppendReadout(parallel bool, custom *Pulse) error {
	if custom == nil {
		var length float64
		if q.sample != nil {
			length = q.sample.ReadoutToneLength
		}
		custom = NewPulse(q.freeName("readout"), Fixed(length),
			WithShape(Zero), WithRole(Readout))
	} else if custom.role != Readout {
		custom.role = Readout
		Logger().Warn("pulse role changed to readout", "pulse", custom.name)
	}
	return q.Append(custom, parallel)
}

// freeName returns the first "prefix[N]" not yet registered.
func (q *Sequence) freeName(prefix string) string {
	for i := 0; ; i++ {
		n := fmt.Sprintf("%s[%d]", prefix, i)
		if _, ok := q.pulses[n]; !ok {
			return n
		}
	}
}

// VariableNames returns the sorted names of all parameters required by
// variable-duration pulses in the sequence.
func (q *Sequence) VariableNames() []string {
	names := make([]string, 0, len(q.variables))
	for n := range q.variables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HasReadout reports whether any scheduled pulse has the Readout role.
func (q *Sequence) HasReadout() bool {
	for _, slice := range q.slices {
		for _, p := range slice {
			if p.role == Readout {
				return true
			}
		}
	}
	return false
}

// Slices returns the scheduled pulses grouped by time slice, in schedule
// order. The returned slices are copies; the pulses are shared.
func (q *Sequence) Slices() [][]*Pulse {
	out := make([][]*Pulse, len(q.slices))
	for i, s := range q.slices {
		out[i] = append([]*Pulse(nil), s...)
	}
	return out
}

// A PulseInfo describes one scheduled pulse in a listing.
type PulseInfo struct {
	Name        string
	Shape       string
	Duration    Duration
	IQFrequency float64
	Phase       float64
	// Parallel is true for every pulse except the last one of its slice.
	Parallel bool
}

// Pulses returns the flattened schedule, one record per scheduled pulse.
func (q *Sequence) Pulses() []PulseInfo {
	var out []PulseInfo
	for _, slice := range q.slices {
		for i, p := range slice {
			out = append(out, PulseInfo{
				Name:        p.name,
				Shape:       p.shape.name,
				Duration:    p.duration,
				IQFrequency: p.iqFrequency,
				Phase:       p.phase,
				Parallel:    i != len(slice)-1,
			})
		}
	}
	return out
}

// Render builds the waveform of the whole sequence and returns it together
// with the sample index of the readout marker.
//
// The params set must equal the sequence's variable names exactly. With
// iqMixing set, pulses with a nonzero IQ frequency are modulated onto
// their carrier using global sequence time, so the carrier phase is
// continuous across slices rather than reset per pulse.
//
// The waveform is padded with one leading and one trailing zero sample so
// the generator idles at a clean level; the returned readout index
// accounts for the leading pad. If the sequence contains no readout pulse
// the returned index is 1, i.e. the first sample after the pad — use
// HasReadout to tell the two cases apart.
//
func (q *Sequence) Render(iqMixing bool, params map[string]float64) (Waveform, int, error) {
	if err := q.checkParams(params); err != nil {
		return nil, 0, err
	}
	if q.sampleRate <= 0 {
		return nil, 0, ErrMissingSampleRate
	}

	timestep := 1 / q.sampleRate
	var full Waveform
	readoutIndex := 0
	position := 0 // sample index where the current slice starts
	for _, slice := range q.slices {
		var buf Waveform
		lastLen := 0
		for _, p := range slice {
			d, err := p.duration.Resolve(params)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "pulse %q", p.name)
			}

			var wfm Waveform
			switch {
			case d != 0 && d < 0.5*timestep:
				// too short to render at this sample rate
				Logger().Warn("pulse shorter than half a sample period, omitted",
					"pulse", p.name, "seconds", d)
			case p.role == Signal:
				wfm = fromReal(p.envelope(d, q.sampleRate))
			default:
				// wait and readout are schedule-only placeholders
				wfm = make(Waveform, int(math.Round(d*q.sampleRate)))
			}

			// The readout marker sits at the start of its slice, even when
			// the pulse itself was omitted.
			if p.role == Readout {
				readoutIndex = position
			}

			if iqMixing && p.iqFrequency != 0 {
				mixGlobal(wfm, p, position, q.sampleRate)
			}

			// Parallel pulses overlap additively; the buffer grows to the
			// longest pulse rendered so far.
			if len(buf) < len(wfm) {
				buf = append(buf, make(Waveform, len(wfm)-len(buf))...)
			}
			lastLen = len(wfm)
			for i, z := range wfm {
				buf[i] += z
			}
		}

		if end := position + len(buf); len(full) < end {
			full = append(full, make(Waveform, end-len(full))...)
		}
		for i, z := range buf {
			full[position+i] += z
		}
		// The last pulse of the slice decides when the next slice starts.
		position += lastLen
	}

	for i := range full {
		full[i] += q.dcCorrection
	}
	out := make(Waveform, 0, len(full)+2)
	out = append(out, 0)
	out = append(out, full...)
	out = append(out, 0)
	return out, readoutIndex + 1, nil
}

// checkParams verifies that the supplied parameter set equals the declared
// variable names exactly.
func (q *Sequence) checkParams(params map[string]float64) error {
	var e ParameterMismatchError
	for n := range q.variables {
		if _, ok := params[n]; !ok {
			e.Missing = append(e.Missing, n)
		}
	}
	for n := range params {
		if _, ok := q.variables[n]; !ok {
			e.Extra = append(e.Extra, n)
		}
	}
	if len(e.Missing) > 0 || len(e.Extra) > 0 {
		sort.Strings(e.Missing)
		sort.Strings(e.Extra)
		return &e
	}
	return nil
}

// mixGlobal modulates wfm onto the pulse's IQ carrier using global
// sequence time t = (position+i)/rate. The mixer dc offset is only added
// to nonzero samples so the silence around the pulse keeps its level.
func mixGlobal(wfm Waveform, p *Pulse, position int, rate float64) {
	for i, z := range wfm {
		t := float64(position+i) / rate
		wfm[i] = z * carrier(p.iqFrequency, t, p.phase)
	}
	quadratureCorrect(wfm, p.iqAngle)
	for i, z := range wfm {
		if z != 0 {
			wfm[i] = z + p.iqDCOffset
		}
	}
}
