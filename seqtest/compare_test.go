package seqtest_test

import (
	"testing"

	"github.com/db47h/pulseq"
	"github.com/db47h/pulseq/seqtest"
)

func TestCompare(t *testing.T) {
	w := pulseq.Waveform{0, 0.5, 1, 0.5 + 0i, 0}
	seqtest.EqualWaveforms(t, w, w, 0)
	seqtest.EqualSamples(t, w.Real(), w.Real(), 0)
	seqtest.Bounded(t, w, 1)
	seqtest.Real(t, w)
}

func TestCompare_tolerance(t *testing.T) {
	a := pulseq.Waveform{1, 2, 3}
	b := pulseq.Waveform{1 + 1e-13, 2, 3 - 1e-13}
	seqtest.EqualWaveforms(t, a, b, 1e-12)
}
