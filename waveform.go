package pulseq

// A Waveform is a sampled sequence envelope. For IQ-mixed sequences the
// real part encodes I and the imaginary part encodes Q; homodyne sequences
// have no imaginary component.
type Waveform []complex128

// Real returns the real part of every sample.
func (w Waveform) Real() []float64 {
	out := make([]float64, len(w))
	for i, z := range w {
		out[i] = real(z)
	}
	return out
}

// Imag returns the imaginary part of every sample.
func (w Waveform) Imag() []float64 {
	out := make([]float64, len(w))
	for i, z := range w {
		out[i] = imag(z)
	}
	return out
}

// IsReal reports whether no sample has an imaginary component.
func (w Waveform) IsReal() bool {
	for _, z := range w {
		if imag(z) != 0 {
			return false
		}
	}
	return true
}

func fromReal(samples []float64) Waveform {
	out := make(Waveform, len(samples))
	for i, v := range samples {
		out[i] = complex(v, 0)
	}
	return out
}
