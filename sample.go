package pulseq

// A Sample carries the device settings a sequence reads at construction
// time. Both fields are optional: a zero Clock falls back to an explicit
// sample-rate override, and a zero ReadoutToneLength makes default readout
// pulses zero-length placeholders.
//
type Sample struct {
	// Clock is the sample rate of the device in Hz.
	Clock float64
	// ReadoutToneLength is the duration of the readout tone in seconds,
	// used for auto-generated readout pulses.
	ReadoutToneLength float64
}
