/*
Package pulseq arranges pulses for time-domain experiments and renders the
resulting sequence into a sampled waveform suitable for an arbitrary
waveform generator.

A Sequence is built by appending pulses, wait times and a readout marker.
Pulses can have a fixed duration or a duration computed at render time from
named parameters, can be scheduled in parallel with the previous pulse, and
carry the IQ-mixer calibration (frequency, phase, quadrature angle, dc
offset) needed for heterodyne mixing. Rendering produces one time-aligned,
optionally complex-valued array plus the sample index of the readout marker.

The package is a library only: it performs no device I/O and has no
command-line surface.
*/
package pulseq
