package pulseq_test

import (
	"fmt"

	"github.com/db47h/pulseq"
)

// ExampleSequence builds a Ramsey-style sequence: two pi/2 pulses (the
// same pulse object scheduled twice) separated by a variable wait, then
// the readout marker.
func ExampleSequence() {
	seq := pulseq.New(pulseq.WithSampleRate(1e9))
	pi2 := pulseq.NewPulse("pi/2", pulseq.Fixed(24e-9), pulseq.WithShape(pulseq.Gauss))

	_ = seq.Append(pi2, false)
	_ = seq.AppendWait(pulseq.Func("tau", []string{"tau"},
		func(a map[string]float64) float64 { return a["tau"] }), "")
	_ = seq.Append(pi2, false)
	_ = seq.AppendReadout(false, nil)

	wfm, readout, err := seq.Render(false, map[string]float64{"tau": 100e-9})
	fmt.Println(len(wfm), readout, err)
	// Output: 150 149 <nil>
}
