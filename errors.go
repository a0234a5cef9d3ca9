package pulseq

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMissingSampleRate is returned by Render when no sample rate can be
// resolved from the sequence's sample or an explicit override.
var ErrMissingSampleRate = errors.New("sequence render requires a sample rate")

// An InvalidNameError reports a pulse name that is either empty or already
// registered for a different pulse in the sequence.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	if e.Name == "" {
		return "pulse name must not be empty"
	}
	return fmt.Sprintf("another pulse named %q is already present in the sequence", e.Name)
}

// A ParameterMismatchError reports a Render call whose parameter set does
// not equal the sequence's required variable names.
type ParameterMismatchError struct {
	// Missing lists required parameters absent from the call.
	Missing []string
	// Extra lists supplied parameters the sequence does not declare.
	Extra []string
}

func (e *ParameterMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("render parameters do not match the sequence variables")
	if len(e.Missing) > 0 {
		b.WriteString("; missing: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		b.WriteString("; unexpected: ")
		b.WriteString(strings.Join(e.Extra, ", "))
	}
	return b.String()
}

// An UnresolvedDurationError reports an envelope request on a pulse whose
// duration is still a function of parameters.
type UnresolvedDurationError struct {
	Pulse string
}

func (e *UnresolvedDurationError) Error() string {
	return fmt.Sprintf("pulse %q has a variable duration and cannot be sampled without parameters", e.Pulse)
}
