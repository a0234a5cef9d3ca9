package pulseq

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Duration is the length of a pulse in seconds: either a fixed value or a
// function of named parameters resolved at render time.
//
// Variable durations declare their parameter names explicitly instead of
// having them inferred from a function signature, so the contract between a
// sequence and its Render call is visible in the type.
//
type Duration interface {
	// Resolve returns the duration in seconds. Variable durations are
	// invoked with the subset of params matching their declared names.
	Resolve(params map[string]float64) (float64, error)
	// Params lists the parameter names the duration depends on. Fixed
	// durations return nil.
	Params() []string
	// Variable reports whether the duration is a function of parameters.
	Variable() bool
	// String returns a human-readable description used in pulse listings
	// and schematic captions.
	String() string
}

type fixed float64

// Fixed returns a constant duration of the given number of seconds.
func Fixed(seconds float64) Duration { return fixed(seconds) }

func (d fixed) Resolve(map[string]float64) (float64, error) { return float64(d), nil }
func (d fixed) Params() []string                            { return nil }
func (d fixed) Variable() bool                              { return false }
func (d fixed) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64) + " s"
}

type variable struct {
	label  string
	params []string
	fn     func(params map[string]float64) float64
}

// Func returns a variable duration computed by fn from the named
// parameters. The label is the human-readable form shown in listings and
// schematic captions (e.g. "6*tau").
//
func Func(label string, params []string, fn func(params map[string]float64) float64) Duration {
	return &variable{label: label, params: params, fn: fn}
}

func (d *variable) Resolve(params map[string]float64) (float64, error) {
	args := make(map[string]float64, len(d.params))
	for _, n := range d.params {
		v, ok := params[n]
		if !ok {
			return 0, errors.Errorf("duration %q: missing parameter %q", d.label, n)
		}
		args[n] = v
	}
	return d.fn(args), nil
}

func (d *variable) Params() []string { return d.params }
func (d *variable) Variable() bool   { return true }
func (d *variable) String() string   { return d.label }
