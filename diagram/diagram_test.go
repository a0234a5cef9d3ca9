package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/pulseq"
)

type recordHandler struct {
	msgs []string
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.msgs = append(h.msgs, r.Message)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func TestLayout(t *testing.T) {
	q := pulseq.New(pulseq.WithSampleRate(1e9))
	pi := pulseq.NewPulse("pi", pulseq.Fixed(24e-9),
		pulseq.WithShape(pulseq.Gauss),
		pulseq.WithIQFrequency(80e6), pulseq.WithPhase(90))
	require.NoError(t, q.Append(pi, false))
	require.NoError(t, q.AppendWait(pulseq.Fixed(10e-9), ""))
	require.NoError(t, q.Append(pi, false))
	require.NoError(t, q.AppendReadout(false, nil))

	boxes := Layout(q)
	require.Len(t, boxes, 4)

	assert.Equal(t, palette[0], boxes[0].Color)
	assert.Equal(t, waitColor, boxes[1].Color)
	assert.Equal(t, boxes[0].Color, boxes[2].Color, "recurring pulse keeps its color")
	assert.Equal(t, readoutColor, boxes[3].Color)

	for i, b := range boxes {
		assert.Equal(t, i, b.Slice, "box %d", i)
		assert.Equal(t, 0, b.Rank, "box %d", i)
	}

	assert.Equal(t, "pi\ngauss\n2.4e-08 s\n\nf_iq = 80 MHz\nphase = 90 deg", boxes[0].Caption)
	assert.Equal(t, "readout[0]\n\n", boxes[3].Caption, "readout caption omits the duration")
}

func TestLayout_parallelRank(t *testing.T) {
	q := pulseq.New(pulseq.WithSampleRate(1e9))
	require.NoError(t, q.Append(pulseq.NewPulse("a", pulseq.Fixed(10e-9)), true))
	require.NoError(t, q.Append(pulseq.NewPulse("b", pulseq.Fixed(20e-9)), false))

	boxes := Layout(q)
	require.Len(t, boxes, 2)
	assert.Equal(t, 0, boxes[0].Slice)
	assert.Equal(t, 0, boxes[0].Rank)
	assert.Equal(t, 0, boxes[1].Slice, "parallel pulses share a slice")
	assert.Equal(t, 1, boxes[1].Rank)
}

func TestLayout_paletteRecycle(t *testing.T) {
	h := &recordHandler{}
	pulseq.SetLogger(slog.New(h))
	t.Cleanup(func() { pulseq.SetLogger(nil) })

	q := pulseq.New(pulseq.WithSampleRate(1e9))
	for i := 0; i < len(palette)+1; i++ {
		require.NoError(t, q.Append(
			pulseq.NewPulse(fmt.Sprintf("p%d", i), pulseq.Fixed(10e-9)), false))
	}
	boxes := Layout(q)
	require.Len(t, boxes, len(palette)+1)
	assert.Equal(t, palette[0], boxes[len(palette)].Color, "palette recycles from the start")

	found := false
	for _, m := range h.msgs {
		if strings.Contains(m, "resetting palette") {
			found = true
		}
	}
	assert.True(t, found, "palette exhaustion must be logged")
}

func TestDraw(t *testing.T) {
	q := pulseq.New(pulseq.WithSampleRate(1e9))
	require.NoError(t, q.Append(pulseq.NewPulse("a", pulseq.Fixed(10e-9)), false))
	require.NoError(t, q.Append(pulseq.NewPulse("b", pulseq.Fixed(10e-9)), false))

	dc := Draw(q, WithBoxSize(40))
	assert.Equal(t, 80, dc.Width())
	assert.Equal(t, 40, dc.Height())

	// the center of the first box carries the translucent fill of its
	// palette color over the white background
	r, _, _, _ := dc.Image().At(20, 20).RGBA()
	assert.Less(t, uint32(r>>8), uint32(250), "box fill must darken the background")
}

func TestDraw_scalesWideSequences(t *testing.T) {
	q := pulseq.New(pulseq.WithSampleRate(1e9))
	for i := 0; i < 18; i++ {
		require.NoError(t, q.Append(
			pulseq.NewPulse(fmt.Sprintf("p%d", i), pulseq.Fixed(10e-9)), false))
	}
	dc := Draw(q, WithBoxSize(100))
	// 18 slices at half scale keep the figure at the 9-slice width
	assert.Equal(t, 900, dc.Width())
	assert.Equal(t, 50, dc.Height())
}
