// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package diagram renders a schematic of a pulse sequence: one captioned
// box per pulse, laid out on a grid of time slices.
//
package diagram

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/db47h/pulseq"
)

// palette mirrors the matplotlib default cycle (C0-C5, C6, C8, C9) plus
// the primary single-letter colors. C7 (gray) is reserved for readout
// boxes.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // C0
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // C1
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // C2
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // C3
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // C4
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // C5
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, // C6
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, // C8
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, // C9
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // r
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // g
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // b
	{R: 0xbf, G: 0xbf, B: 0x00, A: 0xff}, // y
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // k
	{R: 0xbf, G: 0x00, B: 0xbf, A: 0xff}, // m
}

var (
	readoutColor = color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff} // C7
	waitColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// A Box is one pulse cell of the schematic grid. Slice is the column,
// Rank the row within its slice (parallel pulses stack upwards).
type Box struct {
	Slice   int
	Rank    int
	Name    string
	Role    pulseq.Role
	Caption string
	Color   color.RGBA
}

// Layout maps every scheduled pulse of the sequence to a Box. Wait and
// readout boxes use fixed colors; other pulses are assigned palette colors
// keyed by name, so a pulse recurring in the sequence keeps its color.
// When the palette runs out it is recycled and a warning is logged.
//
func Layout(q *pulseq.Sequence) []Box {
	remaining := append([]color.RGBA(nil), palette...)
	assigned := make(map[string]color.RGBA)
	var boxes []Box
	for i, slice := range q.Slices() {
		for rank, p := range slice {
			var col color.RGBA
			switch {
			case p.Role() == pulseq.Readout:
				col = readoutColor
			case p.Role() == pulseq.Wait:
				col = waitColor
			default:
				if c, ok := assigned[p.Name()]; ok {
					col = c
					break
				}
				if len(remaining) == 0 {
					remaining = append(remaining, palette...)
					pulseq.Logger().Warn("all schematic colors in use, resetting palette")
				}
				col = remaining[0]
				remaining = remaining[1:]
				assigned[p.Name()] = col
			}
			boxes = append(boxes, Box{
				Slice:   i,
				Rank:    rank,
				Name:    p.Name(),
				Role:    p.Role(),
				Caption: caption(p),
				Color:   col,
			})
		}
	}
	return boxes
}

// caption builds the box label: name, shape and duration, plus the IQ
// frequency and phase when the pulse is heterodyne. Readout boxes omit the
// duration of their placeholder pulse.
func caption(p *pulseq.Pulse) string {
	dur := ""
	if p.Role() != pulseq.Readout {
		dur = p.Duration().String()
	}
	s := fmt.Sprintf("%s\n%s\n%s", p.Name(), p.Shape().Name(), dur)
	if p.IQFrequency() != 0 {
		s += fmt.Sprintf("\n\nf_iq = %.0f MHz", p.IQFrequency()/1e6)
		if p.Phase() != 0 {
			s += fmt.Sprintf("\nphase = %.0f deg", p.Phase())
		}
	}
	return s
}

type config struct {
	boxSize float64
	face    text.Face
}

// An Option configures Draw.
type Option func(*config)

// WithBoxSize sets the box edge length in pixels. The default is 120.
// Sequences wider than 9 slices are scaled down to keep the figure size
// bounded.
func WithBoxSize(px float64) Option { return func(c *config) { c.boxSize = px } }

// WithFontFace sets the font used for captions. Without a face, boxes are
// drawn without text.
func WithFontFace(f text.Face) Option { return func(c *config) { c.face = f } }

// Draw renders the schematic to a new gg context backed by the software
// rasterizer. Use the context's Image, EncodePNG or SavePNG to consume
// the result.
//
func Draw(q *pulseq.Sequence, opts ...Option) *gg.Context {
	cfg := config{boxSize: 120}
	for _, o := range opts {
		o(&cfg)
	}

	boxes := Layout(q)
	cols, rows := 1, 1
	for _, b := range boxes {
		if b.Slice+1 > cols {
			cols = b.Slice + 1
		}
		if b.Rank+1 > rows {
			rows = b.Rank + 1
		}
	}
	size := cfg.boxSize
	if cols > 9 {
		size = cfg.boxSize * 9 / float64(cols)
	}

	dc := gg.NewContext(int(size*float64(cols)), int(size*float64(rows)))
	dc.ClearWithColor(gg.White)
	if cfg.face != nil {
		dc.SetFont(cfg.face)
	}

	h := float64(dc.Height())
	for _, b := range boxes {
		x := float64(b.Slice) * size
		y := h - float64(b.Rank+1)*size // rank 0 sits at the bottom

		r, g, bl := float64(b.Color.R)/255, float64(b.Color.G)/255, float64(b.Color.B)/255
		dc.SetRGBA(r, g, bl, 0.3)
		dc.DrawRectangle(x, y, size, size)
		_ = dc.Fill()

		dc.SetRGBA(0, 0, 0, 0.25)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, size, size)
		_ = dc.Stroke()

		if cfg.face == nil {
			continue
		}
		dc.SetRGBA(0, 0, 0, 1)
		lines := strings.Split(b.Caption, "\n")
		_, lh := dc.MeasureString("M")
		top := y + size/2 - lh*float64(len(lines)-1)/2
		for i, line := range lines {
			if line == "" {
				continue
			}
			dc.DrawStringAnchored(line, x+size/2, top+lh*float64(i), 0.5, 0.5)
		}
	}
	return dc
}
