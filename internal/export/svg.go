// Package export renders lamp frames to formats other programs can read.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/solhav/moodlamp/internal/fluid"
	"github.com/solhav/moodlamp/internal/visual"
)

// The frame keeps the desktop viewer's proportions: a 540×760 window with a
// 48 px glass margin, blob radii scaled by 0.35 of the smaller extent.
const (
	DefaultSVGWidth = 540

	lampAspect = 760.0 / 540.0
	lampMargin = 48.0 / 540.0
	blobScale  = 0.35
)

// SVG writes one lamp frame as a vector scene. The tank's unit square maps
// onto the lamp interior; tank y points up, screen y down. The interior is
// washed with a dimmed primary so an empty lamp still glows.
func SVG(w io.Writer, blobs []fluid.Blob, p visual.Params, width int) error {
	if width <= 0 {
		width = DefaultSVGWidth
	}

	fw := float64(width)
	fh := math.Round(fw * lampAspect)
	height := int(fh)
	margin := fw * lampMargin
	innerW := fw - 2*margin
	innerH := fh - 2*margin
	rScale := math.Min(fw, fh) * blobScale

	glow := visual.HSV{H: p.HSVPrimary.H, S: p.HSVPrimary.S, V: p.HSVPrimary.V * 0.25}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0f0f16"/>
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#6c6c8a" stroke-width="2"/>
`, width, height, width, height, margin, margin, innerW, innerH, glow.Hex()))

	for _, b := range blobs {
		cx := margin + b.Pos.X*innerW
		cy := margin + (1-b.Pos.Y)*innerH
		r := b.Radius * rScale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, b.Color.Hex()))
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
