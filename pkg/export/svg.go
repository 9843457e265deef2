package export

import (
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Layout constants for the SVG rendering, in pixels.
const (
	svgRowHeight  = 28
	svgIndentStep = 24
	svgPadding    = 20
	svgCharWidth  = 8 // monospace estimate for sizing the canvas
	svgMinWidth   = 320
)

// Muted dark palette, matching the TUI's default theme.
const (
	svgBackdrop = "#1e1e2e"
	svgText     = "#cdd6f4"
	svgGuide    = "#45475a"
	svgBullet   = "#89b4fa"
)

// WriteSVG renders tab-indented outline text as an SVG document: one row
// per line, indentation guides connecting each item to its parent level.
// The input is the serialized text form, so collapsed state never
// affects an export.
func WriteSVG(w io.Writer, outline string) {
	type row struct {
		depth int
		text  string
	}
	var rows []row
	maxWidth := svgMinWidth
	for _, line := range strings.Split(outline, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		text := strings.TrimSpace(line[depth:])
		rows = append(rows, row{depth: depth, text: text})
		if w := svgPadding*2 + depth*svgIndentStep + len(text)*svgCharWidth; w > maxWidth {
			maxWidth = w
		}
	}

	height := svgPadding*2 + len(rows)*svgRowHeight

	canvas := svg.New(w)
	canvas.Start(maxWidth, height)
	canvas.Rect(0, 0, maxWidth, height, "fill:"+svgBackdrop)

	for i, r := range rows {
		x := svgPadding + r.depth*svgIndentStep
		y := svgPadding + i*svgRowHeight + svgRowHeight/2

		// Vertical guide per ancestor level.
		for d := 0; d < r.depth; d++ {
			gx := svgPadding + d*svgIndentStep + 4
			canvas.Line(gx, y-svgRowHeight/2, gx, y+svgRowHeight/2,
				"stroke:"+svgGuide+";stroke-width:1")
		}

		canvas.Circle(x+4, y, 3, "fill:"+svgBullet)
		canvas.Text(x+14, y+5, r.text,
			"fill:"+svgText+";font-size:14px;font-family:monospace")
	}

	canvas.End()
}
