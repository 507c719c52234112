package graph

import (
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/featuremap/pkg/panel"
)

// Text metrics used to wrap panel text. Widths are estimates; SVG has no
// text flow of its own.
const (
	panelPadding   = 20
	charWidthRatio = 0.55

	titleSize   = 18
	headingSize = 13
	bodySize    = 11

	helpMaxWidth = 560
)

type textLine struct {
	text   string
	size   int
	bold   bool
	indent int
}

// layoutContent wraps c into drawable lines for a column of the given width.
func layoutContent(c panel.Content, width int) []textLine {
	charsFor := func(size, indent int) int {
		return max(8, int(float64(width-indent)/(float64(size)*charWidthRatio)))
	}

	var lines []textLine
	for _, t := range wrapText(c.Title, charsFor(titleSize, 0)) {
		lines = append(lines, textLine{text: t, size: titleSize, bold: true})
	}
	for _, s := range c.Sections {
		switch {
		case s.Inline:
			for _, t := range wrapText(s.Heading+": "+s.Text, charsFor(bodySize, 0)) {
				lines = append(lines, textLine{text: t, size: bodySize})
			}
			continue
		case s.Heading != "":
			lines = append(lines, textLine{text: s.Heading + ":", size: headingSize, bold: true})
		}
		if s.Text != "" {
			for _, t := range wrapText(s.Text, charsFor(bodySize, 0)) {
				lines = append(lines, textLine{text: t, size: bodySize})
			}
		}
		for _, item := range s.Items {
			for i, t := range wrapText(item, charsFor(bodySize, 12)) {
				if i == 0 {
					t = "• " + t
				}
				lines = append(lines, textLine{text: t, size: bodySize, indent: 12})
			}
		}
	}
	return lines
}

func lineHeight(size int) int {
	return size + size/2
}

func contentHeight(lines []textLine) int {
	h := 0
	for _, l := range lines {
		h += lineHeight(l.size)
	}
	return h
}

func drawLines(canvas *svg.SVG, lines []textLine, x, y int) {
	for _, l := range lines {
		y += lineHeight(l.size)
		style := "font-family:sans-serif;fill:#1f2937;font-size:" + strconv.Itoa(l.size) + "px"
		if l.bold {
			style += ";font-weight:bold"
		}
		canvas.Text(x+l.indent, y, l.text, style)
	}
}

func renderDetailPanel(canvas *svg.SVG, s *Scene, n Node, side PanelSide, opts panel.Options) {
	w, h := px(s.Width), px(s.Height)
	pw := w / 3
	x0 := w - pw
	if side == PanelLeft {
		x0 = 0
	}

	canvas.Group(`class="fm-panel"`, `data-for="`+n.Feature.ID+`"`, `visibility="hidden"`)
	canvas.Rect(x0, 0, pw, h, "fill:white;stroke:#d1d5db;stroke-width:1")

	canvas.Group(`class="fm-close"`)
	canvas.Rect(x0+pw-36, 8, 28, 28, "fill:white;fill-opacity:0")
	canvas.Text(x0+pw-22, 28, "×", `text-anchor="middle"`, "font-size:20px;font-family:sans-serif;fill:#374151")
	canvas.Gend()

	lines := layoutContent(panel.Detail(n.Feature, opts), pw-2*panelPadding-24)
	drawLines(canvas, lines, x0+panelPadding, panelPadding)
	canvas.Gend()
}

func renderHelpOverlay(canvas *svg.SVG, s *Scene) {
	w, h := px(s.Width), px(s.Height)
	bw := min(w-40, helpMaxWidth)
	lines := layoutContent(panel.Help(s.Map), bw-2*panelPadding)
	bh := contentHeight(lines) + 2*panelPadding
	bx, by := (w-bw)/2, max(20, (h-bh)/2)

	canvas.Group(`class="fm-help"`, `visibility="hidden"`)
	canvas.Rect(0, 0, w, h, "fill:black;fill-opacity:0.5")
	canvas.Roundrect(bx, by, bw, bh, 8, 8, "fill:white")
	drawLines(canvas, lines, bx+panelPadding, by+panelPadding/2)
	canvas.Gend()
}

const (
	infoRadius = 14
	infoMargin = 28
)

func renderInfoButton(canvas *svg.SVG, s *Scene) {
	x := px(s.Width) - infoMargin
	canvas.Group(`class="fm-info"`)
	canvas.Circle(x, infoMargin, infoRadius, "fill:#e5e7eb;stroke:#9ca3af;stroke-width:1")
	canvas.Text(x, infoMargin, "i", `text-anchor="middle"`, `dy=".35em"`, "font-size:14px;font-weight:bold;font-family:serif;fill:#374151")
	canvas.Gend()
}

// wrapText breaks text into lines of at most maxChars, splitting on spaces.
// Words longer than maxChars get a line of their own. Empty text yields one
// empty line.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > maxChars {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
