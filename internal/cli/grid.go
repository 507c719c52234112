package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// grid is a fixed-size character canvas. Each cell carries the index of the
// style it is drawn with; index 0 draws unstyled.
type grid struct {
	cols, rows int
	runes      []rune
	style      []int
	styles     []lipgloss.Style
}

func newGrid(cols, rows int) *grid {
	g := &grid{
		cols:   cols,
		rows:   rows,
		runes:  make([]rune, cols*rows),
		style:  make([]int, cols*rows),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range g.runes {
		g.runes[i] = ' '
	}
	return g
}

// addStyle registers s and returns its index.
func (g *grid) addStyle(s lipgloss.Style) int {
	g.styles = append(g.styles, s)
	return len(g.styles) - 1
}

func (g *grid) inside(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *grid) set(col, row int, r rune, style int) {
	if !g.inside(col, row) {
		return
	}
	i := row*g.cols + col
	g.runes[i], g.style[i] = r, style
}

func (g *grid) at(col, row int) rune {
	if !g.inside(col, row) {
		return 0
	}
	return g.runes[row*g.cols+col]
}

// text writes s starting at (col, row), clipping at the edges.
func (g *grid) text(col, row int, s string, style int) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, style)
	}
}

// line draws from (c0, r0) to (c1, r1) with Bresenham's algorithm. Only
// blank cells are written, so lines never overwrite text.
func (g *grid) line(c0, r0, c1, r1 int, r rune, style int) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		if g.at(c0, r0) == ' ' {
			g.set(c0, r0, r, style)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// String renders the grid, one styled run per stretch of equal style.
func (g *grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := row * g.cols
		for col := 0; col < g.cols; {
			s := g.style[start+col]
			end := col
			for end < g.cols && g.style[start+end] == s {
				end++
			}
			run := string(g.runes[start+col : start+end])
			if s == 0 {
				b.WriteString(run)
			} else {
				b.WriteString(g.styles[s].Render(run))
			}
			col = end
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
