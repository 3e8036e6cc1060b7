package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// palette holds the terminal color of every core.Color. Bright entries are
// what the battle uses for tanks and effects, so they render bold.
var palette = [...]struct {
	ansi string
	bold bool
}{
	core.ColorDefault:      {},
	core.ColorRed:          {ansi: "1"},
	core.ColorGreen:        {ansi: "2"},
	core.ColorYellow:       {ansi: "3"},
	core.ColorBlue:         {ansi: "4"},
	core.ColorMagenta:      {ansi: "5"},
	core.ColorCyan:         {ansi: "6"},
	core.ColorWhite:        {ansi: "7"},
	core.ColorBrightRed:    {ansi: "9", bold: true},
	core.ColorBrightGreen:  {ansi: "10", bold: true},
	core.ColorBrightYellow: {ansi: "11", bold: true},
	core.ColorBrightWhite:  {ansi: "15", bold: true},
	core.ColorOrange:       {ansi: "208"},
	core.ColorGray:         {ansi: "245"},
}

var styles = buildStyles()

func buildStyles() []lipgloss.Style {
	out := make([]lipgloss.Style, len(palette))
	for c, p := range palette {
		st := lipgloss.NewStyle().Bold(p.bold)
		if p.ansi != "" {
			st = st.Foreground(lipgloss.Color(p.ansi))
		}
		out[c] = st
	}
	return out
}

// paint wraps text in the style of c. Default and unknown colors pass
// through unstyled.
func paint(text string, c core.Color) string {
	if c == core.ColorDefault || int(c) >= len(styles) {
		return text
	}
	return styles[c].Render(text)
}

// RenderScreen turns the screen buffer into terminal output. Neighbouring
// cells of one color share a single styled segment.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var out, seg strings.Builder
	color := core.ColorDefault
	for x := 0; x < s.Width(); x++ {
		cell := s.GetCell(x, y)
		if x > 0 && cell.Color != color {
			out.WriteString(paint(seg.String(), color))
			seg.Reset()
		}
		color = cell.Color
		seg.WriteRune(cell.Rune)
	}
	out.WriteString(paint(seg.String(), color))
	return out.String()
}
