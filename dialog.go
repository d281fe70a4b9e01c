package main

// Overlay dialogs: the log viewer, the help text and the window picker. They
// are drawn centered over half of the screen.

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed content/help.txt
var ContentFS embed.FS

// helpLines returns the embedded help text split into lines.
func helpLines() []string {
	data, err := ContentFS.ReadFile("content/help.txt")
	if err != nil {
		return []string{fmt.Sprintf("Error opening help: %v", err)}
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// dialogRect centers a dialog covering half of a width x height screen.
func dialogRect(width, height int) Rect {
	w := min(width, max(60, width/2))
	h := min(height, max(8, height/2))
	return Rect{X: (width - w) / 2, Y: (height - h) / 2, W: w, H: h}
}

// drawDialog paints the dialog of m. The scroll offset is clamped so the last
// page stays full.
func (e *Editor) drawDialog(s Surface, m *DialogMode, width, height int) {
	r := dialogRect(width, height)
	inner := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	var (
		title    string
		lines    []string
		selected = -1
	)
	switch m.dialog {
	case DialogLog:
		lines = e.log.Entries()
		m.offset = max(0, min(m.offset, len(lines)-inner.H))
		last := min(len(lines), m.offset+inner.H)
		title = fmt.Sprintf("Logged messages (Current: %d..%d Total: %d)", min(m.offset+1, last), last, len(lines))
	case DialogHelp:
		lines = helpLines()
		m.offset = max(0, min(m.offset, len(lines)-inner.H))
		title = "Help"
	case DialogWindows:
		for _, w := range e.windows {
			name := w.ResolveTitle()
			if w.modified {
				name += " [+]"
			}
			lines = append(lines, fmt.Sprintf("%d: %s", w.id, name))
		}
		if len(lines) == 0 {
			lines = []string{"No open windows"}
		} else {
			selected = e.selected
		}
		// Keep the selected window on screen.
		m.offset = max(0, min(m.offset, selected), selected-inner.H+1)
		title = "Windows"
	}

	fg, bg := GetThemeColor(ColorDialog)
	tfg, tbg := GetThemeColor(ColorDialogTitle)
	sfg, sbg := GetThemeColor(ColorDialogSelected)

	fillRect(s, r, fg, bg)
	drawBox(s, r, title, tfg, tbg)

	right := inner.X + inner.W
	for row := 0; row < inner.H; row++ {
		i := m.offset + row
		if i >= len(lines) {
			break
		}
		lfg, lbg := fg, bg
		if i == selected {
			lfg, lbg = sfg, sbg
			fillRect(s, Rect{X: inner.X, Y: inner.Y + row, W: inner.W, H: 1}, lfg, lbg)
		}
		drawText(s, inner.X+1, inner.Y+row, right, strings.ReplaceAll(lines[i], "\t", " "), lfg, lbg)
	}
}
