package main

// Screen layout. Windows are stacked vertically above a status bar and a
// command bar. Dialogs are drawn over everything else.

import (
	"fmt"
	"strconv"

	"github.com/nsf/termbox-go"
)

// minWindowHeight is the smallest stacked window: two border rows and one
// line of text.
const minWindowHeight = 3

// draw renders the whole editor onto s and flushes it.
func (e *Editor) draw(s Surface) {
	fg, bg := GetThemeColor(ColorDefault)
	s.Clear(fg, bg)

	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	area := Rect{X: 0, Y: 0, W: width, H: max(0, height-2)}

	cx, cy := -1, -1
	if len(e.windows) == 0 {
		e.drawIntro(s, area)
	} else {
		cx, cy = e.drawWindows(s, area)
	}

	e.drawStatusBar(s, height-2, width)
	if x, ok := e.drawCommandBar(s, height-1, width); ok {
		cx, cy = x, height-1
	}

	if m, ok := e.mode.(*DialogMode); ok {
		e.drawDialog(s, m, width, height)
		cx, cy = -1, -1
	}

	if cx >= 0 && cy >= 0 {
		s.SetCursor(cx, cy)
	} else {
		s.HideCursor()
	}

	if err := s.Flush(); err != nil {
		e.addLog("Screen", fmt.Sprintf("Error: %v", err))
	}
}

// drawWindows stacks the windows in area and returns the cursor position of
// the selected one. When the windows do not fit, only the selected window is
// shown.
func (e *Editor) drawWindows(s Surface, area Rect) (int, int) {
	windows := e.windows
	selected := e.selected
	if area.H/len(windows) < minWindowHeight {
		windows = windows[selected : selected+1]
		selected = 0
	}

	cx, cy := -1, -1
	y := area.Y
	for i, w := range windows {
		h := area.H / len(windows)
		if i == len(windows)-1 {
			h = area.Y + area.H - y
		}
		r := Rect{X: area.X, Y: y, W: area.W, H: h}
		y += h

		focused := i == selected
		border := ColorWindowBorder
		if focused {
			border = ColorWindowBorderActive
		}
		bfg, bbg := GetThemeColor(border)

		title := w.ResolveTitle()
		if w.modified {
			title += " [+]"
		}
		drawBox(s, r, title, bfg, bbg)

		inner := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
		x, yy := w.render(s, inner, focused)
		if focused && inner.W > 0 && inner.H > 0 {
			cx, cy = x, yy
		}
	}
	return cx, cy
}

// modeColor picks the status bar color of the current mode.
func (e *Editor) modeColor() ColorName {
	switch e.mode.(type) {
	case InsertMode:
		return ColorInsertMode
	case *CommandMode:
		return ColorCommandMode
	case *DialogMode:
		return ColorDialogMode
	}
	return ColorNormalMode
}

// drawStatusBar shows the mode, the selected window and the cursor position.
func (e *Editor) drawStatusBar(s Surface, y, width int) {
	if y < 0 {
		return
	}
	fg, bg := GetThemeColor(ColorStatusBar)
	fillRect(s, Rect{X: 0, Y: y, W: width, H: 1}, fg, bg)

	mfg, mbg := GetThemeColor(e.modeColor())
	x := drawText(s, 0, y, width, " "+e.mode.Name()+" ", mfg|termbox.AttrBold, mbg)

	w := e.SelectedWindow()
	if w == nil {
		drawText(s, x+1, y, width, "No windows", fg, bg)
		return
	}

	name := w.ResolveTitle()
	if w.modified {
		name += " [+]"
	}
	if w.language != nil {
		name += " (" + w.language.Name + ")"
	}
	drawText(s, x+1, y, width, name, fg, bg)

	line, col := w.cursorLineCol()
	pos := strconv.Itoa(line+1) + ":" + strconv.Itoa(col+1) + " "
	drawText(s, max(0, width-len(pos)), y, width, pos, fg, bg)
}

// drawCommandBar shows the command line being edited, or the last message.
// When a command line is shown it returns the cursor column.
func (e *Editor) drawCommandBar(s Surface, y, width int) (int, bool) {
	if y < 0 {
		return 0, false
	}
	fg, bg := GetThemeColor(ColorDefault)

	if m, ok := e.mode.(*CommandMode); ok {
		x := drawText(s, 0, y, width, ":", fg, bg)
		cursor := x
		for i, r := range m.buffer {
			if i == m.cursor {
				cursor = x
			}
			x = drawText(s, x, y, width, string(r), fg, bg)
		}
		if m.cursor == len(m.buffer) {
			cursor = x
		}
		return min(cursor, width-1), true
	}

	if e.message != "" {
		mfg, mbg := GetThemeColor(ColorCommandBarMessage)
		drawText(s, 0, y, width, e.message, mfg, mbg)
	}
	return 0, false
}
