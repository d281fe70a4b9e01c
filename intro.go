package main

// Handles drawing the splash screen (introduction) that appears while no
// window is open.

import (
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

// drawIntro draws an informational box with version and basic commands
// centered in area.
func (e *Editor) drawIntro(s Surface, area Rect) {
	// Define specific attributes for the intro screen elements.
	const (
		cTitle   = termbox.Attribute(254) | termbox.AttrBold
		cText    = termbox.Attribute(248)
		cVersion = termbox.Attribute(239)
		cKey     = termbox.Attribute(254)
	)

	// List of lines to display in the intro box.
	lines := []struct {
		text string
		fg   termbox.Attribute
	}{
		{"kestrel", cTitle},
		{Version, cVersion},
		{"", cText},
		{"Small modal text editor", cText},
		{"", cText},
		{" type  :o path<Enter>   to open a file", cKey},
		{" type  :n<Enter>        for a new window", cKey},
		{" type  :help<Enter>     for help", cKey},
		{" type  :q<Enter>        to exit", cKey},
	}

	// Calculate the maximum line length to center the box.
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line.text))
	}

	// Center point for the box.
	startX := area.X + (area.W-maxLen)/2
	startY := area.Y + (area.H-len(lines))/2

	_, bg := GetThemeColor(ColorDefault)
	for i, line := range lines {
		y := startY + i
		if y < area.Y || y >= area.Y+area.H {
			continue
		}
		// Center each line individually within the box.
		x := startX + (maxLen-runewidth.StringWidth(line.text))/2
		drawText(s, max(area.X, x), y, area.X+area.W, line.text, line.fg, bg)
	}
}
