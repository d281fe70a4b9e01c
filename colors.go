package main

// Utility to print all 256 terminal colors. This is useful for picking theme
// overrides: the numbers shown are the indexes accepted in the [theme] table
// of the config file.

import (
	"fmt"

	"github.com/nsf/termbox-go"
)

// PrintColors draws a grid of all 256 available colors on s and waits for a
// key press.
func PrintColors(s Screen) error {
	s.Clear(termbox.ColorDefault, termbox.ColorDefault)
	s.HideCursor()

	w, _ := s.Size()

	// Adjust grid columns based on terminal width.
	cols := 16
	if w < 80 {
		cols = 8
	}

	// Loop through all 256 colors and draw them in a grid.
	for i := 1; i <= 256; i++ {
		row := ((i - 1) / cols) * 2
		col := ((i - 1) % cols) * 5

		bg := termbox.Attribute(i)
		fg := termbox.ColorWhite
		// Ensure text is readable against light/dark backgrounds.
		if i == 8 || i > 241 {
			fg = termbox.ColorBlack
		}

		// Draw the color index and a colored block.
		str := fmt.Sprintf("%5d", i)
		for j, r := range str {
			s.SetCell(col+j, row, r, fg, bg)
			s.SetCell(col+j, row+1, ' ', fg, bg)
		}
	}

	drawText(s, 0, (256/cols)*2, w, "Press any key to exit...", termbox.ColorWhite, termbox.ColorDefault)
	if err := s.Flush(); err != nil {
		return err
	}

	// Wait for any key press before closing.
	for ev := range s.Events() {
		switch ev.Type {
		case EventKey:
			return nil
		case EventError:
			return ev.Err
		}
	}
	return nil
}
