package main

// External formatters. The buffer is written to a temporary file with the
// same extension as the window's path, the language's formatter runs on it
// and its standard output replaces the buffer.

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// Formatter runs command with path appended and returns its standard output.
type Formatter func(command []string, path string) ([]byte, error)

// runFormatter is the default Formatter. A non-zero exit is an error that
// carries the process's standard error.
func runFormatter(command []string, path string) ([]byte, error) {
	if len(command) == 0 {
		return nil, errors.New("empty formatter command")
	}
	args := append(slices.Clone(command[1:]), path)
	out, err := exec.Command(command[0], args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", command[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", command[0], err)
	}
	return out, nil
}

// formatWindow runs the language formatter over w and replaces its text.
func (e *Editor) formatWindow(w *Window) error {
	if w.language == nil || len(w.language.Formatter) == 0 {
		return errors.New("no formatter for this file type")
	}

	tmp, err := os.CreateTemp("", "kestrel-*"+filepath.Ext(w.path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if _, err := writeFile(tmpPath, w.buffer); err != nil {
		return err
	}
	out, err := e.formatter(w.language.Formatter, tmpPath)
	if err != nil {
		return err
	}

	text := expandTabs(string(out))
	if text == w.buffer.String() {
		return nil
	}
	w.buffer = NewBuffer(text)
	w.clampCursor()
	w.modified = true
	e.queueHighlight(w)
	return nil
}
