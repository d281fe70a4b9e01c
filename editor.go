package main

// Core of the application. Owns the window collection, the current mode and
// the main loop that renders, applies highlight results and dispatches input.
// Everything here runs on the main goroutine; the highlight worker only ever
// sees buffer snapshots.

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// highlightQueueSize bounds the number of pending highlight jobs.
const highlightQueueSize = 256

// Editor is the main controller struct that holds all global state.
type Editor struct {
	windows  []*Window // Open windows in display order.
	selected int       // Index of the focused window; 0 when there are none.
	nextID   int       // Next window id; ids are never reused.
	mode     Mode      // Current editor mode.
	quit     bool      // Set by the quit commands.
	message  string    // Status message shown at the bottom until the next key.
	log      *Log

	commands       *Command
	commandHistory []string // Executed commands, oldest first.

	jobs      chan HighlightJob
	results   chan HighlightResult
	formatter Formatter
}

// NewEditor creates an editor without windows.
func NewEditor(log *Log) *Editor {
	e := &Editor{
		mode:      NormalMode{},
		log:       log,
		jobs:      make(chan HighlightJob, highlightQueueSize),
		results:   make(chan HighlightResult, highlightQueueSize),
		formatter: runFormatter,
	}
	e.commands = &Command{e: e}
	e.addLog("Editor", "Editor initialized")
	return e
}

// Jobs is the channel the highlight worker reads from.
func (e *Editor) Jobs() <-chan HighlightJob { return e.jobs }

// Results is the channel the highlight worker writes to.
func (e *Editor) Results() chan<- HighlightResult { return e.results }

func (e *Editor) addLog(group, msg string) {
	e.log.Add(group, msg)
}

// notify logs msg and shows it in the command bar.
func (e *Editor) notify(group, msg string) {
	e.message = msg
	e.addLog(group, msg)
}

// SelectedWindow returns the focused window, or nil when none is open.
func (e *Editor) SelectedWindow() *Window {
	if len(e.windows) == 0 {
		return nil
	}
	return e.windows[e.selected]
}

// CreateEmptyWindow appends a new empty window and returns its id. The
// selection does not change.
func (e *Editor) CreateEmptyWindow() int {
	w := newWindow(e.nextID)
	e.nextID++
	e.windows = append(e.windows, w)
	return w.id
}

// CloseSelected removes the focused window and returns it. The selection
// moves to the previous window, or stays on the last one.
func (e *Editor) CloseSelected() *Window {
	if len(e.windows) == 0 {
		return nil
	}
	w := e.windows[e.selected]
	e.windows = append(e.windows[:e.selected], e.windows[e.selected+1:]...)
	switch {
	case len(e.windows) == 0:
		e.selected = 0
	case e.selected > 0:
		e.selected--
	}
	return w
}

// HasModifiedWindows reports whether any window has unsaved changes.
func (e *Editor) HasModifiedWindows() bool {
	for _, w := range e.windows {
		if w.modified {
			return true
		}
	}
	return false
}

// NextWindow focuses the following window, wrapping around.
func (e *Editor) NextWindow() {
	if len(e.windows) > 0 {
		e.selected = (e.selected + 1) % len(e.windows)
	}
}

// PreviousWindow focuses the preceding window, wrapping around.
func (e *Editor) PreviousWindow() {
	if len(e.windows) > 0 {
		e.selected = (e.selected - 1 + len(e.windows)) % len(e.windows)
	}
}

// windowByID finds an open window.
func (e *Editor) windowByID(id int) *Window {
	for _, w := range e.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

// selectWindow focuses the window with id.
func (e *Editor) selectWindow(id int) {
	for i, w := range e.windows {
		if w.id == id {
			e.selected = i
			return
		}
	}
}

// OpenFile loads path into a new, selected window. Nothing is created when
// the file cannot be read.
func (e *Editor) OpenFile(path string) (*Window, error) {
	text, err := readFile(path)
	if err != nil {
		return nil, err
	}
	id := e.CreateEmptyWindow()
	w := e.windowByID(id)
	w.buffer = NewBuffer(text)
	w.path = path
	w.language = detectLanguage(path)
	e.selectWindow(id)
	e.queueHighlight(w)
	return w, nil
}

// openStartupFile opens a file named on the command line. When it cannot be
// read, an empty window attached to path is created instead.
func (e *Editor) openStartupFile(path string) {
	if _, err := e.OpenFile(path); err != nil {
		e.addLog("File", fmt.Sprintf("Error: %v", err))
		id := e.CreateEmptyWindow()
		w := e.windowByID(id)
		w.path = path
		w.language = detectLanguage(path)
		e.selectWindow(id)
		return
	}
	e.addLog("File", fmt.Sprintf("Opened %s", path))
}

// queueHighlight submits a highlight job for w. Every call supersedes the
// results of earlier jobs for the same window.
func (e *Editor) queueHighlight(w *Window) {
	w.highlightSeq++
	if w.language == nil {
		w.highlights = nil
		return
	}
	job := HighlightJob{
		ID:       uuid.New(),
		WindowID: w.id,
		Seq:      w.highlightSeq,
		Text:     w.buffer.Clone(),
		Language: w.language,
	}
	select {
	case e.jobs <- job:
	default:
		e.addLog("Highlight", fmt.Sprintf("Queue full, dropped job for window %d", w.id))
	}
}

// applyHighlight installs r if its window is still open and r answers the
// newest request of that window.
func (e *Editor) applyHighlight(r HighlightResult) {
	w := e.windowByID(r.WindowID)
	if w == nil || r.Seq != w.highlightSeq {
		return
	}
	w.highlights = r.Tokens
}

// drainHighlights applies every result that is ready without blocking.
func (e *Editor) drainHighlights() {
	for {
		select {
		case r := <-e.results:
			e.applyHighlight(r)
		default:
			return
		}
	}
}

// Run is the main loop: render, apply finished highlights, wait up to
// Config.PollInterval for input. It returns when a quit command ran, the
// screen stops delivering events or ctx is canceled.
func (e *Editor) Run(ctx context.Context, screen Screen) error {
	ticker := time.NewTicker(Config.PollInterval)
	defer ticker.Stop()

	for !e.quit {
		e.drainHighlights()
		e.draw(screen)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-screen.Events():
			if !ok {
				return nil
			}
			switch ev.Type {
			case EventKey:
				e.HandleKey(ev.Key)
			case EventError:
				return fmt.Errorf("terminal: %w", ev.Err)
			}
		case r := <-e.results:
			e.applyHighlight(r)
		case <-ticker.C:
		}
	}
	return nil
}
