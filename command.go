package main

// Colon command handler (e.g., :q, :w, :help). It processes strings entered in
// command mode and executes the corresponding actions. The mode is already
// back to Normal when a command runs, so a command may open a dialog.

import (
	"fmt"
	"strconv"
	"strings"
)

// Command provides a context for executing editor commands.
type Command struct {
	e *Editor
}

// Handle parses and executes a command string. Recognised commands are saved
// to the history; line numbers and unknown input are not.
func (ch *Command) Handle(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	ch.e.addLog("Command", fmt.Sprintf("Executing %s...", cmd))

	if ch.run(strings.Fields(cmd)) {
		ch.saveToHistory(cmd)
	}
}

// run dispatches on the command name and its arguments. It reports whether
// the command name was recognised.
func (ch *Command) run(args []string) bool {
	name, params := args[0], args[1:]

	switch name {
	case "q", "quit":
		ch.quit(false)
	case "q!", "quit!":
		ch.quit(true)
	case "w", "write":
		if ch.arity(name, params, 0) {
			ch.write()
		}
	case "o", "open":
		if ch.arity(name, params, 1) {
			ch.open(params[0])
		}
	case "a", "attach":
		if ch.arity(name, params, 1) {
			ch.attach(params[0])
		}
	case "n", "new":
		if ch.arity(name, params, 0) {
			ch.e.selectWindow(ch.e.CreateEmptyWindow())
			ch.e.addLog("Editor", "Created new window")
		}
	case "c", "close":
		if ch.arity(name, params, 0) {
			ch.close()
		}
	case "settitle":
		if len(params) == 0 {
			ch.e.notify("Command", "Error: settitle needs a title")
			return true
		}
		ch.setTitle(strings.Join(params, " "))
	case "format", "fmt":
		if ch.arity(name, params, 0) {
			ch.format()
		}
	case "log", "logs":
		ch.e.mode = newDialogMode(DialogLog)
	case "help":
		ch.e.mode = newDialogMode(DialogHelp)
	default:
		// If the command is a number, jump to that line.
		if lineNum, err := strconv.Atoi(name); err == nil && len(params) == 0 {
			ch.goToLine(lineNum)
			return false
		}
		ch.e.notify("Command", fmt.Sprintf("Error: Command not found: %s", strings.Join(args, " ")))
		return false
	}
	return true
}

// arity checks the number of parameters and logs an error when it is wrong.
func (ch *Command) arity(name string, params []string, n int) bool {
	if len(params) == n {
		return true
	}
	ch.e.notify("Command", fmt.Sprintf("Error: %s expects %d argument(s), got %d", name, n, len(params)))
	return false
}

// saveToHistory appends cmd unless it repeats the previous entry.
func (ch *Command) saveToHistory(cmd string) {
	h := ch.e.commandHistory
	if len(h) == 0 || h[len(h)-1] != cmd {
		ch.e.commandHistory = append(h, cmd)
	}
}

// NavigateHistoryUp moves backward through command history.
func (ch *Command) NavigateHistoryUp(m *CommandMode) {
	if len(ch.e.commandHistory) == 0 {
		return
	}

	if m.history == -1 {
		// Starting navigation from the end
		m.history = len(ch.e.commandHistory) - 1
	} else if m.history > 0 {
		m.history--
	}
	m.buffer = []rune(ch.e.commandHistory[m.history])
	m.cursor = len(m.buffer)
}

// NavigateHistoryDown moves forward through command history.
func (ch *Command) NavigateHistoryDown(m *CommandMode) {
	if m.history == -1 {
		return
	}

	m.history++
	if m.history >= len(ch.e.commandHistory) {
		// Reached the end, clear the buffer
		m.history = -1
		m.buffer = nil
		m.cursor = 0
		return
	}
	m.buffer = []rune(ch.e.commandHistory[m.history])
	m.cursor = len(m.buffer)
}

// quit exits the editor, checking for unsaved changes unless 'force' is true.
func (ch *Command) quit(force bool) {
	if !force && ch.e.HasModifiedWindows() {
		ch.e.notify("Editor", "Warning: No write since last change (use :q! to override)")
		return
	}
	ch.e.quit = true
}

// write saves the selected window to its attached path.
func (ch *Command) write() {
	w := ch.e.SelectedWindow()
	if w == nil {
		ch.e.notify("File", "Error: No open window")
		return
	}
	if w.path == "" {
		ch.e.notify("File", fmt.Sprintf("Error: %s is not attached to a file (use :attach path)", w.ResolveTitle()))
		return
	}

	n, err := writeFile(w.path, w.buffer)
	if err != nil {
		ch.e.notify("File", fmt.Sprintf("Error: Could not write %s to %s: %v", w.ResolveTitle(), w.path, err))
		return
	}
	w.modified = false
	ch.e.notify("File", fmt.Sprintf("Successfully wrote %d bytes to %s", n, w.path))
}

// open loads path into a new window. Nothing is created on failure.
func (ch *Command) open(path string) {
	if _, err := ch.e.OpenFile(path); err != nil {
		ch.e.notify("File", fmt.Sprintf("Error: Could not open %s: %v", path, err))
		return
	}
	ch.e.notify("File", fmt.Sprintf("Successfully opened %s", path))
}

// attach points the selected window at path and re-detects its language.
func (ch *Command) attach(path string) {
	w := ch.e.SelectedWindow()
	if w == nil {
		ch.e.notify("Editor", "Error: No window selected")
		return
	}
	w.path = path
	w.language = detectLanguage(path)
	ch.e.queueHighlight(w)
	ch.e.notify("File", fmt.Sprintf("Attached the current window to %s", path))
}

// close removes the selected window unless it has unsaved changes.
func (ch *Command) close() {
	w := ch.e.SelectedWindow()
	if w == nil {
		ch.e.notify("Editor", "Error: No window selected")
		return
	}
	if w.modified {
		ch.e.notify("Editor", fmt.Sprintf("Warning: %s has unsaved changes", w.ResolveTitle()))
		return
	}
	ch.e.CloseSelected()
	ch.e.addLog("Editor", fmt.Sprintf("Closed %s", w.ResolveTitle()))
}

// setTitle changes the display title of the selected window.
func (ch *Command) setTitle(title string) {
	w := ch.e.SelectedWindow()
	if w == nil {
		ch.e.notify("Editor", "Error: No window selected")
		return
	}
	w.title = title
	ch.e.addLog("Editor", fmt.Sprintf("Successfully set title to %s", title))
}

// format runs the external formatter of the selected window's language.
func (ch *Command) format() {
	w := ch.e.SelectedWindow()
	if w == nil {
		ch.e.notify("Editor", "Error: No window selected")
		return
	}
	if err := ch.e.formatWindow(w); err != nil {
		ch.e.notify("Format", fmt.Sprintf("Error: %v", err))
		return
	}
	ch.e.notify("Format", fmt.Sprintf("Formatted %s", w.ResolveTitle()))
}

// goToLine moves the cursor to the beginning of the specified line number.
func (ch *Command) goToLine(lineNum int) {
	w := ch.e.SelectedWindow()
	if w == nil {
		return
	}
	// Convert 1-based UI line number to 0-based index.
	line := max(0, min(lineNum-1, w.buffer.LineCount()-1))
	w.cursor = w.buffer.LineToChar(line)
}
