package editor

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RowsToString serializes every row's text, each followed by a single
// '\n', into one byte run (§4.E). The terminator is always '\n'
// regardless of host OS, since the save/load round-trip property (§8.5)
// is defined against that fixed terminator.
func (e *Editor) RowsToString() []byte {
	var buf strings.Builder
	total := 0
	for _, row := range e.row {
		total += len(row.chars) + 1
	}
	buf.Grow(total)
	for _, row := range e.row {
		buf.Write(row.chars)
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

// Open loads filename into a fresh row store, stripping each line's
// trailing \r and \n, selects a syntax for it, and clears dirty. An
// unreadable file is a fatal startup error (§4.E) when called before
// the editor is running; callers invoked from a live session (the file
// browser, a future re-open) instead receive the error and report it
// through ShowError.
func (e *Editor) Open(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening %q: %w", filename, err)
	}
	defer file.Close()

	e.filename = filename
	e.row = nil
	e.totalRows = 0
	e.cx, e.cy = 0, 0
	e.rowOffset, e.colOffset = 0, 0
	e.rx = 0

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		e.InsertRow(e.totalRows, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %q: %w", filename, err)
	}

	e.SelectSyntaxHighlight()
	e.dirty = 0
	return nil
}

// Save writes the current buffer to e.filename, prompting for a name
// first if none is set. Per §4.E the target is truncated to the
// serialized length and then written in full; on any failure the
// message bar reports it and dirty is left set so the buffer is never
// silently treated as saved.
func (e *Editor) Save() {
	if e.filename == "" {
		name := e.Prompt("Save as: %s (ESC to cancel)", nil)
		if name == "" {
			e.SetStatusMessage("Save aborted")
			return
		}
		e.filename = name
		e.SelectSyntaxHighlight()
	}

	data := e.RowsToString()

	file, err := os.OpenFile(e.filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return
	}
	defer file.Close()

	if err := file.Truncate(int64(len(data))); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return
	}
	n, err := file.Write(data)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return
	}
	if n != len(data) {
		e.SetStatusMessage("Can't save! Partial write: %d/%d bytes", n, len(data))
		return
	}

	e.dirty = 0
	e.SetStatusMessage("%d bytes written to disk", len(data))
}
