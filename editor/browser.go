package editor

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileBrowserScreen lists one directory at a time; Enter descends into
// a subdirectory or opens a regular file in place of the displaced
// buffer (§4.K). It is not a second simultaneous buffer: opening a file
// here replaces the editor's single buffer exactly as Open does from
// the command line.
type fileBrowserScreen struct {
	dir          string
	entries      []os.DirEntry
	hasParentDir bool
	rows         []editorRow
	editor       *Editor
}

func newFileBrowserScreen(e *Editor, startDir string) (*fileBrowserScreen, error) {
	fb := &fileBrowserScreen{dir: startDir, editor: e}
	if err := fb.load(); err != nil {
		return nil, err
	}
	return fb, nil
}

func (fb *fileBrowserScreen) load() error {
	entries, err := os.ReadDir(fb.dir)
	if err != nil {
		return err
	}
	fb.entries = entries
	fb.hasParentDir = fb.dir != "." && fb.dir != "/"
	fb.rows = fb.buildRows()
	return nil
}

func (fb *fileBrowserScreen) buildRows() []editorRow {
	rows := make([]editorRow, 0, len(fb.entries)+2)

	header := editorRow{idx: 0, chars: []byte(fmt.Sprintf("=== Browse: %s ===", fb.dir))}
	header.Update(fb.editor)
	rows = append(rows, header)

	if fb.hasParentDir {
		parent := editorRow{idx: 1, chars: []byte(".. (parent directory)")}
		parent.Update(fb.editor)
		rows = append(rows, parent)
	}

	for _, entry := range fb.entries {
		row := editorRow{idx: len(rows), chars: []byte(fb.describe(entry))}
		row.Update(fb.editor)
		rows = append(rows, row)
	}
	return rows
}

func (fb *fileBrowserScreen) describe(entry os.DirEntry) string {
	if entry.IsDir() {
		return entry.Name() + "/"
	}
	info, err := entry.Info()
	if err != nil {
		return entry.Name()
	}
	return fmt.Sprintf("%s (%d bytes)", entry.Name(), info.Size())
}

func (fb *fileBrowserScreen) content() []editorRow { return fb.rows }

func (fb *fileBrowserScreen) statusMessage() string {
	return fmt.Sprintf("Browse: %s - %d entries (Enter=open, ESC/q=quit)", fb.dir, len(fb.entries))
}

func (fb *fileBrowserScreen) firstEntryRow() int {
	if fb.hasParentDir {
		return 2
	}
	return 1
}

func (fb *fileBrowserScreen) initialize(e *Editor) {
	e.cy = fb.firstEntryRow()
	fb.highlightSelection(e)
}

func (fb *fileBrowserScreen) handleKey(key int, e *Editor) (bool, bool) {
	switch key {
	case 'q', 'Q', '\x1b':
		return true, true

	case ARROW_UP:
		if e.cy > 1 {
			e.cy--
		}
		fb.highlightSelection(e)

	case ARROW_DOWN:
		if e.cy < len(fb.rows)-1 {
			e.cy++
		}
		fb.highlightSelection(e)

	case '\r':
		opened, err := fb.openSelection(e)
		if err != nil {
			e.ShowError("%v", err)
			return false, false
		}
		if opened {
			return true, false
		}
		e.row = fb.rows
		e.totalRows = len(fb.rows)
		e.cy = fb.firstEntryRow()
		e.rowOffset = 0
		e.SetStatusMessage("%s", fb.statusMessage())
	}

	return false, false
}

func (fb *fileBrowserScreen) highlightSelection(e *Editor) {
	for i := 1; i < len(fb.rows); i++ {
		for j := range fb.rows[i].hl {
			fb.rows[i].hl[j] = HL_NORMAL
		}
	}
	if e.cy > 0 && e.cy < len(fb.rows) {
		for j := range fb.rows[e.cy].hl {
			fb.rows[e.cy].hl[j] = HL_MATCH
		}
	}
	e.row = fb.rows
}

// openSelection either descends into a directory (returning false, nil
// and leaving the browser open) or opens a file and reports true so the
// caller closes the browser without restoring the displaced buffer.
func (fb *fileBrowserScreen) openSelection(e *Editor) (bool, error) {
	prevDir := fb.dir
	selected := e.cy - 1
	if fb.hasParentDir {
		if selected == 0 {
			fb.dir = filepath.Dir(fb.dir)
			if err := fb.load(); err != nil {
				fb.dir = prevDir
				return false, err
			}
			return false, nil
		}
		selected--
	}
	if selected < 0 || selected >= len(fb.entries) {
		return false, nil
	}

	entry := fb.entries[selected]
	if entry.IsDir() {
		fb.dir = filepath.Join(fb.dir, entry.Name())
		if err := fb.load(); err != nil {
			fb.dir = prevDir
			return false, err
		}
		return false, nil
	}

	if e.dirty > 0 {
		return false, fmt.Errorf("current file has unsaved changes")
	}

	if err := e.Open(filepath.Join(fb.dir, entry.Name())); err != nil {
		return false, err
	}
	return true, nil
}

// Browse opens the file browser rooted at the current directory (§4.K).
func (e *Editor) Browse() {
	fb, err := newFileBrowserScreen(e, ".")
	if err != nil {
		e.ShowError("opening browser: %v", err)
		return
	}
	runModal(e, fb, BROWSE_MODE)
}
