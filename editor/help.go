package editor

import "fmt"

// helpScreen is the static key-binding reference shown on Ctrl-G.
type helpScreen struct {
	rows []editorRow
}

func newHelpScreen(e *Editor) *helpScreen {
	lines := []string{
		"=== KILOGO HELP ===",
		"",
		"NAVIGATION:",
		"  Arrow Keys       - Move cursor",
		"  Page Up/Down     - Scroll by page",
		"  Home/End         - Move to line start/end",
		"",
		"EDITING:",
		"  Ctrl-S           - Save file",
		"  Ctrl-Q           - Quit (confirms if unsaved)",
		"  Backspace/Delete - Delete characters",
		"  Enter            - Split line",
		"",
		"SEARCH:",
		"  Ctrl-F           - Find text",
		"  Arrow Up/Down    - Cycle matches while searching",
		"  Escape           - Cancel search",
		"",
		"FILE OPERATIONS:",
		"  Ctrl-O           - Browse files",
		"",
		"OTHER:",
		"  Ctrl-G           - Show this help",
		"  Ctrl-R           - Force a full redraw",
		"",
		fmt.Sprintf("kilogo %s", VERSION),
		"",
		"Press 'q' or Escape to return to the buffer.",
	}

	rows := make([]editorRow, len(lines))
	for i, line := range lines {
		rows[i] = editorRow{idx: i, chars: []byte(line)}
		rows[i].Update(e)
	}
	return &helpScreen{rows: rows}
}

func (h *helpScreen) content() []editorRow { return h.rows }

func (h *helpScreen) statusMessage() string {
	return "Help - arrows/page up/down to scroll, 'q' or Escape to exit"
}

func (h *helpScreen) initialize(e *Editor) {
	e.cy = 0
	e.rowOffset = 0
}

func (h *helpScreen) handleKey(key int, e *Editor) (bool, bool) {
	switch key {
	case 'q', 'Q', '\x1b':
		return true, true

	case ARROW_UP:
		if e.cy > 0 {
			e.cy--
		} else if e.rowOffset > 0 {
			e.rowOffset--
		}

	case ARROW_DOWN:
		maxCy := len(h.rows) - 1
		if e.cy < e.screenRows-1 && e.cy < maxCy {
			e.cy++
		} else if e.rowOffset+e.screenRows < len(h.rows) {
			e.rowOffset++
		}

	case PAGE_UP:
		for i := 0; i < e.screenRows && (e.cy > 0 || e.rowOffset > 0); i++ {
			if e.cy > 0 {
				e.cy--
			} else if e.rowOffset > 0 {
				e.rowOffset--
			}
		}

	case PAGE_DOWN:
		for i := 0; i < e.screenRows && e.rowOffset+e.cy < len(h.rows)-1; i++ {
			maxCy := len(h.rows) - 1
			if e.cy < e.screenRows-1 && e.cy < maxCy {
				e.cy++
			} else if e.rowOffset+e.screenRows < len(h.rows) {
				e.rowOffset++
			}
		}

	case HOME_KEY:
		e.cy = 0
		e.rowOffset = 0

	case END_KEY:
		maxRows := len(h.rows)
		if maxRows <= e.screenRows {
			e.cy = maxRows - 1
			e.rowOffset = 0
		} else {
			e.cy = e.screenRows - 1
			e.rowOffset = maxRows - e.screenRows
		}
	}

	return false, false
}

// Help displays the static key-binding reference (§4.K).
func (e *Editor) Help() {
	runModal(e, newHelpScreen(e), HELP_MODE)
}
