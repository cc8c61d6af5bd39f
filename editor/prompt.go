package editor

import "bytes"

// Prompt displays format (with the current input substituted in) on
// the message bar and loops reading keys until the user accepts
// (ENTER, with non-empty input) or cancels (ESC). If callback is
// non-nil it is invoked after every keystroke with the current input
// and the key just pressed, which is how Find drives incremental
// search (§4.I).
func (e *Editor) Prompt(format string, callback func(query []byte, key int)) string {
	input := make([]byte, 0, 128)

	for {
		e.SetStatusMessage(format, string(input))
		e.RefreshScreen()

		key, err := readKey()
		if err != nil {
			e.Die("reading key: %v", err)
		}

		switch key {
		case DEL_KEY, BACKSPACE, ctrlKey('h'):
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case '\x1b':
			e.SetStatusMessage("")
			if callback != nil {
				callback(input, key)
			}
			return ""
		case '\r':
			if len(input) > 0 {
				e.SetStatusMessage("")
				if callback != nil {
					callback(input, key)
				}
				return string(input)
			}
		default:
			if key < 128 && !isControl(byte(key)) {
				input = append(input, byte(key))
			}
		}

		if callback != nil {
			callback(input, key)
		}
	}
}

// findSession holds the incremental-search state that the base spec
// models as static locals (§9 design note): which row last matched,
// which direction to search next, and the highlight slice temporarily
// overwritten by the current match so it can be restored.
type findSession struct {
	lastMatch   int
	direction   int
	savedHlLine int
	savedHl     []byte
}

func newFindSession() *findSession {
	return &findSession{lastMatch: -1, direction: 1}
}

// callback implements the incremental-search step (§4.I): restore any
// highlight it overwrote last time, update direction from arrow keys,
// reset search state on ENTER/ESC or any other non-navigation key,
// then scan forward/backward from lastMatch for the first row whose
// render contains query, wrapping modulo numrows.
func (fs *findSession) callback(e *Editor) func(query []byte, key int) {
	return func(query []byte, key int) {
		if fs.savedHl != nil {
			copy(e.row[fs.savedHlLine].hl, fs.savedHl)
			fs.savedHl = nil
		}

		switch key {
		case '\r', '\x1b':
			fs.lastMatch = -1
			fs.direction = 1
			return
		case ARROW_RIGHT, ARROW_DOWN:
			fs.direction = 1
		case ARROW_LEFT, ARROW_UP:
			fs.direction = -1
		default:
			fs.lastMatch = -1
			fs.direction = 1
		}

		if len(query) == 0 || e.totalRows == 0 {
			return
		}

		if fs.lastMatch == -1 {
			fs.direction = 1
		}
		current := fs.lastMatch

		for i := 0; i < e.totalRows; i++ {
			current += fs.direction
			switch {
			case current == -1:
				current = e.totalRows - 1
			case current == e.totalRows:
				current = 0
			}

			row := &e.row[current]
			match := bytes.Index(row.render, query)
			if match == -1 {
				continue
			}

			fs.lastMatch = current
			e.cy = current
			e.cx = row.rxToCx(match)
			e.rowOffset = e.totalRows

			fs.savedHlLine = current
			fs.savedHl = make([]byte, len(row.hl))
			copy(fs.savedHl, row.hl)
			for k := match; k < match+len(query) && k < len(row.hl); k++ {
				row.hl[k] = HL_MATCH
			}
			break
		}
	}
}

// Find saves the cursor/viewport, runs an incremental search prompt,
// and restores the saved position if the user cancels (§4.I).
func (e *Editor) Find() {
	savedCx, savedCy := e.cx, e.cy
	savedColOffset, savedRowOffset := e.colOffset, e.rowOffset

	fs := newFindSession()
	query := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", fs.callback(e))

	if query == "" {
		e.cx, e.cy = savedCx, savedCy
		e.colOffset, e.rowOffset = savedColOffset, savedRowOffset
	}
}
