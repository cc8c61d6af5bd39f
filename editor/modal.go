package editor

// modalScreen is a full-screen alternative to the single-line Prompt
// flow (§4.K, §9): instead of a callback driving one line of the status
// bar, a modal screen takes over the whole row store temporarily and
// runs its own key-handling loop.
type modalScreen interface {
	// content returns the rows to display in place of the buffer.
	content() []editorRow

	// statusMessage is shown in the message bar while the screen is active.
	statusMessage() string

	// handleKey processes one key. The first return value reports
	// whether the screen should close; the second reports whether the
	// editor's displaced buffer should be restored (false means the
	// screen itself already installed the state that should remain,
	// e.g. after opening a file from the browser).
	handleKey(key int, e *Editor) (close bool, restore bool)

	// initialize sets the initial cursor position once content is installed.
	initialize(e *Editor)
}

// editorSnapshot is the subset of Editor state a modal screen displaces
// and must be able to restore.
type editorSnapshot struct {
	rows      []editorRow
	totalRows int
	cx, cy    int
	colOffset int
	rowOffset int
}

func (e *Editor) snapshot() editorSnapshot {
	return editorSnapshot{
		rows:      e.row,
		totalRows: e.totalRows,
		cx:        e.cx,
		cy:        e.cy,
		colOffset: e.colOffset,
		rowOffset: e.rowOffset,
	}
}

func (e *Editor) restoreSnapshot(s editorSnapshot) {
	e.row = s.rows
	e.totalRows = s.totalRows
	e.cx = s.cx
	e.cy = s.cy
	e.colOffset = s.colOffset
	e.rowOffset = s.rowOffset
	e.mode = EDIT_MODE
}

// runModal installs screen's content in place of the buffer, enters
// mode, and loops reading/dispatching keys to the screen until it
// reports closure, restoring the displaced buffer unless the screen
// says otherwise.
func runModal(e *Editor, screen modalScreen, mode int) {
	saved := e.snapshot()

	content := screen.content()
	e.mode = mode
	e.row = content
	e.totalRows = len(content)
	e.cx, e.cy = 0, 0
	e.colOffset, e.rowOffset = 0, 0
	e.SetStatusMessage("%s", screen.statusMessage())

	screen.initialize(e)

	for {
		e.RefreshScreen()

		key, err := readKey()
		if err != nil {
			e.Die("reading key: %v", err)
		}

		close, restore := screen.handleKey(key, e)
		if close {
			if restore {
				e.restoreSnapshot(saved)
				e.SetStatusMessage("Returned to editor")
			}
			return
		}
	}
}
