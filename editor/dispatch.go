package editor

// ProcessKeypress reads one decoded key and dispatches it (§4.J): the
// core motion/edit/save/find/quit bindings from the base spec, plus the
// Ctrl-G help, Ctrl-O file-browser and Ctrl-R force-redraw enrichments.
// e.quitTimesLeft resets after every action except a thwarted quit.
func (e *Editor) ProcessKeypress() {
	key, err := readKey()
	if err != nil {
		e.Die("reading key: %v", err)
	}

	switch key {
	case '\r':
		e.InsertNewline()

	case ctrlKey('q'):
		if e.dirty > 0 && e.quitTimesLeft > 0 {
			e.SetStatusMessage("WARNING: File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimesLeft)
			e.quitTimesLeft--
			return
		}
		e.Quit()

	case ctrlKey('s'):
		e.Save()

	case ctrlKey('f'):
		e.Find()

	case ctrlKey('g'):
		e.Help()

	case ctrlKey('o'):
		e.Browse()

	case ctrlKey('r'):
		e.MarkResized()

	case HOME_KEY:
		e.cx = 0

	case END_KEY:
		if e.cy < e.totalRows {
			e.cx = len(e.row[e.cy].chars)
		}

	case BACKSPACE, DEL_KEY, ctrlKey('h'):
		if key == DEL_KEY {
			e.MoveCursor(ARROW_RIGHT)
		}
		e.DeleteChar()

	case PAGE_UP:
		e.cy = e.rowOffset
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_UP)
		}

	case PAGE_DOWN:
		e.cy = min(e.rowOffset+e.screenRows-1, e.totalRows)
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_DOWN)
		}

	case ARROW_LEFT, ARROW_RIGHT, ARROW_UP, ARROW_DOWN:
		e.MoveCursor(key)

	case ctrlKey('l'), '\x1b':
		// no-op

	default:
		if key >= 0 && key < 256 && !isControl(byte(key)) {
			e.InsertChar(byte(key))
		}
	}

	e.quitTimesLeft = QUIT_TIMES
}
