package editor

// InsertChar inserts byte c at the cursor, appending a fresh row first
// if the cursor sits on the virtual blank line past EOF (§4.H).
func (e *Editor) InsertChar(c byte) {
	if e.cy == e.totalRows {
		e.InsertRow(e.totalRows, nil)
	}
	e.row[e.cy].InsertChar(e, e.cx, c)
	e.cx++
}

// InsertNewline splits the current row at the cursor: at column 0 it
// just opens a blank row above; otherwise the tail of the current row
// becomes a new row and the current row is truncated to the text
// before the cursor (§4.H).
func (e *Editor) InsertNewline() {
	if e.cx == 0 {
		e.InsertRow(e.cy, nil)
	} else {
		row := &e.row[e.cy]
		tail := make([]byte, len(row.chars)-e.cx)
		copy(tail, row.chars[e.cx:])
		e.InsertRow(e.cy+1, tail)

		row = &e.row[e.cy]
		row.chars = row.chars[:e.cx]
		row.Update(e)
	}
	e.cy++
	e.cx = 0
}

// DeleteChar implements backspace: a no-op at the buffer start or on
// the virtual blank line; otherwise it removes the byte before the
// cursor, or — at column 0 of a non-first row — joins the current row
// onto the previous one and removes it (§4.H).
func (e *Editor) DeleteChar() {
	if e.cy == e.totalRows {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	row := &e.row[e.cy]
	if e.cx > 0 {
		row.DeleteChar(e, e.cx-1)
		e.cx--
		return
	}

	prevLen := len(e.row[e.cy-1].chars)
	e.row[e.cy-1].AppendBytes(e, row.chars)
	e.DeleteRow(e.cy)
	e.cy--
	e.cx = prevLen
}
