package editor

// cxToRx converts a text-coordinate column to its render-coordinate
// column by walking text[0:cx) and applying the same tab/control-byte
// expansion update applies to the whole row (§3, §4.C).
func (row *editorRow) cxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(row.chars); j++ {
		switch {
		case row.chars[j] == '\t':
			rx += TAB_STOP - (rx % TAB_STOP)
		case isControl(row.chars[j]):
			rx += controlSeqWidth
		default:
			rx++
		}
	}
	return rx
}

// rxToCx is cxToRx's inverse: it finds the text-coordinate column whose
// expanded render position first exceeds rx. Used to place the cursor
// on a search hit found in render-space (§4.I).
func (row *editorRow) rxToCx(rx int) int {
	curRx := 0
	cx := 0
	for ; cx < len(row.chars); cx++ {
		switch {
		case row.chars[cx] == '\t':
			curRx += TAB_STOP - (curRx % TAB_STOP)
		case isControl(row.chars[cx]):
			curRx += controlSeqWidth
		default:
			curRx++
		}
		if curRx > rx {
			return cx
		}
	}
	return cx
}

// Update rebuilds render from chars (expanding tabs to the next
// TAB_STOP boundary and control bytes to a two-byte "^X" caret form)
// and then recomputes highlighting. Every row mutation ends by calling
// this so render/hl never go stale (§3's core invariant).
func (row *editorRow) Update(e *Editor) {
	extra := 0
	for _, c := range row.chars {
		switch {
		case c == '\t':
			extra += TAB_STOP - 1
		case isControl(c):
			extra += controlSeqWidth - 1
		}
	}

	render := make([]byte, 0, len(row.chars)+extra)
	ctrl := make([]bool, 0, len(row.chars)+extra)
	for _, c := range row.chars {
		switch {
		case c == '\t':
			render = append(render, ' ')
			ctrl = append(ctrl, false)
			for len(render)%TAB_STOP != 0 {
				render = append(render, ' ')
				ctrl = append(ctrl, false)
			}
		case isControl(c):
			render = append(render, '^', controlGlyph(c))
			ctrl = append(ctrl, true, true)
		default:
			render = append(render, c)
			ctrl = append(ctrl, false)
		}
	}
	row.render = render
	row.ctrl = ctrl
	row.UpdateSyntax(e)
}

// controlGlyph returns the printable letter that follows '^' when a
// control byte is rendered, matching the conventional caret notation
// (^? for DEL, ^[ for ESC, otherwise the byte with bit 0x40 set).
func controlGlyph(c byte) byte {
	switch c {
	case 127:
		return '?'
	case '\x1b':
		return '['
	default:
		return c + '@'
	}
}

// InsertRow inserts a new row at index at (shifting later rows down),
// fills its text, computes render/hl, and bumps numrows and dirty.
func (e *Editor) InsertRow(at int, text []byte) {
	if at < 0 || at > e.totalRows {
		return
	}

	chars := make([]byte, len(text))
	copy(chars, text)
	newRow := editorRow{idx: at, chars: chars}

	e.row = append(e.row, editorRow{})
	copy(e.row[at+1:], e.row[at:])
	e.row[at] = newRow

	for j := at + 1; j <= e.totalRows; j++ {
		e.row[j].idx = j
	}

	e.row[at].Update(e)
	e.totalRows++
	e.dirty++
}

// DeleteRow removes the row at index at, shifting later rows up.
func (e *Editor) DeleteRow(at int) {
	if at < 0 || at >= e.totalRows {
		return
	}
	e.row = append(e.row[:at], e.row[at+1:]...)
	for j := at; j < len(e.row); j++ {
		e.row[j].idx = j
	}
	e.totalRows--
	e.dirty++
}

// InsertChar inserts byte c into row at text-offset at (clamped into
// range), then recomputes render/hl.
func (row *editorRow) InsertChar(e *Editor, at int, c byte) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}
	row.chars = append(row.chars, 0)
	copy(row.chars[at+1:], row.chars[at:])
	row.chars[at] = c
	row.Update(e)
	e.dirty++
}

// DeleteChar removes the byte at text-offset at, if any.
func (row *editorRow) DeleteChar(e *Editor, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}
	row.chars = append(row.chars[:at], row.chars[at+1:]...)
	row.Update(e)
	e.dirty++
}

// AppendBytes concatenates s onto row's text and recomputes render/hl.
func (row *editorRow) AppendBytes(e *Editor, s []byte) {
	row.chars = append(row.chars, s...)
	row.Update(e)
	e.dirty++
}
