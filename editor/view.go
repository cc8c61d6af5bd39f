package editor

import (
	"fmt"
	"os"
	"time"
)

// appendBuffer accumulates one redraw's worth of output so the whole
// frame reaches the TTY in a single write, eliminating the tearing a
// naive per-escape write would cause (§4.A). Allocation failure here
// has no recoverable analogue in Go (append panics only on OOM), so
// unlike the C original there is no silent-drop path to implement.
type appendBuffer struct {
	buf []byte
}

func (ab *appendBuffer) writeString(s string) {
	ab.buf = append(ab.buf, s...)
}

func (ab *appendBuffer) write(b []byte) {
	ab.buf = append(ab.buf, b...)
}

// Scroll recomputes rx from the cursor and clamps rowOffset/colOffset so
// the cursor stays within the visible window (§4.F step 1).
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < e.totalRows {
		e.rx = e.row[e.cy].cxToRx(e.cx)
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}
}

// DrawRows renders each visible row (or '~' past end of buffer, or the
// centered welcome banner on an empty buffer) with SGR color/style
// escapes driven by hl, tracking current color/style so a run of
// same-colored bytes doesn't re-emit a redundant escape (§4.F step 3).
func (e *Editor) DrawRows(ab *appendBuffer) {
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOffset
		if filerow >= e.totalRows {
			if e.totalRows == 0 && y == e.screenRows/2 {
				e.drawWelcome(ab)
			} else {
				ab.writeString("~")
			}
		} else {
			e.drawRow(ab, &e.row[filerow])
		}
		ab.writeString(clearLine)
		ab.writeString("\r\n")
	}
}

func (e *Editor) drawWelcome(ab *appendBuffer) {
	welcome := fmt.Sprintf("kilogo editor -- version %s", VERSION)
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		ab.writeString("~")
		padding--
	}
	for ; padding > 0; padding-- {
		ab.writeString(" ")
	}
	ab.writeString(welcome)
}

func (e *Editor) drawRow(ab *appendBuffer, row *editorRow) {
	lineLen := len(row.render) - e.colOffset
	if lineLen < 0 {
		lineLen = 0
	}
	if lineLen > e.screenCols {
		lineLen = e.screenCols
	}
	start := e.colOffset
	render, hl := row.render, row.hl

	currentColor, currentStyle := -1, 0
	for j := 0; j < lineLen; j++ {
		c := render[start+j]
		h := hl[start+j]
		color, style := syntaxToGraphics(h)

		if style != currentStyle {
			if currentStyle != 0 {
				ab.writeString("\x1b[27m")
			}
			if style != 0 {
				ab.writeString(fmt.Sprintf("\x1b[%dm", style))
			}
			currentStyle = style
		}
		if color != currentColor {
			currentColor = color
			ab.writeString(fmt.Sprintf("\x1b[%dm", color))
		}
		ab.write([]byte{c})
	}
	ab.writeString("\x1b[39m")
	if currentStyle != 0 {
		ab.writeString("\x1b[27m")
	}
}

// DrawStatusBar draws the inverse-video status line: filename/line
// count/dirty flag on the left, filetype and cy/numrows on the right,
// padded to fill the row (§4.F step 4).
func (e *Editor) DrawStatusBar(ab *appendBuffer) {
	ab.writeString(invertVideo)

	filename := "[No Name]"
	if e.filename != "" {
		filename = e.filename
		if len(filename) > 20 {
			filename = filename[:20]
		}
	}
	dirty := ""
	if e.dirty > 0 {
		dirty = "(modified)"
	}
	status := fmt.Sprintf("%s - %d lines %s", filename, e.totalRows, dirty)
	if len(status) > e.screenCols {
		status = status[:e.screenCols]
	}

	filetype := "no filetype"
	if e.syntax != nil {
		filetype = e.syntax.filetype
	}
	rstatus := fmt.Sprintf("%s | %d:%d", filetype, e.cy+1, e.totalRows)

	ab.writeString(status)
	for n := len(status); n < e.screenCols; n++ {
		if e.screenCols-n == len(rstatus) {
			ab.writeString(rstatus)
			break
		}
		ab.writeString(" ")
	}

	ab.writeString(resetVideo)
	ab.writeString("\r\n")
}

// DrawMessageBar clears the message line and, if the status message is
// still within its 5-second lifetime, draws it truncated to the screen
// width (§4.F step 5, §6).
func (e *Editor) DrawMessageBar(ab *appendBuffer) {
	ab.writeString(clearLine)
	msg := e.statusMessage
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	if time.Since(e.statusMessageTime) < 5*time.Second {
		ab.writeString(msg)
	}
}

// RefreshScreen runs the full per-keystroke redraw (§4.F): scroll,
// hide cursor, draw rows/status/message, reposition the cursor, show
// it again, and flush everything in one write. It never mutates rows,
// cursor, or dirty (§8 invariant 6).
func (e *Editor) RefreshScreen() {
	e.Scroll()

	var ab appendBuffer
	ab.writeString(cursorHide)
	ab.writeString(cursorHome)

	e.DrawRows(&ab)
	e.DrawStatusBar(&ab)
	e.DrawMessageBar(&ab)

	ab.writeString(fmt.Sprintf(cursorPosFmt, e.cy-e.rowOffset+1, e.rx-e.colOffset+1))
	ab.writeString(cursorShow)

	os.Stdout.Write(ab.buf)
}
