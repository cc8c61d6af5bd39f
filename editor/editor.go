// Package editor implements a small, single-buffer, Emacs-like terminal
// text editor in the tradition of kilo: raw-mode terminal I/O, a
// line-oriented row store with tab-expanded render/highlight caches, a
// scrolling view, and a one-key-at-a-time command dispatcher.
package editor

import (
	"fmt"
	"os"
	"time"
)

// Config constants.
const (
	VERSION    = "1.0.0"
	TAB_STOP   = 8
	QUIT_TIMES = 3

	// controlSeqWidth is the rendered width of a control-byte caret pair,
	// e.g. "^A". It is not Unicode-aware; it is the same byte-is-a-column
	// model the rest of the renderer uses.
	controlSeqWidth = 2
)

// Key codes. Named keys live at and above 1000 so they never collide with
// a raw byte value read from the terminal.
const (
	BACKSPACE  = 127 // ASCII DEL, used as the backspace key on most terminals
	ARROW_LEFT = iota + 1000
	ARROW_RIGHT
	ARROW_UP
	ARROW_DOWN
	DEL_KEY
	HOME_KEY
	END_KEY
	PAGE_UP
	PAGE_DOWN
)

// Highlight attribute classes. NORMAL, STRING, NUMBER and MATCH are the
// core set; the rest are an extended-highlighting enrichment applied only
// when the active syntax descriptor supplies keyword/comment fields.
const (
	HL_NORMAL = iota
	HL_COMMENT
	HL_MLCOMMENT
	HL_KEYWORD1
	HL_KEYWORD2
	HL_STRING
	HL_NUMBER
	HL_MATCH
	HL_CONTROL
)

// Syntax highlighting flags.
const (
	HL_HIGHLIGHT_NUMBERS = 1 << 0
	HL_HIGHLIGHT_STRINGS = 1 << 1
)

// Editor modes. EDIT_MODE is the only mode in the base spec; the rest
// back the modal-screen enrichment (§4.K).
const (
	EDIT_MODE = iota
	SEARCH_MODE
	SAVE_MODE
	HELP_MODE
	BROWSE_MODE
)

// isControl reports whether c is a C0 control byte or DEL.
func isControl(c byte) bool {
	return c < 32 || c == 127
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ctrlKey maps a letter to the control-key byte it produces on a real
// terminal (Ctrl-A through Ctrl-Z strip bits 5 and 6).
func ctrlKey(c rune) int {
	return int(c) & 0x1f
}

// editorSyntax describes how to highlight one filetype: which filenames
// it applies to, and which of the highlighter's optional rule sets
// (numbers, strings, line/block comments, two keyword groups) fire.
type editorSyntax struct {
	filetype      string
	filematch     []string
	keywords      [][]string
	singleComment string
	blockCommentS string
	blockCommentE string
	flags         int
}

// editorRow is one logical line of the buffer: its raw text, the
// tab/control-expanded render form used for display, and a parallel
// per-render-byte highlight classification.
type editorRow struct {
	idx           int
	chars         []byte
	render        []byte
	hl            []byte
	hlOpenComment bool

	// ctrl marks which bytes of render belong to a "^X" caret pair
	// produced by control-byte expansion, so the highlighter can
	// classify them as HL_CONTROL without guessing from content alone.
	ctrl []bool
}

// Editor is the process-global editor state: cursor, viewport, row
// store, active file and syntax, and the raw-mode terminal handle. It is
// the single owner of every row; the dispatcher chain is the only thing
// that mutates its fields.
type Editor struct {
	cx, cy    int
	rx        int
	rowOffset int
	colOffset int

	screenRows int
	screenCols int

	row       []editorRow
	totalRows int
	dirty     int

	filename string
	syntax   *editorSyntax

	statusMessage     string
	statusMessageTime time.Time

	mode int

	terminal *Terminal
	resized  bool

	// quitTimesLeft counts down the unsaved-quit warnings Ctrl-Q must
	// pass through before it actually exits (§4.J).
	quitTimesLeft int
}

// New returns a freshly zeroed Editor bound to the controlling TTY.
func New() *Editor {
	return &Editor{terminal: newTerminal()}
}

// EnableRawMode puts the controlling TTY into raw mode (§4.B).
func (e *Editor) EnableRawMode() error {
	return e.terminal.EnableRawMode()
}

// DisableRawMode restores the TTY attributes captured by EnableRawMode.
// It is safe to call more than once.
func (e *Editor) DisableRawMode() error {
	return e.terminal.restore()
}

// WatchResize starts the SIGWINCH watcher that calls e.MarkResized on
// every terminal resize (§4.B enrichment, §5).
func (e *Editor) WatchResize() {
	e.terminal.WatchResize(e.MarkResized)
}

// Init probes the window size and resets all editor state to an empty,
// unnamed buffer. It must be called once, after raw mode is enabled and
// before the first ProcessKeypress/RefreshScreen cycle.
func (e *Editor) Init() error {
	e.cx, e.cy = 0, 0
	e.rx = 0
	e.rowOffset, e.colOffset = 0, 0
	e.row = nil
	e.totalRows = 0
	e.dirty = 0
	e.filename = ""
	e.syntax = nil
	e.statusMessage = ""
	e.statusMessageTime = time.Time{}
	e.mode = EDIT_MODE
	e.quitTimesLeft = QUIT_TIMES

	rows, cols, err := e.terminal.windowSize()
	if err != nil {
		return fmt.Errorf("getting window size: %w", err)
	}
	e.screenRows = rows - 2 // reserve the status and message bars
	e.screenCols = cols
	return nil
}

// Die restores the terminal, clears the screen, reports the error on the
// OS error channel, and exits the process with a non-zero status. It is
// reserved for the failures §7 classifies as fatal (startup, shutdown,
// and errors reading a key from the TTY). If
// the terminal itself fails to restore, that failure is reported too,
// since §7 treats a failed attribute restore at shutdown as fatal on
// its own.
func (e *Editor) Die(format string, args ...any) {
	restoreErr := e.terminal.restore()
	os.Stdout.WriteString(clearScreen)
	os.Stdout.WriteString(cursorHome)
	fmt.Fprintf(os.Stderr, "kilogo: "+format+"\n", args...)
	if restoreErr != nil {
		fmt.Fprintf(os.Stderr, "kilogo: %v\n", restoreErr)
	}
	os.Exit(1)
}

// ShowError reports a recoverable error in the status/message bar
// instead of terminating the process.
func (e *Editor) ShowError(format string, args ...any) {
	e.SetStatusMessage("error: "+format, args...)
}

// SetStatusMessage formats and timestamps the message shown in the
// message bar; it fades out 5 seconds after being set (§6).
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusMessageTime = time.Now()
}

// Quit restores the terminal, clears the screen and exits 0. Only
// ProcessKeypress's Ctrl-Q handling, after the dirty-buffer guard has
// been satisfied, calls this. A failed restore is itself a fatal
// shutdown error per §7, so it takes the Die path instead of exiting 0.
func (e *Editor) Quit() {
	if err := e.terminal.restore(); err != nil {
		e.Die("%v", err)
	}
	os.Stdout.WriteString(clearScreen)
	os.Stdout.WriteString(cursorHome)
	os.Exit(0)
}

// Run is the interactive loop: redraw, read one key, dispatch, repeat.
// It never returns: the process ends only through Quit or Die, both of
// which call os.Exit themselves.
func (e *Editor) Run() {
	for {
		if e.resized {
			e.resized = false
			if rows, cols, err := e.terminal.windowSize(); err == nil {
				e.screenRows = rows - 2
				e.screenCols = cols
			}
		}
		e.RefreshScreen()
		e.ProcessKeypress()
	}
}

// MarkResized is invoked by the SIGWINCH handler installed in
// terminal.go; it only flags that the next loop iteration should
// re-probe window size, it never touches row/cursor state directly, so
// the single-threaded guarantee of §5 still holds between keystrokes.
func (e *Editor) MarkResized() {
	e.resized = true
}
