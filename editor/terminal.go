package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// VT100/ANSI escape sequences the renderer and terminal layer emit.
const (
	clearScreen     = "\x1b[2J"
	clearLine       = "\x1b[K"
	cursorHome      = "\x1b[H"
	cursorHide      = "\x1b[?25l"
	cursorShow      = "\x1b[?25h"
	cursorToCorner  = "\x1b[999C\x1b[999B"
	cursorPositionQ = "\x1b[6n"
	cursorPosFmt    = "\x1b[%d;%dH"
	invertVideo     = "\x1b[7m"
	resetVideo      = "\x1b[m"
)

// Terminal owns the controlling TTY's raw-mode lifecycle: it remembers
// the attributes in force when the process started so they can be
// restored on every exit path, and it installs the SIGWINCH watcher
// that keeps the editor's window-size cache fresh.
type Terminal struct {
	fd       int
	original *unix.Termios
	sigwinch chan os.Signal
}

func newTerminal() *Terminal {
	return &Terminal{fd: int(os.Stdin.Fd())}
}

// EnableRawMode snapshots the current terminal attributes and installs a
// new attribute set per §4.B: no break/parity/strip/flow-control
// processing on input, no output post-processing, no echo/canonical
// mode/extended-input/signal generation, forced 8-bit characters, and a
// VMIN=0/VTIME=1 (one decisecond) non-canonical read timeout so
// ProcessKeypress's poll loop can observe "no data yet" without
// blocking indefinitely.
func (t *Terminal) EnableRawMode() error {
	orig, err := unix.IoctlGetTermios(t.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.original = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(t.fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("setting terminal attributes: %w", err)
	}

	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, unix.SIGWINCH)
	return nil
}

// restore resets the terminal to the attributes captured by
// EnableRawMode. It is idempotent: once the original attributes have
// been restored, t.original is cleared so a second call (e.g. from both
// a deferred cleanup and an explicit Quit) is a no-op. A failed restore
// is reported to the caller instead of being silently dropped, per the
// attribute-set failure row of §7's error table.
func (t *Terminal) restore() error {
	if t.original == nil {
		return nil
	}
	err := unix.IoctlSetTermios(t.fd, unix.TCSETS, t.original)
	t.original = nil
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
	if err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

// WatchResize spawns the goroutine that turns SIGWINCH notifications
// into calls to onResize. It never touches editor state itself — per
// §5, only the flag-setting callback is allowed to run outside the
// single-threaded keystroke loop.
func (t *Terminal) WatchResize(onResize func()) {
	if t.sigwinch == nil {
		return
	}
	go func() {
		for range t.sigwinch {
			onResize()
		}
	}()
}

// readKey blocks until one byte is available, ignoring the zero-byte
// timeouts produced by VTIME=1, then decodes `ESC [ ...` / `ESC O ...`
// escape sequences into the named key constants. An incomplete escape
// sequence (one whose follow-up bytes themselves time out) decodes as a
// plain ESC, matching §4.B's decode table exactly.
func readKey() (int, error) {
	var buf [1]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if n == 1 {
			break
		}
		if err != nil && !isAgain(err) {
			return 0, fmt.Errorf("reading keyboard input: %w", err)
		}
	}

	c := buf[0]
	if c != '\x1b' {
		return int(c), nil
	}

	var seq [3]byte
	if !readByte(&seq[0]) {
		return '\x1b', nil
	}
	if !readByte(&seq[1]) {
		return '\x1b', nil
	}

	switch seq[0] {
	case '[':
		if seq[1] >= '0' && seq[1] <= '9' {
			if !readByte(&seq[2]) {
				return '\x1b', nil
			}
			if seq[2] == '~' {
				switch seq[1] {
				case '1', '7':
					return HOME_KEY, nil
				case '3':
					return DEL_KEY, nil
				case '4', '8':
					return END_KEY, nil
				case '5':
					return PAGE_UP, nil
				case '6':
					return PAGE_DOWN, nil
				}
			}
		} else {
			switch seq[1] {
			case 'A':
				return ARROW_UP, nil
			case 'B':
				return ARROW_DOWN, nil
			case 'C':
				return ARROW_RIGHT, nil
			case 'D':
				return ARROW_LEFT, nil
			case 'H':
				return HOME_KEY, nil
			case 'F':
				return END_KEY, nil
			}
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return HOME_KEY, nil
		case 'F':
			return END_KEY, nil
		}
	}
	return '\x1b', nil
}

// readByte reads a single follow-up byte of an escape sequence,
// retrying on read timeouts (zero-byte reads) but giving up once the
// read itself errors or returns nothing after a bounded number of
// polls — at which point the caller treats the sequence as incomplete.
func readByte(b *byte) bool {
	var buf [1]byte
	for i := 0; i < 2; i++ {
		n, err := os.Stdin.Read(buf[:])
		if n == 1 {
			*b = buf[0]
			return true
		}
		if err != nil && !isAgain(err) {
			return false
		}
	}
	return false
}

// isAgain reports whether a failed read only means "no data yet": a
// VTIME timeout (which os.File reports as io.EOF for a zero-byte read),
// EAGAIN, or EINTR.
func isAgain(err error) bool {
	return err == io.EOF || errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR)
}

// windowSize queries the TTY's dimensions via TIOCGWINSZ. If the ioctl
// fails or reports a zero width (e.g. output redirected to a pipe that
// still claims to be a TTY), it falls back to parking the cursor at
// column/row 999 (clamped by the terminal to the real bottom-right
// corner) and parsing the `ESC [ 6n` cursor-position report.
func (t *Terminal) windowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}

	if _, werr := os.Stdout.WriteString(cursorToCorner); werr != nil {
		return 0, 0, fmt.Errorf("positioning cursor: %w", werr)
	}
	return t.cursorPosition()
}

// cursorPosition writes the `ESC [ 6n` device status report request and
// parses the `ESC [ rows ; cols R` reply from stdin.
func (t *Terminal) cursorPosition() (rows, cols int, err error) {
	if _, err := os.Stdout.WriteString(cursorPositionQ); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}

	var resp bytes.Buffer
	var b [1]byte
	for resp.Len() < 32 {
		n, err := os.Stdin.Read(b[:])
		if n != 1 {
			if err != nil && !isAgain(err) {
				return 0, 0, fmt.Errorf("reading cursor position reply: %w", err)
			}
			continue
		}
		if b[0] == 'R' {
			break
		}
		resp.WriteByte(b[0])
	}

	body := resp.Bytes()
	if len(body) < 2 || body[0] != '\x1b' || body[1] != '[' {
		return 0, 0, fmt.Errorf("malformed cursor position reply %q", body)
	}
	if _, err := fmt.Sscanf(string(body[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("parsing cursor position reply %q: %w", body, err)
	}
	return rows, cols, nil
}
