package editor

import "testing"

func newTestEditor() *Editor {
	e := &Editor{screenRows: 20, screenCols: 80}
	e.quitTimesLeft = QUIT_TIMES
	return e
}

func TestEditorRowDeleteChar(t *testing.T) {
	e := newTestEditor()
	row := &editorRow{idx: 0, chars: []byte("hello")}
	row.Update(e)

	row.DeleteChar(e, 1) // delete 'e'

	if got := string(row.chars); got != "hllo" {
		t.Errorf("chars = %q, want %q", got, "hllo")
	}
	if len(row.render) != len(row.hl) {
		t.Errorf("render/hl length mismatch: %d vs %d", len(row.render), len(row.hl))
	}
}

func TestEditorRowDeleteCharMultiple(t *testing.T) {
	e := newTestEditor()
	row := &editorRow{idx: 0, chars: []byte("abc")}
	row.Update(e)

	row.DeleteChar(e, 0) // "abc" -> "bc"
	row.DeleteChar(e, 0) // "bc" -> "c"

	if got := string(row.chars); got != "c" {
		t.Errorf("chars = %q, want %q", got, "c")
	}
}

func TestRowUpdateExpandsTabs(t *testing.T) {
	e := newTestEditor()
	row := &editorRow{idx: 0, chars: []byte("a\tb")}
	row.Update(e)

	want := "a       b" // tab to next TAB_STOP=8 boundary
	if got := string(row.render); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
	if len(row.render) != len(row.hl) {
		t.Errorf("render/hl length mismatch: %d vs %d", len(row.render), len(row.hl))
	}
}

func TestRowUpdateExpandsControlBytes(t *testing.T) {
	e := newTestEditor()
	row := &editorRow{idx: 0, chars: []byte("a\x01b")}
	row.Update(e)

	want := "a^Ab"
	if got := string(row.render); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
	if len(row.ctrl) != len(row.render) {
		t.Fatalf("ctrl length = %d, want %d", len(row.ctrl), len(row.render))
	}
	for i, want := range []bool{false, true, true, false} {
		if row.ctrl[i] != want {
			t.Errorf("ctrl[%d] = %v, want %v", i, row.ctrl[i], want)
		}
	}
}

func TestControlByteCaretNotConfusedWithLiteralCaret(t *testing.T) {
	e := newTestEditor()
	row := &editorRow{idx: 0, chars: []byte("^A")}
	row.Update(e)

	if string(row.render) != "^A" {
		t.Fatalf("render = %q, want %q", row.render, "^A")
	}
	for i, c := range row.ctrl {
		if c {
			t.Errorf("ctrl[%d] = true for a literal caret byte, want false", i)
		}
	}
}

func TestInsertNewlineSplitsRow(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("hello world"))
	e.cy, e.cx = 0, 5

	e.InsertNewline()

	if e.totalRows != 2 {
		t.Fatalf("totalRows = %d, want 2", e.totalRows)
	}
	if string(e.row[0].chars) != "hello" {
		t.Errorf("row[0] = %q, want %q", e.row[0].chars, "hello")
	}
	if string(e.row[1].chars) != " world" {
		t.Errorf("row[1] = %q, want %q", e.row[1].chars, " world")
	}
	if e.cy != 1 || e.cx != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", e.cy, e.cx)
	}
}

func TestDeleteCharJoinsRows(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("hello"))
	e.InsertRow(1, []byte("world"))
	e.cy, e.cx = 1, 0

	e.DeleteChar()

	if e.totalRows != 1 {
		t.Fatalf("totalRows = %d, want 1", e.totalRows)
	}
	if string(e.row[0].chars) != "helloworld" {
		t.Errorf("row[0] = %q, want %q", e.row[0].chars, "helloworld")
	}
	if e.cy != 0 || e.cx != 5 {
		t.Errorf("cursor = (%d,%d), want (0,5)", e.cy, e.cx)
	}
}

func TestDeleteCharAtBufferStartIsNoop(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("hello"))
	e.cy, e.cx = 0, 0

	e.DeleteChar()

	if e.totalRows != 1 || string(e.row[0].chars) != "hello" {
		t.Errorf("buffer mutated by no-op delete: %+v", e.row)
	}
}

func TestInsertCharOnVirtualBlankLineCreatesRow(t *testing.T) {
	e := newTestEditor()
	e.cy, e.cx = 0, 0

	e.InsertChar('x')

	if e.totalRows != 1 {
		t.Fatalf("totalRows = %d, want 1", e.totalRows)
	}
	if string(e.row[0].chars) != "x" {
		t.Errorf("row[0] = %q, want %q", e.row[0].chars, "x")
	}
}

func TestFindHighlightsFirstMatch(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("the quick brown fox"))
	e.InsertRow(1, []byte("jumps over the lazy dog"))

	fs := newFindSession()
	cb := fs.callback(e)
	cb([]byte("lazy"), 'x')

	if e.cy != 1 {
		t.Fatalf("cy = %d, want 1", e.cy)
	}
	match := e.row[1].rxToCx(15) // offset of "lazy" in row 1's render
	if e.cx != match {
		t.Errorf("cx = %d, want %d", e.cx, match)
	}
	foundMatch := false
	for _, h := range e.row[1].hl {
		if h == HL_MATCH {
			foundMatch = true
			break
		}
	}
	if !foundMatch {
		t.Errorf("expected at least one HL_MATCH byte in row 1's hl")
	}
}

func TestSelectSyntaxHighlightMatchesGoFiles(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("func main() {}"))
	e.InsertRow(1, []byte("return"))
	e.filename = "main.go"

	e.SelectSyntaxHighlight()

	if e.syntax == nil || e.syntax.filetype != "go" {
		t.Fatalf("syntax = %+v, want filetype go", e.syntax)
	}
	// "func" is in the second keyword group (alongside "interface",
	// "string", "int", ...), so it classifies as HL_KEYWORD2.
	if e.row[0].hl[0] != HL_KEYWORD2 {
		t.Errorf("hl[0] = %d, want HL_KEYWORD2 for %q", e.row[0].hl[0], "func")
	}
	// "return" is in the first keyword group, so it classifies as HL_KEYWORD1.
	if e.row[1].hl[0] != HL_KEYWORD1 {
		t.Errorf("row[1].hl[0] = %d, want HL_KEYWORD1 for %q", e.row[1].hl[0], "return")
	}
}

func TestRowsToStringEndsEachRowWithNewline(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("line one"))
	e.InsertRow(1, []byte("line two"))

	got := string(e.RowsToString())
	want := "line one\nline two\n"
	if got != want {
		t.Errorf("RowsToString() = %q, want %q", got, want)
	}
}

func TestQuitGuardRequiresConfirmation(t *testing.T) {
	e := newTestEditor()
	e.dirty = 1
	left := e.quitTimesLeft

	if !(e.dirty > 0 && e.quitTimesLeft > 0) {
		t.Fatal("expected quit guard to be armed")
	}
	e.quitTimesLeft--
	if e.quitTimesLeft != left-1 {
		t.Errorf("quitTimesLeft = %d, want %d", e.quitTimesLeft, left-1)
	}
}
