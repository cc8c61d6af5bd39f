package editor

import (
	"bytes"
	"strings"
)

// hldb is the built-in syntax database (§6): one core entry for C-family
// files (matching the base spec exactly) and one enrichment entry for
// Go, both driving the extended comment/keyword highlighting on top of
// the core string/number rules.
var hldb = []editorSyntax{
	{
		filetype:  "c",
		filematch: []string{".c", ".h", ".cpp"},
		keywords: [][]string{
			{"switch", "if", "while", "for", "break", "continue", "return", "else",
				"struct", "union", "typedef", "static", "enum", "class", "case"},
			{"int", "long", "double", "float", "char", "unsigned", "signed", "void"},
		},
		singleComment: "//",
		blockCommentS: "/*",
		blockCommentE: "*/",
		flags:         HL_HIGHLIGHT_NUMBERS | HL_HIGHLIGHT_STRINGS,
	},
	{
		filetype:  "go",
		filematch: []string{".go", "go.mod", "go.sum"},
		keywords: [][]string{
			{"break", "case", "chan", "const", "continue", "default", "defer", "else",
				"fallthrough", "for", "go", "goto", "if", "import", "map", "package",
				"range", "return", "select", "struct", "switch", "type", "var"},
			{"interface", "func", "string", "int", "bool", "byte", "rune", "error"},
		},
		singleComment: "//",
		blockCommentS: "/*",
		blockCommentE: "*/",
		flags:         HL_HIGHLIGHT_NUMBERS | HL_HIGHLIGHT_STRINGS,
	},
}

// isSeparator reports whether c is whitespace, NUL, or one of the
// punctuation bytes the highlighter treats as a word boundary (§4.D).
func isSeparator(c byte) bool {
	if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' || c == 0 {
		return true
	}
	return bytes.IndexByte([]byte(",.()+-/*=~%<>[];"), c) >= 0
}

// UpdateSyntax recomputes row.hl from row.render. It implements the
// core string/number rules unchanged from the base spec, the
// control-byte caret classification, and — only when e.syntax supplies
// the relevant fields — the extended line/block comment and keyword
// rules. A row ending inside an unterminated block comment forces the
// next row to re-highlight, so edits correctly ripple forward.
func (row *editorRow) UpdateSyntax(e *Editor) {
	row.hl = make([]byte, len(row.render))
	if e.syntax == nil {
		for i, isCtrl := range row.ctrl {
			if isCtrl {
				row.hl[i] = HL_CONTROL
			}
		}
		return
	}

	s := e.syntax
	scs, mcs, mce := []byte(s.singleComment), []byte(s.blockCommentS), []byte(s.blockCommentE)

	prevSep := true
	var inString byte
	inComment := row.idx > 0 && row.idx-1 < e.totalRows && e.row[row.idx-1].hlOpenComment

	render := row.render
	i := 0
	for i < len(render) {
		c := render[i]
		var prevHl byte = HL_NORMAL
		if i > 0 {
			prevHl = row.hl[i-1]
		}

		// Control-byte caret pairs always win: they are not part of any
		// string/comment/keyword, they're a rendering artifact of §3.
		if i < len(row.ctrl) && row.ctrl[i] {
			row.hl[i] = HL_CONTROL
			if i+1 < len(render) {
				row.hl[i+1] = HL_CONTROL
			}
			i += 2
			prevSep = true
			continue
		}

		if len(scs) > 0 && inString == 0 && !inComment && bytes.HasPrefix(render[i:], scs) {
			for j := i; j < len(render); j++ {
				row.hl[j] = HL_COMMENT
			}
			break
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				row.hl[i] = HL_MLCOMMENT
				if bytes.HasPrefix(render[i:], mce) {
					for j := 0; j < len(mce) && i+j < len(render); j++ {
						row.hl[i+j] = HL_MLCOMMENT
					}
					inComment = false
					i += len(mce)
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(render[i:], mcs) {
				inComment = true
				for j := 0; j < len(mcs) && i+j < len(render); j++ {
					row.hl[i+j] = HL_MLCOMMENT
				}
				i += len(mcs)
				continue
			}
		}

		if s.flags&HL_HIGHLIGHT_STRINGS != 0 {
			if inString != 0 {
				row.hl[i] = HL_STRING
				if c == '\\' && i+1 < len(render) {
					row.hl[i+1] = HL_STRING
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				row.hl[i] = HL_STRING
				i++
				continue
			}
		}

		if s.flags&HL_HIGHLIGHT_NUMBERS != 0 {
			if (isDigit(c) && (prevSep || prevHl == HL_NUMBER)) || (c == '.' && prevHl == HL_NUMBER) {
				row.hl[i] = HL_NUMBER
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if kw, group := matchKeyword(render[i:], s.keywords); kw != "" {
				for k := 0; k < len(kw); k++ {
					row.hl[i+k] = byte(HL_KEYWORD1 + group)
				}
				i += len(kw)
				prevSep = false
				continue
			}
		}
		prevSep = isSeparator(c)
		i++
	}

	changed := row.hlOpenComment != inComment
	row.hlOpenComment = inComment
	if changed && row.idx+1 < e.totalRows {
		e.row[row.idx+1].UpdateSyntax(e)
	}
}

// matchKeyword returns the longest keyword from groups that is a
// word-bounded prefix of s (the match must be followed by a separator
// or end of input), along with its group index.
func matchKeyword(s []byte, groups [][]string) (string, int) {
	for g, words := range groups {
		for _, w := range words {
			if len(w) > len(s) || !bytes.HasPrefix(s, []byte(w)) {
				continue
			}
			if len(s) == len(w) || isSeparator(s[len(w)]) {
				return w, g
			}
		}
	}
	return "", 0
}

// syntaxToGraphics maps a highlight class to its SGR color code and an
// optional style code (reverse video for MATCH/CONTROL), per §4.F.
func syntaxToGraphics(hl byte) (color, style int) {
	switch hl {
	case HL_COMMENT, HL_MLCOMMENT:
		return 36, 0
	case HL_KEYWORD1:
		return 33, 0
	case HL_KEYWORD2:
		return 32, 0
	case HL_STRING:
		return 35, 0
	case HL_NUMBER:
		return 31, 0
	case HL_MATCH:
		return 34, 7
	case HL_CONTROL:
		return 31, 7
	default:
		return 39, 0
	}
}

// SelectSyntaxHighlight picks the hldb entry whose filematch patterns
// match e.filename (an extension pattern starting with '.', or a
// substring pattern otherwise), or clears e.syntax if none match, then
// re-highlights every row against the new syntax.
func (e *Editor) SelectSyntaxHighlight() {
	e.syntax = nil
	defer func() {
		for j := range e.row {
			e.row[j].Update(e)
		}
	}()
	if e.filename == "" {
		return
	}

	ext := ""
	if i := strings.LastIndex(e.filename, "."); i != -1 {
		ext = e.filename[i:]
	}

	for i := range hldb {
		s := &hldb[i]
		for _, pattern := range s.filematch {
			isExt := pattern[0] == '.'
			if (isExt && ext != "" && ext == pattern) || (!isExt && strings.Contains(e.filename, pattern)) {
				e.syntax = s
				return
			}
		}
	}
}
