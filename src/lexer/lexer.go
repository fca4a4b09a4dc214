package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/zihasoo/Zul-lang/src/diag"
)

// eof is the sentinel rune returned by next() once the input is exhausted. It is never a valid
// UTF-8 code point, so it cannot collide with real source text.
const eof = rune(-1)

// stateFunc is one state in the scanner's state machine. It consumes zero or more runes,
// optionally queues tokens via emit/emitSynthetic, and returns the state to resume in. A nil
// result means the input is exhausted.
type stateFunc func(*Lexer) stateFunc

// Lexer scans Zul source text into Tokens. It runs synchronously: a single goroutine drives it,
// matching Zul's strictly single-threaded compilation model (spec §5).
type Lexer struct {
	diag  *diag.Engine
	input string

	pos   int // byte offset of the scan cursor.
	start int // byte offset where the token/lexeme under construction began.
	width int // byte width of the rune most recently returned by next(), for backup().

	row, col           int // 1-indexed code-point position of the scan cursor.
	startRow, startCol int // position where the current lexeme began.
	lineStart          int // byte offset of the current row's first byte.

	state   stateFunc
	pending []Token
}

// New returns a Lexer over input. Diagnostics (malformed indentation, stray characters,
// unterminated literals) are logged to d as they're discovered; d may be nil in tests that only
// care about the token stream.
func New(input string, d *diag.Engine) *Lexer {
	return &Lexer{
		diag:     d,
		input:    input,
		row:      1,
		col:      1,
		startRow: 1,
		startCol: 1,
		state:    lexLineStart,
	}
}

// Next returns the next Token in the stream. Once the input is exhausted, Next returns an
// unending stream of EOF tokens, so callers never need to special-case "one past the end".
func (l *Lexer) Next() Token {
	for len(l.pending) == 0 {
		if l.state == nil {
			l.pending = append(l.pending, Token{Kind: EOF, Capture: Capture{Row: l.row, Col: l.col}})
			break
		}
		l.state = l.state(l)
	}
	t := l.pending[0]
	l.pending = l.pending[1:]
	return t
}

// ScanQuoted consumes source text up to (and including) the next occurrence of quote on the
// current line, decoding the sole supported escape sequence \n. It reports terminated = false if
// the line or input ends before quote is found. Call immediately after Next() has returned a
// DQUOTE or SQUOTE token: string and character literals are assembled by raw substring
// extraction rather than lexed as their own token kind.
func (l *Lexer) ScanQuoted(quote rune) (value string, terminated bool) {
	defer l.ignore()
	sb := strings.Builder{}
	for {
		r := l.next()
		switch r {
		case eof, '\n':
			l.backup()
			return sb.String(), false
		case quote:
			return sb.String(), true
		case '\\':
			esc := l.next()
			if esc == 'n' {
				sb.WriteByte('\n')
				continue
			}
			sb.WriteRune(r)
			sb.WriteRune(esc)
		default:
			sb.WriteRune(r)
		}
	}
}

// ----------------------------
// ----- scan primitives ------
// ----------------------------

// next decodes and consumes the rune at pos, or returns eof.
func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	l.col++
	return r
}

// backup undoes the single most recent next() call. It is a no-op if called twice in a row.
func (l *Lexer) backup() {
	if l.width == 0 {
		return
	}
	l.pos -= l.width
	l.col--
	l.width = 0
}

// peek returns the rune at pos without consuming it.
func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// peekIsLineComment reports whether the two bytes at pos start a "//" line comment, without
// consuming anything. Byte-indexed rather than rune-indexed is safe here: '/' is single-byte
// ASCII and can't appear as a continuation byte of a multi-byte rune.
func (l *Lexer) peekIsLineComment() bool {
	return l.pos+1 < len(l.input) && l.input[l.pos] == '/' && l.input[l.pos+1] == '/'
}

// consumeToEOL advances past every rune up to, but not including, the row's terminating '\n' (or
// input end).
func (l *Lexer) consumeToEOL() {
	for {
		r := l.next()
		if r == eof {
			return
		}
		if r == '\n' {
			l.backup()
			return
		}
	}
}

// ignore discards the lexeme accumulated since the last emit/ignore without producing a token.
func (l *Lexer) ignore() {
	l.start = l.pos
	l.startRow = l.row
	l.startCol = l.col
}

// emit queues a token spanning the lexeme accumulated since the last emit/ignore.
func (l *Lexer) emit(kind Kind) {
	text := l.input[l.start:l.pos]
	l.pending = append(l.pending, Token{
		Kind: kind,
		Capture: Capture{
			Text: text,
			Row:  l.startRow,
			Col:  l.startCol,
			Len:  utf8.RuneCountInString(text),
		},
	})
	l.start = l.pos
	l.startRow = l.row
	l.startCol = l.col
}

// emitSynthetic queues a zero-width token (used for INDENT) at the lexeme start position,
// without consuming any input of its own.
func (l *Lexer) emitSynthetic(kind Kind) {
	l.pending = append(l.pending, Token{Kind: kind, Capture: Capture{Row: l.startRow, Col: l.startCol}})
}

// errorf logs a diagnostic spanning the lexeme accumulated since the last emit/ignore, then
// discards it the same way ignore does, so scanning can resume cleanly after a bad token.
func (l *Lexer) errorf(format string, args ...interface{}) {
	if l.diag != nil {
		width := utf8.RuneCountInString(l.input[l.start:l.pos])
		if width < 1 {
			width = 1
		}
		l.diag.Logf(diag.Loc{Row: l.startRow, Col: l.startCol}, width, format, args...)
	}
	l.start = l.pos
	l.startRow = l.row
	l.startCol = l.col
}

// newline performs end-of-row bookkeeping once a '\n' has just been consumed: it registers the
// finished row's text with the diagnostic engine and resets row/col tracking.
func (l *Lexer) newline() {
	if l.diag != nil {
		l.diag.RegisterLine(l.row, l.input[l.lineStart:l.pos-1])
	}
	l.lineStart = l.pos
	l.row++
	l.col = 1
	l.startRow = l.row
	l.startCol = l.col
}

// registerCurrentLine records the final, newline-less row of a file that doesn't end in '\n'.
func (l *Lexer) registerCurrentLine() {
	if l.diag != nil && l.lineStart < len(l.input) {
		l.diag.RegisterLine(l.row, l.input[l.lineStart:])
	}
}
