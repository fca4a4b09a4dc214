// Package diag provides the diagnostic engine described by the Zul compiler: it buffers
// per-location errors, retains source lines referenced by buffered errors, and pretty-prints
// them with a caret and tilde run that stay aligned under UTF-8, East-Asian-wide source text.
//
// Grounded on vslc's util/perror.go for the "buffer errors, flush on demand" shape, but
// single-threaded (spec §5) and keyed by source position rather than goroutine-fed, and
// extended with the line-retention and caret-rendering vslc never needed.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Loc is a source position in code-point columns, not bytes. Row and Col are both 1-indexed.
type Loc struct {
	Row int
	Col int
}

// entry is one buffered diagnostic.
type entry struct {
	loc   Loc
	width int // lexeme width in code points, used to size the tilde run.
	msg   string
}

// Engine buffers diagnostics and the source lines they reference, and renders them sorted by
// position regardless of the order in which parser recovery discovered them.
type Engine struct {
	source    string
	entries   []entry
	lines     map[int]string
	errorFlag bool // Latched once set; never cleared.
}

// ---------------------
// ----- Constants -----
// ---------------------

// lineFlushThreshold bounds how many source lines are retained for diagnostic printing at once.
const lineFlushThreshold = 50

// ---------------------
// ----- functions -----
// ---------------------

// New returns a fresh Engine for the named source file.
func New(source string) *Engine {
	return &Engine{
		source: source,
		lines:  make(map[int]string, lineFlushThreshold),
	}
}

// SetSource changes the filename used in rendered diagnostics.
func (e *Engine) SetSource(source string) {
	e.source = source
}

// HasError reports whether any diagnostic has ever been logged.
func (e *Engine) HasError() bool {
	return e.errorFlag
}

// Log buffers a single diagnostic at loc, spanning width code points, with message msg.
func (e *Engine) Log(loc Loc, width int, msg string) {
	e.errorFlag = true
	e.entries = append(e.entries, entry{loc: loc, width: width, msg: msg})
}

// Logf is a convenience wrapper around Log that formats msg first.
func (e *Engine) Logf(loc Loc, width int, format string, args ...interface{}) {
	e.Log(loc, width, fmt.Sprintf(format, args...))
}

// LogParts buffers a diagnostic built by concatenating parts without per-segment allocation in
// the common (single-part) case.
func (e *Engine) LogParts(loc Loc, width int, parts ...string) {
	if len(parts) == 1 {
		e.Log(loc, width, parts[0])
		return
	}
	sb := strings.Builder{}
	for _, p := range parts {
		sb.WriteString(p)
	}
	e.Log(loc, width, sb.String())
}

// RegisterLine records the literal text of source line row, so it can be reproduced under a
// later diagnostic. Idempotent: once a row is registered, later calls for the same row are
// ignored, and the retained set may be trimmed to bound memory — a diagnostic referencing a
// trimmed line prints "line unavailable" instead of failing.
func (e *Engine) RegisterLine(row int, text string) {
	if _, ok := e.lines[row]; ok {
		return
	}
	if len(e.lines) >= lineFlushThreshold {
		e.trimLines()
	}
	e.lines[row] = text
}

// trimLines drops retained lines that are not referenced by any still-buffered diagnostic,
// approximating the reference implementation's periodic flush every ~50 lines.
func (e *Engine) trimLines() {
	keep := make(map[int]bool, len(e.entries))
	for _, en := range e.entries {
		keep[en.loc.Row] = true
	}
	for row := range e.lines {
		if !keep[row] {
			delete(e.lines, row)
		}
	}
}

// Flush drains the buffered diagnostics in ascending (row, col) order and writes their rendered
// form to w. Ordering is deterministic regardless of the order errors were logged in, since
// parser error recovery can jump around in source position.
func (e *Engine) Flush(w interface{ WriteString(string) (int, error) }) {
	sort.SliceStable(e.entries, func(i, j int) bool {
		a, b := e.entries[i].loc, e.entries[j].loc
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	for _, en := range e.entries {
		_, _ = w.WriteString(e.render(en))
	}
	e.entries = e.entries[:0]
}

// render formats one diagnostic as: "FILE LINE:COL: 에러: MESSAGE", the source line (or
// "line unavailable"), and a caret+tilde line aligned for East-Asian-wide code points.
func (e *Engine) render(en entry) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s %d:%d: 에러: %s\n", e.source, en.loc.Row, en.loc.Col, en.msg)

	line, ok := e.lines[en.loc.Row]
	if !ok {
		sb.WriteString("line unavailable\n")
		return sb.String()
	}
	sb.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(caretLine(line, en.loc.Col, en.width))
	sb.WriteByte('\n')
	return sb.String()
}

// caretLine renders a caret under column col (1-indexed, in code points) followed by a tilde
// run spanning width code points of line, padding wide runes so the markers stay under the
// glyphs they annotate on a CJK-aware monospace terminal.
func caretLine(line string, col, width int) string {
	runes := []rune(line)
	sb := strings.Builder{}
	for i1 := 0; i1 < col-1 && i1 < len(runes); i1++ {
		sb.WriteString(pad(runes[i1]))
	}

	if width < 1 {
		width = 1
	}
	sb.WriteByte('^')
	for i1 := col; i1 < col+width-1 && i1-1 < len(runes); i1++ {
		sb.WriteString(strings.Repeat("~", runeWidth(runes[i1-1])))
	}
	return sb.String()
}

// pad returns the padding used to skip over rune r when aligning a caret: an ideographic space
// for full-width runes (so the visual column lines up), an ordinary space otherwise.
func pad(r rune) string {
	if runeWidth(r) == 2 {
		return "　"
	}
	return " "
}

// runeWidth returns the terminal display width of r: 2 for East-Asian-wide code points
// (Hangul syllables/jamo among them), 1 otherwise.
func runeWidth(r rune) int {
	switch {
	case r >= 0x1100 && r <= 0x115F, // Hangul Jamo
		r >= 0x2E80 && r <= 0xA4CF, // CJK radicals through Yi
		r >= 0xAC00 && r <= 0xD7A3, // Hangul Syllables
		r >= 0xF900 && r <= 0xFAFF, // CJK compatibility ideographs
		r >= 0xFF00 && r <= 0xFF60, // fullwidth forms
		r >= 0xFFE0 && r <= 0xFFE6:
		return 2
	default:
		return 1
	}
}
