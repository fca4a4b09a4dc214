package lexer

// keywords maps every reserved Korean (or Korean-derived) lexeme to its Kind. Populated from
// the control-flow and boolean-literal keyword list; builtin type names (논리/글자/수/실수) are
// deliberately absent here — the parser treats them as ordinary identifiers looked up against
// its builtin type table (spec §4.5), not as lexer-level keywords.
var keywords = map[string]Kind{
	"ㅎㅇ":  HI,
	"ㄱㄱ":  GO,
	"ㅇㅈ?": IJ,
	"ㄴㄴ?": NO,
	"ㄴㄴ":  NOPE,
	"ㅈㅈ":  GG,
	"ㅅㄱ":  SG,
	"ㅌㅌ":  TT,
	"참":   TRUE,
	"거짓":  FALSE,
}

// lookupKeyword returns the Kind for word if it names a keyword, or (UNDEFINED, false) if word
// is an ordinary identifier.
func lookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// isASCIIAlpha reports whether r is an ASCII letter.
func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit reports whether r is an ASCII decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isKoreanLead reports whether r is a Hangul code point that can begin an identifier. This
// covers Hangul Compatibility Jamo and Hangul Syllables, as the original Zul-lang Utility.cpp
// iskor did, extended to also admit Hangul Jamo Extended-A — the spec resolves the open
// question of whether that block counts as "Korean" in the affirmative.
func isKoreanLead(r rune) bool {
	switch {
	case r >= 0x3131 && r <= 0x318E: // Hangul Compatibility Jamo
		return true
	case r >= 0xA960 && r <= 0xA97F: // Hangul Jamo Extended-A
		return true
	case r >= 0xAC00 && r <= 0xD7FF: // Hangul Syllables + Hangul Jamo Extended-B
		return true
	default:
		return false
	}
}

// isIdentLead reports whether r can start an identifier: an ASCII letter, underscore, or
// Korean lead rune.
func isIdentLead(r rune) bool {
	return isASCIIAlpha(r) || r == '_' || isKoreanLead(r)
}

// isIdentCont reports whether r can continue an identifier once started: anything isIdentLead
// accepts, plus digits and '?' — the latter needed so "ㅇㅈ?" and "ㄴㄴ?" scan as single words
// before keyword lookup runs.
func isIdentCont(r rune) bool {
	return isIdentLead(r) || isDigit(r) || r == '?'
}
