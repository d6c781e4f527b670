package bibtexvcs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof rune = -1

// scanner tracks a read position in an in-memory source string. It is copied
// by value to backtrack, so it must stay free of pointers and shared state.
type scanner struct {
	src  string
	off  int // byte offset of the next rune
	line int
	col  int
}

func newScanner(src string) scanner {
	return scanner{src: src, line: 1, col: 1}
}

func (s *scanner) eof() bool { return s.off >= len(s.src) }

func (s *scanner) pos() Position {
	return Position{Offset: s.off, Line: s.line, Column: s.col}
}

// peek returns the rune at the current position without advancing,
// or eof at the end of the source.
func (s *scanner) peek() rune {
	if s.off >= len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.off:])
	return r
}

func (s *scanner) next() rune {
	if s.off >= len(s.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += w
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) skipSpace() {
	for {
		r := s.peek()
		if r == eof || !unicode.IsSpace(r) {
			return
		}
		s.next()
	}
}

// scanWhile consumes the maximal run of runes satisfying pred and returns it.
func (s *scanner) scanWhile(pred func(rune) bool) string {
	start := s.off
	for {
		r := s.peek()
		if r == eof || !pred(r) {
			break
		}
		s.next()
	}
	return s.src[start:s.off]
}

// isNameRune reports whether r may appear in a bare name (entry types, cite
// keys, field names, macro keys). The excluded set is the one documented for
// btparse: whitespace and "#%'(),={}.
func isNameRune(r rune) bool {
	if r == eof || unicode.IsSpace(r) {
		return false
	}
	return !strings.ContainsRune(`"#%'(),={}`, r)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// scanName consumes a maximal run of name runes, which may be empty.
func (s *scanner) scanName() string {
	return s.scanWhile(isNameRune)
}

// scanBalancedRaw consumes a brace group, including arbitrarily nested inner
// groups, and returns its contents verbatim without the outer braces. The
// scanner must be positioned at '{'. maxDepth bounds the nesting depth.
func scanBalancedRaw(s *scanner, maxDepth int) (string, error) {
	pos := s.pos()
	s.next() // '{'
	start := s.off
	depth := 1
	for {
		switch s.peek() {
		case eof:
			return "", formatErrorf(pos, "unterminated brace group")
		case '{':
			depth++
			if depth > maxDepth {
				return "", formatErrorf(s.pos(), "brace group nested deeper than %d levels", maxDepth)
			}
		case '}':
			depth--
			if depth == 0 {
				inner := s.src[start:s.off]
				s.next()
				return inner, nil
			}
		}
		s.next()
	}
}
