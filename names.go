package bibtexvcs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name is a structured author or editor name. Last is always present; the
// other parts are empty when absent.
type Name struct {
	First    string
	Nobility string // lowercase particles such as "van der"
	Last     string
	Suffix   string // e.g. "Jr."
}

func (n Name) String() string {
	s := joinNonEmpty(" ", n.First, n.Nobility, n.Last)
	if n.Suffix != "" {
		s += ", " + n.Suffix
	}
	return s
}

// ParseName parses a single author name, in comma style
// ("van der Zalm, E." or "Forney, Jr., David G.") or literal style
// ("Michael Helmling"). Comma style is tried first; a name without a comma
// is parsed literally, with the final part becoming the last name.
func ParseName(s string) (Name, error) {
	toks, err := tokenizeNames(s)
	if err != nil {
		return Name{}, err
	}
	for _, t := range toks {
		if t.kind == sepTok {
			return Name{}, &FormatError{Msg: "unexpected 'and' in single name: " + s}
		}
	}
	return parseNameTokens(toks)
}

// ParseNameList parses an "and"-separated list of names as it appears in an
// author or editor field. The surrounding braces of the field value may be
// included or omitted.
func ParseNameList(s string) ([]Name, error) {
	sc := newScanner(s)
	sc.skipSpace()
	if sc.peek() == '{' {
		inner, err := scanBalancedRaw(&sc, DefaultMaxDepth)
		if err == nil {
			sc.skipSpace()
			if sc.eof() {
				// the braces enclosed the whole list
				return parseNames(inner)
			}
		}
		// otherwise the group is just the first name part
	}
	return parseNames(s)
}

type nameTokenKind int

const (
	wordTok  nameTokenKind = iota // bare name part, optionally with trailing dot
	groupTok                      // brace group, kept as one indivisible part
	commaTok
	sepTok // the keyword "and" between names
)

type nameToken struct {
	kind nameTokenKind
	text string
}

func isNameWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '\''
}

// tokenizeNames splits the contents of a name field into words, brace groups,
// commas and "and" separators. "and" (case insensitive) separates names only
// when more content follows; brace groups hide their contents, so an "and"
// inside braces never separates.
func tokenizeNames(s string) ([]nameToken, error) {
	sc := newScanner(s)
	var toks []nameToken
	for {
		sc.skipSpace()
		r := sc.peek()
		switch {
		case r == eof:
			return toks, nil
		case r == ',':
			sc.next()
			toks = append(toks, nameToken{commaTok, ","})
		case r == '{':
			inner, err := scanBalancedRaw(&sc, DefaultMaxDepth)
			if err != nil {
				return nil, err
			}
			toks = append(toks, nameToken{groupTok, inner})
		case isNameWordRune(r):
			w := sc.scanWhile(isNameWordRune)
			if sc.peek() == '.' {
				sc.next()
				w += "."
			}
			if strings.EqualFold(w, "and") && !sc.eof() && sc.peek() != '}' {
				toks = append(toks, nameToken{sepTok, w})
			} else {
				toks = append(toks, nameToken{wordTok, w})
			}
		default:
			return nil, formatErrorf(sc.pos(), "unexpected character %q in name", r)
		}
	}
}

// parseNames splits the token stream on separators and parses each fragment.
func parseNames(s string) ([]Name, error) {
	toks, err := tokenizeNames(s)
	if err != nil {
		return nil, err
	}
	var names []Name
	var fragment []nameToken
	flush := func() error {
		n, err := parseNameTokens(fragment)
		if err != nil {
			return err
		}
		names = append(names, n)
		fragment = fragment[:0:0]
		return nil
	}
	for _, t := range toks {
		if t.kind == sepTok {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		fragment = append(fragment, t)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return names, nil
}

// parseNameTokens parses one name fragment. With at least one comma the name
// is comma style: [nobility] last(s) , [suffix ,] first(s). Without a comma
// it is literal style: the final part is the last name, everything before is
// the first name.
func parseNameTokens(toks []nameToken) (Name, error) {
	segs := [][]nameToken{nil}
	for _, t := range toks {
		switch t.kind {
		case commaTok:
			segs = append(segs, nil)
		default:
			if t.kind == wordTok && strings.EqualFold(t.text, "and") {
				return Name{}, &FormatError{Msg: "name part may not be the word \"and\""}
			}
			segs[len(segs)-1] = append(segs[len(segs)-1], t)
		}
	}
	var n Name
	switch len(segs) {
	case 1:
		parts := tokenTexts(segs[0])
		if len(parts) == 0 {
			return Name{}, &FormatError{Msg: "empty name"}
		}
		n.Last = parts[len(parts)-1]
		n.First = strings.Join(parts[:len(parts)-1], " ")
	case 2, 3:
		if len(segs) == 3 {
			if len(segs[1]) != 1 {
				return Name{}, &FormatError{Msg: "name suffix must be a single part"}
			}
			n.Suffix = segs[1][0].text
		}
		first := tokenTexts(segs[len(segs)-1])
		if len(first) == 0 {
			return Name{}, &FormatError{Msg: "missing first name after comma"}
		}
		lastSeg := segs[0]
		if len(lastSeg) == 0 {
			return Name{}, &FormatError{Msg: "missing last name before comma"}
		}
		// Leading lowercase words form the nobility particle, but only if at
		// least one part remains for the last name.
		nob := 0
		for nob < len(lastSeg) && isNobilityWord(lastSeg[nob]) {
			nob++
		}
		if nob == len(lastSeg) {
			nob = 0
		}
		if nob > 0 {
			n.Nobility = strings.Join(tokenTexts(lastSeg[:nob]), " ")
		}
		n.Last = strings.Join(tokenTexts(lastSeg[nob:]), " ")
		n.First = strings.Join(first, " ")
	default:
		return Name{}, &FormatError{Msg: "too many commas in name"}
	}
	return n, nil
}

func tokenTexts(toks []nameToken) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}

// isNobilityWord reports whether t is a bare word of at least two runes
// starting with a lowercase ASCII letter, like "van" or "der".
func isNobilityWord(t nameToken) bool {
	if t.kind != wordTok || utf8.RuneCountInString(t.text) < 2 {
		return false
	}
	return 'a' <= t.text[0] && t.text[0] <= 'z'
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
