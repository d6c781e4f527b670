package bibtexvcs

import (
	"errors"
	"io"
	"os"
	"strings"
)

// DuplicatePolicy selects what happens when a document defines the same cite
// key twice.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last entry, at the position of the first.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateError fails the parse on a repeated cite key.
	DuplicateError
	// DuplicateKeepFirst keeps the first entry and drops later ones.
	DuplicateKeepFirst
)

// DefaultMaxDepth is the brace nesting limit used when Options.MaxDepth is 0.
const DefaultMaxDepth = 200

// Options control parse behavior.
type Options struct {
	// Lenient stops parsing at the first position where no top-level
	// construct matches, returning everything parsed so far, instead of
	// failing on trailing unparseable content.
	Lenient bool
	// Duplicates selects the handling of repeated cite keys.
	Duplicates DuplicatePolicy
	// MaxDepth bounds brace nesting; 0 selects DefaultMaxDepth.
	MaxDepth int
}

// Parse reads a complete BibTeX database from r. If r is nil, the file named
// by fileName is read instead. The returned document is a fresh, independent
// value; parsing has no shared state, so independent calls may run
// concurrently.
func Parse(r io.Reader, fileName string, opts Options) (*Document, error) {
	if r == nil {
		if fileName == "" {
			return nil, errors.New("nothing to parse")
		}
		f, err := os.Open(fileName)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := ParseString(string(src), opts)
	if doc != nil {
		doc.Filename = fileName
	}
	return doc, err
}

// ParseString parses a complete BibTeX database from src.
func ParseString(src string, opts Options) (*Document, error) {
	p := &parser{scanner: newScanner(src), opts: opts, maxDepth: opts.MaxDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	return p.parse()
}

type parser struct {
	scanner
	opts     Options
	maxDepth int
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return formatErrorf(pos, format, args...)
}

func (p *parser) parse() (*Document, error) {
	doc := NewDocument()

	// Everything before the first '@' is an implicit comment, captured
	// verbatim from the first non-whitespace character.
	p.skipSpace()
	start := p.pos()
	p.scanWhile(func(r rune) bool { return r != '@' })
	text := p.src[start.Offset:p.off]
	if p.eof() {
		if text != "" && !p.opts.Lenient {
			return nil, p.errorf(start, "expected '@', found only free text")
		}
		return doc, nil
	}
	if text != "" {
		doc.Comments = append(doc.Comments, &Comment{Text: text, Implicit: true})
	}

	for {
		p.skipSpace()
		if p.eof() {
			return doc, nil
		}
		if p.peek() != '@' {
			if p.opts.Lenient {
				return doc, nil
			}
			return nil, p.errorf(p.pos(), "expected '@', found %q", p.peek())
		}
		if err := p.parseDefinition(doc); err != nil {
			if p.opts.Lenient {
				return doc, nil
			}
			return nil, err
		}
	}
}

// parseDefinition parses one '@'-introduced construct. The reserved keywords
// comment, preamble and string are dispatched before generic entries because
// entry type names are otherwise unconstrained.
func (p *parser) parseDefinition(doc *Document) error {
	atPos := p.pos()
	p.next() // '@'
	p.skipSpace()
	namePos := p.pos()
	name := p.scanName()
	if name == "" {
		return p.errorf(namePos, "expected construct name after '@'")
	}
	switch typ := strings.ToLower(name); typ {
	case "comment":
		return p.parseComment(doc)
	case "preamble":
		return p.parsePreamble(doc)
	case "string":
		return p.parseMacro(doc)
	default:
		if isDigit(rune(name[0])) {
			return p.errorf(namePos, "entry type %q may not start with a digit", name)
		}
		return p.parseEntry(doc, typ, atPos)
	}
}

// openBracket consumes '{' or '(' and returns the matching closer.
func (p *parser) openBracket() (rune, error) {
	p.skipSpace()
	switch p.peek() {
	case '{':
		p.next()
		return '}', nil
	case '(':
		p.next()
		return ')', nil
	}
	return 0, p.errorf(p.pos(), "expected '{' or '(', found %q", p.peek())
}

func (p *parser) expect(r rune) error {
	p.skipSpace()
	if p.peek() != r {
		return p.errorf(p.pos(), "expected %q, found %q", r, p.peek())
	}
	p.next()
	return nil
}

func (p *parser) parseComment(doc *Document) error {
	closer, err := p.openBracket()
	if err != nil {
		return err
	}
	text := p.scanWhile(func(r rune) bool {
		return r != '{' && r != '}' && r != closer
	})
	if err := p.expect(closer); err != nil {
		return err
	}
	doc.Comments = append(doc.Comments, &Comment{Text: text})
	return nil
}

func (p *parser) parsePreamble(doc *Document) error {
	closer, err := p.openBracket()
	if err != nil {
		return err
	}
	v, err := p.parseFieldValue()
	if err != nil {
		return err
	}
	if err := p.expect(closer); err != nil {
		return err
	}
	doc.Preamble = &Preamble{Value: v} // last one wins
	return nil
}

func (p *parser) parseMacro(doc *Document) error {
	closer, err := p.openBracket()
	if err != nil {
		return err
	}
	p.skipSpace()
	keyPos := p.pos()
	key := p.scanName()
	if key == "" {
		return p.errorf(keyPos, "expected macro key")
	}
	if isDigit(rune(key[0])) {
		return p.errorf(keyPos, "macro key %q may not start with a digit", key)
	}
	if err := p.expect('='); err != nil {
		return err
	}
	v, err := p.parseFieldValue()
	if err != nil {
		return err
	}
	if err := p.expect(closer); err != nil {
		return err
	}
	doc.DefineMacro(&MacroDefinition{Key: strings.ToLower(key), Value: v})
	return nil
}

func (p *parser) parseEntry(doc *Document, typ string, atPos Position) error {
	closer, err := p.openBracket()
	if err != nil {
		return err
	}
	p.skipSpace()
	keyPos := p.pos()
	key := p.scanName() // cite keys may start with a digit
	if key == "" {
		return p.errorf(keyPos, "expected cite key")
	}
	if err := p.expect(','); err != nil {
		return err
	}
	e := &Entry{Type: typ, Key: key, Pos: atPos}
	for {
		p.skipSpace()
		if p.peek() == closer {
			break
		}
		fieldPos := p.pos()
		fname := p.scanName()
		if fname == "" {
			return p.errorf(fieldPos, "expected field name")
		}
		if isDigit(rune(fname[0])) {
			return p.errorf(fieldPos, "field name %q may not start with a digit", fname)
		}
		fname = strings.ToLower(fname)
		if err := p.expect('='); err != nil {
			return err
		}
		var v Value
		if fname == "author" || fname == "editor" {
			v, err = p.parseNameField()
		} else {
			v, err = p.parseFieldValue()
		}
		if err != nil {
			return err
		}
		e.SetField(fname, v)
		p.skipSpace()
		if p.peek() == ',' {
			p.next() // a trailing comma before the closing bracket is fine
			continue
		}
		break
	}
	if err := p.expect(closer); err != nil {
		return err
	}
	e.Source = p.src[atPos.Offset:p.off]
	return doc.addEntry(e, p.opts.Duplicates)
}

// parseNameField parses an author or editor field: a braced, "and"-separated
// name list. When the value is not a name list (not braced, or the contents
// do not form valid names), it falls back to a generic field value.
func (p *parser) parseNameField() (Value, error) {
	p.skipSpace()
	if p.peek() == '{' {
		save := p.scanner
		if inner, err := scanBalancedRaw(&p.scanner, p.maxDepth); err == nil {
			if names, err := parseNames(inner); err == nil {
				return NameList(names), nil
			}
		}
		p.scanner = save
	}
	return p.parseFieldValue()
}

// parseFieldValue parses a value followed by any number of '#'-concatenated
// values and flattens the result.
func (p *parser) parseFieldValue() (Value, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	parts := []Value{v}
	for {
		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		parts = append(parts, v)
	}
	return flatten(parts), nil
}

// parseValue parses a single value: a number, a macro reference, a quoted
// string or a brace group. Numbers come first since macro names may not start
// with a digit.
func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	pos := p.pos()
	switch r := p.peek(); {
	case isDigit(r):
		return Text(p.scanWhile(isDigit)), nil
	case r == '"':
		return p.parseQuoted()
	case r == '{':
		return p.parseGroup(1)
	case isNameRune(r):
		return MacroReference{Name: strings.ToLower(p.scanName())}, nil
	default:
		return nil, p.errorf(pos, "expected a field value, found %q", r)
	}
}

// parseGroup parses a balanced brace group into its flattened value. Content
// runs keep their whitespace verbatim.
func (p *parser) parseGroup(depth int) (Value, error) {
	pos := p.pos()
	if depth > p.maxDepth {
		return nil, p.errorf(pos, "brace group nested deeper than %d levels", p.maxDepth)
	}
	p.next() // '{'
	var parts []Value
	for {
		switch p.peek() {
		case eof:
			return nil, p.errorf(pos, "unterminated brace group")
		case '}':
			p.next()
			return flatten(parts), nil
		case '{':
			inner, err := p.parseGroup(depth + 1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, inner)
		default:
			run := p.scanWhile(func(r rune) bool { return r != '{' && r != '}' })
			parts = append(parts, Text(run))
		}
	}
}

// parseQuoted parses a double-quoted string. Quotes do not nest, but brace
// groups inside the string may.
func (p *parser) parseQuoted() (Value, error) {
	pos := p.pos()
	p.next() // '"'
	var parts []Value
	for {
		switch p.peek() {
		case eof:
			return nil, p.errorf(pos, "unterminated quoted string")
		case '"':
			p.next()
			return flatten(parts), nil
		case '{':
			inner, err := p.parseGroup(1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, inner)
		case '}':
			return nil, p.errorf(p.pos(), "unbalanced '}' in quoted string")
		default:
			run := p.scanWhile(func(r rune) bool { return r != '"' && r != '{' && r != '}' })
			parts = append(parts, Text(run))
		}
	}
}
