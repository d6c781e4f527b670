package bibtexvcs

import "fmt"

// Position is a location in the parsed source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// FormatError reports a malformed database: either source text the grammar
// cannot consume, or a field whose contents do not have the structure an
// accessor expects. In the latter case the position is zero.
type FormatError struct {
	Pos Position
	Msg string
}

func (e *FormatError) Error() string {
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Message returns the error message without positional information.
func (e *FormatError) Message() string { return e.Msg }

// Position returns the source position the error refers to.
func (e *FormatError) Position() Position { return e.Pos }

func formatErrorf(pos Position, format string, args ...any) error {
	return &FormatError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
