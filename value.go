package bibtexvcs

import "strings"

// Value is the parsed contents of a field. The concrete types are Text,
// MacroReference, Sequence and NameList.
type Value interface {
	// String renders the value as plain text without resolving macro
	// references; see Document.Textify for resolution.
	String() string
	value()
}

// Text is a plain string value: a quoted string, a brace group whose parts
// all reduced to text, or a numeric literal.
type Text string

func (t Text) String() string { return string(t) }
func (Text) value()           {}

// MacroReference is a reference to a string macro by its (lowercased) name.
// Two references are equal iff their names are equal; whether the macro is
// actually defined is not the parser's concern.
type MacroReference struct {
	Name string
}

func (m MacroReference) String() string { return m.Name }
func (MacroReference) value()           {}

// Sequence is a concatenation of values that could not be collapsed into a
// single Text because at least one part is not plain text.
type Sequence []Value

func (s Sequence) String() string {
	var b strings.Builder
	for _, v := range s {
		b.WriteString(v.String())
	}
	return b.String()
}

func (Sequence) value() {}

// NameList is the parsed value of an author or editor field.
type NameList []Name

func (l NameList) String() string {
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = n.String()
	}
	return strings.Join(parts, " and ")
}

func (NameList) value() {}

// flatten joins the parts of a brace group or hash concatenation, depth first
// and left to right: if every part reduces to plain text the whole group
// collapses into a single Text with the parts concatenated directly, otherwise
// the parts are kept with their original types.
func flatten(parts []Value) Value {
	allText := true
	for _, p := range parts {
		if _, ok := p.(Text); !ok {
			allText = false
			break
		}
	}
	if allText {
		if len(parts) == 1 {
			return parts[0]
		}
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(string(p.(Text)))
		}
		return Text(b.String())
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return Sequence(parts)
}
