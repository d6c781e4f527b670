package bibtexvcs

import (
	"fmt"
	"strings"
)

// Field is a single named field of an entry.
type Field struct {
	Name  string
	Value Value
}

// Entry is one bibliography entry. Type and field names are lowercased at
// parse time; the cite key keeps its original case. Source holds the raw
// span of the entry in the parsed input.
type Entry struct {
	Type   string
	Key    string
	Fields []Field
	Source string
	Pos    Position
}

// Field returns the value of the named field (case insensitive), or nil if
// the entry has no such field.
func (e *Entry) Field(name string) Value {
	name = strings.ToLower(name)
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// SetField sets the named field, replacing an existing value in place.
func (e *Entry) SetField(name string, v Value) {
	name = strings.ToLower(name)
	for i, f := range e.Fields {
		if f.Name == name {
			e.Fields[i].Value = v
			return
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: v})
}

// Text returns the named field rendered as plain text without macro
// resolution, or "" if the field is absent.
func (e *Entry) Text(name string) string {
	v := e.Field(name)
	if v == nil {
		return ""
	}
	return v.String()
}

// Filename extracts the path of the linked document from the "file" field,
// which uses JabRef's ":path:filetype" format. Escaped semicolons in the path
// are unescaped. It returns "" without error when the field is absent or
// empty, and a FormatError when the field does not have the expected format.
func (e *Entry) Filename() (string, error) {
	v := e.Field("file")
	if v == nil {
		return "", nil
	}
	s := v.String()
	if s == "" {
		return "", nil
	}
	rest, ok := strings.CutPrefix(s, ":")
	i := strings.LastIndex(rest, ":")
	if !ok || i < 0 {
		return "", &FormatError{Msg: fmt.Sprintf("wrong file URL format in entry %q: %s", e.Key, s)}
	}
	return strings.ReplaceAll(rest[:i], `\;`, ";"), nil
}

// DOIURL returns the resolver URL for the "doi" field, or "" if there is none.
func (e *Entry) DOIURL() string {
	if doi := e.Text("doi"); doi != "" {
		return "http://dx.doi.org/" + doi
	}
	return ""
}

// DateString returns the "date" field if present and otherwise combines
// "month" and "year". Macro references (e.g. the standard month macros) are
// resolved against d, which may be nil.
func (e *Entry) DateString(d *Document) string {
	if v := e.Field("date"); v != nil {
		return d.Textify(v)
	}
	var parts []string
	if m := e.Field("month"); m != nil {
		parts = append(parts, d.Textify(m))
	}
	if y := e.Field("year"); y != nil {
		parts = append(parts, d.Textify(y))
	}
	return strings.Join(parts, " ")
}

// LastNames renders a name-valued field as a comma-joined list of last names
// including nobility particles and suffixes. When the field holds more than
// maxNames names, only the first maxNames are rendered, followed by "et al.".
// A maxNames of 0 or less renders all names.
func (e *Entry) LastNames(field string, maxNames int) string {
	v := e.Field(field)
	if v == nil {
		return ""
	}
	names, ok := v.(NameList)
	if !ok {
		return v.String()
	}
	shown := names
	etAl := false
	if maxNames > 0 && len(names) > maxNames {
		shown = names[:maxNames]
		etAl = true
	}
	parts := make([]string, len(shown))
	for i, n := range shown {
		parts[i] = joinNonEmpty(" ", n.Nobility, n.Last, n.Suffix)
	}
	s := strings.Join(parts, ", ")
	if etAl {
		s += " et al."
	}
	return s
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s(%s) by %s", e.Type, e.Key, e.Text("author"))
}

// MacroDefinition is a string macro defined via @string{key=value}.
// The key is normalized to lower case.
type MacroDefinition struct {
	Key   string
	Value Value
}

// Comment is an explicit @comment{...} or, when Implicit is set, free text
// preceding the first '@' construct, captured verbatim.
type Comment struct {
	Text     string
	Implicit bool
}

// Preamble is the contents of an @preamble{...} construct.
type Preamble struct {
	Value Value
}

// Document is a parsed BibTeX database: entries in source order indexed by
// cite key, comments, macro definitions and an optional preamble.
type Document struct {
	Filename string
	Entries  []*Entry
	Comments []*Comment
	Macros   []*MacroDefinition
	Preamble *Preamble

	entryIndex map[string]*Entry
	macroIndex map[string]*MacroDefinition
}

// NewDocument returns an empty document ready for use.
func NewDocument() *Document {
	return &Document{
		entryIndex: make(map[string]*Entry),
		macroIndex: make(map[string]*MacroDefinition),
	}
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.Entries) }

// Keys returns the cite keys of all entries in source order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Entry returns the entry with the given cite key (case sensitive), or nil.
func (d *Document) Entry(key string) *Entry {
	if d == nil {
		return nil
	}
	return d.entryIndex[key]
}

// Macro returns the definition of the named macro (case insensitive), or nil.
func (d *Document) Macro(key string) *MacroDefinition {
	if d == nil {
		return nil
	}
	return d.macroIndex[strings.ToLower(key)]
}

// AddEntry adds e to the document, replacing any existing entry with the same
// cite key while keeping its position.
func (d *Document) AddEntry(e *Entry) {
	d.addEntry(e, DuplicateOverwrite)
}

func (d *Document) addEntry(e *Entry, policy DuplicatePolicy) error {
	if d.entryIndex == nil {
		d.entryIndex = make(map[string]*Entry)
	}
	if old := d.entryIndex[e.Key]; old != nil {
		switch policy {
		case DuplicateError:
			return formatErrorf(e.Pos, "duplicate cite key %q", e.Key)
		case DuplicateKeepFirst:
			return nil
		}
		for i, x := range d.Entries {
			if x == old {
				d.Entries[i] = e
				break
			}
		}
		d.entryIndex[e.Key] = e
		return nil
	}
	d.Entries = append(d.Entries, e)
	d.entryIndex[e.Key] = e
	return nil
}

// RemoveEntry removes the entry with the given cite key and reports whether
// it was present.
func (d *Document) RemoveEntry(key string) bool {
	e := d.Entry(key)
	if e == nil {
		return false
	}
	delete(d.entryIndex, key)
	for i, x := range d.Entries {
		if x == e {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			break
		}
	}
	return true
}

// DefineMacro adds a macro definition, replacing an earlier definition of the
// same (case insensitive) key while keeping its position.
func (d *Document) DefineMacro(m *MacroDefinition) {
	if d.macroIndex == nil {
		d.macroIndex = make(map[string]*MacroDefinition)
	}
	key := strings.ToLower(m.Key)
	if old := d.macroIndex[key]; old != nil {
		for i, x := range d.Macros {
			if x == old {
				d.Macros[i] = m
				break
			}
		}
	} else {
		d.Macros = append(d.Macros, m)
	}
	d.macroIndex[key] = m
}

// Textify renders a field value as plain text, resolving macro references
// against the document's macro definitions. Undefined macros render as their
// name; definition cycles are cut off. A nil document resolves nothing.
func (d *Document) Textify(v Value) string {
	return d.textify(v, nil)
}

func (d *Document) textify(v Value, seen map[string]bool) string {
	switch v := v.(type) {
	case nil:
		return ""
	case Text:
		return string(v)
	case MacroReference:
		if m := d.Macro(v.Name); m != nil && !seen[v.Name] {
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[v.Name] = true
			s := d.textify(m.Value, seen)
			delete(seen, v.Name)
			return s
		}
		return v.Name
	case Sequence:
		var b strings.Builder
		for _, p := range v {
			b.WriteString(d.textify(p, seen))
		}
		return b.String()
	default:
		return v.String()
	}
}
