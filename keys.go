package bibtexvcs

import (
	"slices"
	"strings"
)

// FindDuplicates indexes the entries of one or more documents by the
// concatenated, normalized text of the given fields, falling back to the cite
// key when no fields are given, and returns every index term shared by more
// than one entry.
func FindDuplicates(docs []*Document, fields []string) map[string][]*Entry {
	byIndex := make(map[string][]*Entry)
	for _, d := range docs {
		for _, e := range d.Entries {
			idx := e.Key
			if len(fields) > 0 {
				var sb strings.Builder
				for _, f := range fields {
					sb.WriteString(d.Textify(e.Field(f)))
				}
				idx = normalizeKey(sb.String())
			}
			byIndex[idx] = append(byIndex[idx], e)
		}
	}
	for idx, entries := range byIndex {
		if len(entries) < 2 {
			delete(byIndex, idx)
		}
	}
	return byIndex
}

// UniqueKeys reports whether no cite key occurs twice across the given
// documents.
func UniqueKeys(docs ...*Document) bool {
	return len(FindDuplicates(docs, nil)) == 0
}

// NewCiteKey derives a cite key from an entry: last name of the first author,
// year, first word of the title, first letter of the entry type, and pages or
// volume.
func NewCiteKey(e *Entry) string {
	var sb strings.Builder
	author := ""
	if names, ok := e.Field("author").(NameList); ok && len(names) > 0 {
		author = names[0].Last
	} else if s := e.Text("author"); s != "" {
		author, _, _ = strings.Cut(s, ",")
	}
	sb.WriteString(normalizeKey(author))
	sb.WriteString(e.Text("year"))
	word, _, _ := strings.Cut(e.Text("title"), " ")
	sb.WriteString(normalizeKey(word))
	if e.Type != "" {
		sb.WriteByte(e.Type[0])
	}
	sb.WriteString(e.Text("pages") + e.Text("volume"))
	return sb.String()
}

// UndefinedMacros returns the sorted names of all macros referenced in entry
// fields, macro definitions or the preamble that the document does not define.
func (d *Document) UndefinedMacros() []string {
	var undefined []string
	collect := func(v Value) {
		walkValue(v, func(ref MacroReference) {
			if d.Macro(ref.Name) == nil {
				undefined = append(undefined, ref.Name)
			}
		})
	}
	for _, e := range d.Entries {
		for _, f := range e.Fields {
			collect(f.Value)
		}
	}
	for _, m := range d.Macros {
		collect(m.Value)
	}
	if d.Preamble != nil {
		collect(d.Preamble.Value)
	}
	slices.Sort(undefined)
	return slices.Compact(undefined)
}

func walkValue(v Value, fn func(MacroReference)) {
	switch v := v.(type) {
	case MacroReference:
		fn(v)
	case Sequence:
		for _, p := range v {
			walkValue(p, fn)
		}
	}
}

// normalizeKey keeps only ASCII letters and digits, lowercased.
func normalizeKey(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			sb.WriteRune(r)
		case 'A' <= r && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		}
	}
	return sb.String()
}
