package bibtexvcs

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes the document as BibTeX source: comments first, then the
// preamble, macro definitions and entries. Implicit comments are written as
// free text, explicit ones as @comment constructs.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, c := range d.Comments {
		if c.Implicit {
			fmt.Fprintf(bw, "%s\n", strings.TrimRight(c.Text, "\n"))
		} else {
			fmt.Fprintf(bw, "@comment{%s}\n", c.Text)
		}
		bw.WriteByte('\n')
	}
	if d.Preamble != nil {
		bw.WriteString("@preamble{")
		writeValue(bw, d.Preamble.Value)
		bw.WriteString("}\n\n")
	}
	for _, m := range d.Macros {
		fmt.Fprintf(bw, "@string{%s = ", m.Key)
		writeValue(bw, m.Value)
		bw.WriteString("}\n")
	}
	if len(d.Macros) > 0 {
		bw.WriteByte('\n')
	}
	for _, e := range d.Entries {
		writeEntry(bw, e)
	}
	return bw.Flush()
}

func (d *Document) String() string {
	var b strings.Builder
	d.Write(&b) // writing to a Builder cannot fail
	return b.String()
}

func writeEntry(w *bufio.Writer, e *Entry) {
	fmt.Fprintf(w, "@%s{%s,\n", e.Type, e.Key)
	for _, f := range e.Fields {
		fmt.Fprintf(w, "  %s = ", f.Name)
		writeValue(w, f.Value)
		w.WriteString(",\n")
	}
	w.WriteString("}\n\n")
}

func writeValue(w *bufio.Writer, v Value) {
	switch v := v.(type) {
	case Text:
		fmt.Fprintf(w, "{%s}", string(v))
	case MacroReference:
		w.WriteString(v.Name)
	case Sequence:
		for i, p := range v {
			if i > 0 {
				w.WriteString(" # ")
			}
			writeValue(w, p)
		}
	case NameList:
		names := make([]string, len(v))
		for i, n := range v {
			names[i] = formatName(n)
		}
		fmt.Fprintf(w, "{%s}", strings.Join(names, " and "))
	}
}

// formatName renders a name so that reparsing yields the same Name record.
// Last names containing whitespace are braced to keep them indivisible.
func formatName(n Name) string {
	last := n.Last
	if strings.ContainsAny(last, " \t") {
		last = "{" + last + "}"
	}
	out := last
	if n.Nobility != "" {
		out = n.Nobility + " " + out
	}
	if n.Suffix != "" {
		out += ", " + n.Suffix
	}
	if n.First != "" {
		out += ", " + n.First
	}
	return out
}
