package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextWriter renders Tabular items as an aligned table. The header comes
// from the first item; non-tabular items are printed with %v.
type TextWriter struct {
	tw     *tabwriter.Writer
	header bool
}

// NewTextWriter creates a table writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

// Write adds a row.
func (w *TextWriter) Write(item any) error {
	t, ok := item.(Tabular)
	if !ok {
		_, err := fmt.Fprintf(w.tw, "%v\n", item)
		return err
	}
	if !w.header {
		if err := w.line(t.Header()); err != nil {
			return err
		}
		w.header = true
	}
	return w.line(t.Row())
}

func (w *TextWriter) line(cells []string) error {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(c)
	}
	_, err := fmt.Fprintln(w.tw, strings.Join(clean, "\t"))
	return err
}

// Flush aligns and writes the table.
func (w *TextWriter) Flush() error {
	w.header = false
	return w.tw.Flush()
}
