package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter buffers items and writes them as one document on Flush: a
// single item as-is, anything else as an array.
type JSONWriter struct {
	out    io.Writer
	indent string
	items  []any
}

// NewJSONWriter creates a JSON writer; an empty indent writes compact JSON.
func NewJSONWriter(w io.Writer, indent string) *JSONWriter {
	return &JSONWriter{out: w, indent: indent}
}

// Write buffers item.
func (w *JSONWriter) Write(item any) error {
	w.items = append(w.items, item)
	return nil
}

// Flush encodes the buffered items.
func (w *JSONWriter) Flush() error {
	var doc any = w.items
	if len(w.items) == 1 {
		doc = w.items[0]
	} else if w.items == nil {
		doc = []any{}
	}
	w.items = nil

	bw := bufio.NewWriter(w.out)
	enc := newEncoder(bw)
	enc.SetIndent("", w.indent)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return bw.Flush()
}

// JSONLWriter writes one compact JSON object per line as items arrive.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: newEncoder(w)}
}

// Write encodes item as a line.
func (w *JSONLWriter) Write(item any) error {
	return w.enc.Encode(item)
}

// Flush is a no-op; lines are written immediately.
func (w *JSONLWriter) Flush() error { return nil }

// newEncoder keeps URLs readable by not escaping &, < and >.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
