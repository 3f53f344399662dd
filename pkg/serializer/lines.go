package serializer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LineWriter writes one record per line for unbounded streams, where the
// document-oriented Writer would buffer forever. Text mode prints each
// record's String form; JSON mode prints compact JSON objects, one per line.
// YAML and table formats are streamed as text.
type LineWriter struct {
	mu     sync.Mutex
	format Format
	out    *bufio.Writer
}

// NewLineWriter returns a LineWriter on output, or os.Stdout if nil.
func NewLineWriter(format Format, output io.Writer) *LineWriter {
	if output == nil {
		output = os.Stdout
	}
	return &LineWriter{
		format: format,
		out:    bufio.NewWriter(output),
	}
}

// WriteLine writes v and flushes so a reader of the output sees every
// record as soon as it arrives. It is safe for concurrent use.
func (w *LineWriter) WriteLine(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.format == FormatJSON {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize line to JSON: %w", err)
		}
		if _, err := w.out.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintln(w.out, v); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}
	return w.out.Flush()
}
