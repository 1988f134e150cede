// Package output serializes command results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ToJSON encodes v as JSON, indented when pretty is set. HTML characters
// are not escaped so labels like "A&B" stay readable.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write encodes v to w followed by a newline.
func Write(w io.Writer, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV writes a header line followed by rows.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Open returns stdout when path is empty, otherwise a created file. The
// returned close function is always safe to call.
func Open(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write output: %w", err)
	}
	return f, f.Close, nil
}
