package footage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Marshal encodes the report as indented JSON with sorted keys and a
// trailing newline.
func Marshal(r Report) ([]byte, error) {
	if r == nil {
		r = Report{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding footage report: %w", err)
	}
	return buf.Bytes(), nil
}

// Render writes the encoded report to w in a single write. Nothing is
// written if encoding fails.
func Render(w io.Writer, r Report) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing footage report: %w", err)
	}
	return nil
}

// Parse decodes a document produced by Render.
func Parse(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding footage report: %w", err)
	}
	for id, rng := range r {
		if rng.Intervals == nil {
			rng.Intervals = []Interval{}
			r[id] = rng
		}
	}
	return r, nil
}
