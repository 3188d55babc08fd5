package output

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line). Object keys
// follow the dataset schema order with derived columns appended
// alphabetically, so lines diff cleanly across runs and against the CSV
// output.
func (j *JSONFormatter) Format(rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	columns := columnOrder(rows)

	var buf bytes.Buffer
	for _, row := range rows {
		buf.Reset()
		buf.WriteByte('{')
		first := true
		for _, col := range columns {
			value, exists := row[col]
			if !exists {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			name, err := json.Marshal(col)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')

			encoded, err := json.Marshal(value)
			if err != nil {
				return err
			}
			buf.Write(encoded)
		}
		buf.WriteString("}\n")

		if _, err := j.writer.Write(buf.Bytes()); err != nil {
			return err
		}
	}

	return nil
}
