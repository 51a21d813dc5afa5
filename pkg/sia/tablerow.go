package sia

import (
	"bytes"
	"encoding/json"
)

// TableRow maps a column label (or positional col_N fallback key) to cell
// text, preserving column order. Rows are built once by the table extractor
// and never mutated afterwards.
type TableRow struct {
	columns []string
	values  map[string]string
}

// NewTableRow creates an empty row.
func NewTableRow() *TableRow {
	return &TableRow{values: make(map[string]string)}
}

// Append adds a column/value pair at the end of the row. A repeated column
// label overwrites the value without changing column order.
func (r *TableRow) Append(column, value string) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the cell text for a column, or "" if the column is absent.
func (r *TableRow) Get(column string) string {
	return r.values[column]
}

// Columns returns the column labels in table order.
func (r *TableRow) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r *TableRow) Len() int {
	return len(r.columns)
}

// Empty reports whether every cell is empty text.
func (r *TableRow) Empty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// MarshalJSON emits the row as a JSON object with keys in column order.
func (r *TableRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
