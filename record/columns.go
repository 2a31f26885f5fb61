package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Columns is a column-oriented view of records sharing one field set:
// one ordered slice of values per field.
type Columns struct {
	names  []string
	values map[string][]any
	rows   int
}

// ToColumns transposes records into columns, with field order taken from the first record.
//
// Every record must have exactly the first record's field set; a record that
// lacks a field or carries an extra one is a decode error, never padded.
// No records yields empty Columns.
func ToColumns(records []*Record) (*Columns, error) {
	cols := &Columns{values: make(map[string][]any)}
	if len(records) == 0 {
		return cols, nil
	}

	cols.names = records[0].Keys()
	for _, name := range cols.names {
		cols.values[name] = make([]any, 0, len(records))
	}

	for i, rec := range records {
		if rec.Len() != len(cols.names) {
			return nil, &DecodeError{Err: fieldMismatch(i, rec, cols.names)}
		}
		for _, name := range cols.names {
			v, ok := rec.Get(name)
			if !ok {
				return nil, &DecodeError{Err: fieldMismatch(i, rec, cols.names)}
			}
			cols.values[name] = append(cols.values[name], v)
		}
	}
	cols.rows = len(records)

	return cols, nil
}

// Names returns the field names in column order.
func (c *Columns) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)

	return names
}

// Column returns the values of one field, or nil when the field is unknown.
func (c *Columns) Column(name string) []any {
	return c.values[name]
}

// Rows returns the number of records transposed.
func (c *Columns) Rows() int {
	return c.rows
}

// Map returns the columns as a plain map.
func (c *Columns) Map() map[string][]any {
	m := make(map[string][]any, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}

	return m
}

// MarshalJSON encodes the columns as a JSON object of arrays, in column order.
func (c *Columns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.values[name])
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

func fieldMismatch(i int, rec *Record, want []string) error {
	return fmt.Errorf("%w: record %d has fields %v, want %v", ErrFieldMismatch, i, rec.Keys(), want)
}
