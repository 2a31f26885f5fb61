package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches plain decimal notation; ParseFloat alone would also
// take hex floats, underscores, infinities and NaN.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// NullToken is the placeholder the BTS server sends for a field without a value.
const NullToken = "--"

// Coerce converts a raw attribute or text value to a scalar.
//
// The rules are applied in order:
//   - NullToken becomes nil.
//   - A value containing a decimal point becomes float64 if it parses as one.
//   - Otherwise a value that parses as a base-10 integer becomes int64.
//   - Anything else stays a string, e.g. "dc", "127.0.0.1" or "2025-12-28 22:29:05".
func Coerce(s string) any {
	if s == NullToken {
		return nil
	}

	if strings.Contains(s, ".") {
		if !decimalPattern.MatchString(s) {
			return s
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}

		return s
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}

// Record is one decoded response element: field names mapped to coerced
// scalars, remembering the order in which the fields first appeared.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	keys   []string
	values map[string]any
}

// New creates an empty Record.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// FromPairs creates a Record from alternating key, value arguments.
// It panics if the number of arguments is odd or a key is not a string.
func FromPairs(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("record: FromPairs requires an even number of arguments")
	}

	r := New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record: FromPairs key %v is not a string", kv[i]))
		}
		r.Set(key, kv[i+1])
	}

	return r
}

// Set stores v under key. Overwriting an existing key keeps its position.
func (r *Record) Set(key string, v any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key and whether the key is present.
// A present key may hold nil for the protocol's no-value placeholder.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil when absent.
func (r *Record) Value(key string) any {
	return r.values[key]
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Int returns the integer stored under key.
func (r *Record) Int(key string) (int64, bool) {
	v, ok := r.values[key].(int64)
	return v, ok
}

// Float returns the numeric value stored under key as float64.
// Integer values are converted, since the server omits the decimal point for whole numbers.
func (r *Record) Float(key string) (float64, bool) {
	switch v := r.values[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns the string stored under key.
func (r *Record) String(key string) (string, bool) {
	v, ok := r.values[key].(string)
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)

	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Merge copies every field of other into r, overwriting fields r already has.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// Clone returns a copy of r.
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}

	return c
}

// Map returns the fields as a plain map.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}

	return m
}

// Equal reports whether r and other hold the same fields with equal values.
// Field order is not compared.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}

	return true
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("record: field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
