package bts

import (
	"bytes"
	"encoding/json"

	"github.com/arloliu/go-bts/record"
)

// Results holds one record per pipeline id, in request order.
type Results struct {
	ids  []string
	recs map[string]*record.Record
}

func newResults(n int) *Results {
	return &Results{
		ids:  make([]string, 0, n),
		recs: make(map[string]*record.Record, n),
	}
}

func (r *Results) add(id string, rec *record.Record) {
	if _, ok := r.recs[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.recs[id] = rec
}

// Get returns the record of pipeline id.
func (r *Results) Get(id string) (*record.Record, bool) {
	rec, ok := r.recs[id]
	return rec, ok
}

// IDs returns the pipeline ids in request order.
func (r *Results) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Len returns the number of pipelines.
func (r *Results) Len() int {
	return len(r.ids)
}

// Map returns the records as a plain map.
func (r *Results) Map() map[string]*record.Record {
	m := make(map[string]*record.Record, len(r.recs))
	for k, v := range r.recs {
		m[k] = v
	}

	return m
}

// MarshalJSON encodes the results as a JSON object keyed by pipeline id, in request order.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range r.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.recs[id])
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

// Filter returns the results for which keep reports true, in the same order.
func (r *Results) Filter(keep func(id string, rec *record.Record) bool) *Results {
	out := newResults(len(r.ids))
	for _, id := range r.ids {
		if keep(id, r.recs[id]) {
			out.add(id, r.recs[id])
		}
	}

	return out
}
