package channel

import (
	"fmt"

	"github.com/arloliu/go-bts/command"
	"github.com/arloliu/go-bts/record"
)

// DeviceInfoContainer is the getdevinfo response element that holds the channel records.
const DeviceInfoContainer = "middle"

// Pipeline is one channel known to the server.
type Pipeline struct {
	// ID is the pipeline id, e.g. "21-1-1".
	ID string
	Address
	IP      string
	DevType int
	// Open reports whether the server marks the channel as present and usable.
	Open bool

	fields *record.Record
}

// Fields returns a copy of the channel's getdevinfo record: ip, devtype,
// devid, subdevid, Channelid and channel.
func (p *Pipeline) Fields() *record.Record {
	return p.fields.Clone()
}

// Target returns the command address of p.
func (p *Pipeline) Target() command.Target {
	return command.Target{
		IP:       p.IP,
		DevType:  p.DevType,
		DevID:    p.DevID,
		SubDevID: p.SubDevID,
		ChlID:    p.ChlID,
	}
}

// Map resolves pipeline ids to pipelines, in the order the server listed them.
//
// A Map is immutable after Build and safe for concurrent use.
type Map struct {
	ids  []string
	byID map[string]*Pipeline
}

// FromDeviceInfo builds a Map from a getdevinfo response payload.
func FromDeviceInfo(payload []byte) (*Map, error) {
	recs, err := record.ExtractContainer(payload, DeviceInfoContainer)
	if err != nil {
		return nil, err
	}

	return Build(recs)
}

// Build creates a Map from getdevinfo channel records. No records is ErrNoDevices.
func Build(recs []*record.Record) (*Map, error) {
	if len(recs) == 0 {
		return nil, ErrNoDevices
	}

	m := &Map{
		ids:  make([]string, 0, len(recs)),
		byID: make(map[string]*Pipeline, len(recs)),
	}

	for i, rec := range recs {
		p, err := newPipeline(rec)
		if err != nil {
			return nil, fmt.Errorf("device record %d: %w", i, err)
		}
		if _, ok := m.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}

		m.ids = append(m.ids, p.ID)
		m.byID[p.ID] = p
	}

	return m, nil
}

func newPipeline(rec *record.Record) (*Pipeline, error) {
	var addr Address
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"devid", &addr.DevID},
		{"subdevid", &addr.SubDevID},
		{"Channelid", &addr.ChlID},
	} {
		v, ok := rec.Int(f.key)
		if !ok {
			return nil, fmt.Errorf("%w: missing integer %s", ErrInvalidDevice, f.key)
		}
		*f.dst = int(v)
	}

	devType, ok := rec.Int("devtype")
	if !ok {
		return nil, fmt.Errorf("%w: missing integer devtype", ErrInvalidDevice)
	}

	ip, ok := rec.String("ip")
	if !ok {
		return nil, fmt.Errorf("%w: missing ip", ErrInvalidDevice)
	}

	open, _ := rec.String("channel")

	return &Pipeline{
		ID:      addr.String(),
		Address: addr,
		IP:      ip,
		DevType: int(devType),
		Open:    open == "true",
		fields:  rec.Clone(),
	}, nil
}

// Resolve returns the pipeline with the given id.
// A malformed id is reported as not found and also matches ErrInvalidID.
func (m *Map) Resolve(id string) (*Pipeline, error) {
	p, ok := m.byID[id]
	if !ok {
		_, err := ParseAddress(id)
		return nil, &NotFoundError{ID: id, Err: err}
	}

	return p, nil
}

// ResolveMany returns the pipelines with the given ids in the given order.
// No ids selects every pipeline in map order. The same id twice is an error.
func (m *Map) ResolveMany(ids ...string) ([]*Pipeline, error) {
	if len(ids) == 0 {
		return m.Pipelines(), nil
	}

	seen := make(map[string]struct{}, len(ids))
	pipelines := make([]*Pipeline, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		p, err := m.Resolve(id)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}

	return pipelines, nil
}

// Len returns the number of pipelines.
func (m *Map) Len() int {
	return len(m.ids)
}

// IDs returns every pipeline id in map order.
func (m *Map) IDs() []string {
	ids := make([]string, len(m.ids))
	copy(ids, m.ids)

	return ids
}

// Pipelines returns every pipeline in map order.
func (m *Map) Pipelines() []*Pipeline {
	pipelines := make([]*Pipeline, 0, len(m.ids))
	for _, id := range m.ids {
		pipelines = append(pipelines, m.byID[id])
	}

	return pipelines
}

// Targets returns the command addresses of pipelines.
func Targets(pipelines []*Pipeline) []command.Target {
	targets := make([]command.Target, 0, len(pipelines))
	for _, p := range pipelines {
		targets = append(targets, p.Target())
	}

	return targets
}
