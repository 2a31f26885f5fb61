package bts

import (
	"sync/atomic"
)

// ClientMetrics contains atomic metrics for a client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc,
// see RegisterMetrics.
type ClientMetrics struct {
	// CommandSendCount indicates the number of commands sent.
	CommandSendCount atomic.Uint64
	// CommandErrCount indicates the number of commands that failed with a connection error.
	CommandErrCount atomic.Uint64
	// DecodeErrCount indicates the number of responses that could not be decoded.
	DecodeErrCount atomic.Uint64
	// PreconditionErrCount indicates the number of starts refused by the client.
	PreconditionErrCount atomic.Uint64

	// BytesSent indicates the number of command body bytes sent.
	BytesSent atomic.Uint64
	// BytesRecv indicates the number of response bytes received.
	BytesRecv atomic.Uint64

	// PageRecvCount indicates the number of download pages received.
	PageRecvCount atomic.Uint64
	// RecordRecvCount indicates the number of records decoded from download pages.
	RecordRecvCount atomic.Uint64

	// ConnectedGauge is 1 while the client is open.
	ConnectedGauge atomic.Int32
}

func (m *ClientMetrics) incCommandSendCount(bytes int) {
	m.CommandSendCount.Add(1)
	m.BytesSent.Add(uint64(bytes))
}

func (m *ClientMetrics) incCommandErrCount() {
	m.CommandErrCount.Add(1)
}

func (m *ClientMetrics) incDecodeErrCount() {
	m.DecodeErrCount.Add(1)
}

func (m *ClientMetrics) incPreconditionErrCount() {
	m.PreconditionErrCount.Add(1)
}

func (m *ClientMetrics) addBytesRecv(bytes int) {
	m.BytesRecv.Add(uint64(bytes))
}

func (m *ClientMetrics) incPageRecvCount(records int) {
	m.PageRecvCount.Add(1)
	m.RecordRecvCount.Add(uint64(records))
}

func (m *ClientMetrics) setConnected(v bool) {
	if v {
		m.ConnectedGauge.Store(1)
	} else {
		m.ConnectedGauge.Store(0)
	}
}
