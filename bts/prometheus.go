package bts

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "bts"

// MetricsCollectors returns prometheus collectors reading m, labelled with
// the server address.
func MetricsCollectors(m *ClientMetrics, addr string) []prometheus.Collector {
	labels := prometheus.Labels{"server": addr}

	counter := func(name, help string, v func() uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Subsystem:   "client",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(v()) })
	}

	return []prometheus.Collector{
		counter("commands_total", "Commands sent to the server.", m.CommandSendCount.Load),
		counter("command_errors_total", "Commands that failed with a connection error.", m.CommandErrCount.Load),
		counter("decode_errors_total", "Responses that could not be decoded.", m.DecodeErrCount.Load),
		counter("precondition_errors_total", "Starts refused by the client.", m.PreconditionErrCount.Load),
		counter("sent_bytes_total", "Command body bytes sent.", m.BytesSent.Load),
		counter("received_bytes_total", "Response bytes received.", m.BytesRecv.Load),
		counter("download_pages_total", "Download pages received.", m.PageRecvCount.Load),
		counter("download_records_total", "Records decoded from download pages.", m.RecordRecvCount.Load),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricNamespace,
			Subsystem:   "client",
			Name:        "connected",
			Help:        "1 while the client is connected.",
			ConstLabels: labels,
		}, func() float64 { return float64(m.ConnectedGauge.Load()) }),
	}
}

// RegisterMetrics registers the metrics of c with reg.
func RegisterMetrics(reg prometheus.Registerer, c *Client) error {
	for _, col := range MetricsCollectors(c.Metrics(), c.cfg.Addr()) {
		if err := reg.Register(col); err != nil {
			return err
		}
	}

	return nil
}
