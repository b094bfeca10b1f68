// Package metrics records request metrics and exposes them in the Prometheus
// text format.
//
// A Recorder owns a private prometheus.Registry with a single collector that
// keeps counters, gauges and histograms keyed by name and label set. Counter
// and gauge series that are not updated within the idle timeout are dropped
// at the next collection; histograms are kept for the life of the process.
//
//	rec, err := metrics.Install()
//	rec.IncCounter(metrics.RequestsTotal, metrics.Labels{"method": "GET", "path": "/", "status": "200"})
//	text, err := rec.Render()
package metrics
