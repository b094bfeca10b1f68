package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Metric names recorded by the HTTP middleware.
const (
	RequestsTotal   = "http_requests_total"
	RequestDuration = "http_requests_duration_seconds"
)

// DefaultIdleTimeout is how long counters and gauges survive without updates.
const DefaultIdleTimeout = 10 * time.Second

// DefaultBuckets are the latency buckets, in seconds, for RequestDuration.
var DefaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0}

// ErrAlreadyInstalled is returned by Install when a recorder already exists.
var ErrAlreadyInstalled = errors.New("metrics: recorder already installed")

// Labels are the label pairs of one series.
type Labels map[string]string

// Recorder records metrics into a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	collector *collector
}

// New creates a standalone recorder.
func New(opts ...Option) *Recorder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	registry := prometheus.NewRegistry()
	c := newCollector(o)
	registry.MustRegister(c)
	if o.runtimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Recorder{registry: registry, collector: c}
}

var (
	installMu sync.Mutex
	installed *Recorder
)

// Install creates the process-wide recorder. It may be called once.
func Install(opts ...Option) (*Recorder, error) {
	installMu.Lock()
	defer installMu.Unlock()
	if installed != nil {
		return nil, ErrAlreadyInstalled
	}
	installed = New(opts...)
	return installed, nil
}

// Default returns the installed recorder, or nil before Install.
func Default() *Recorder {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// IncCounter adds one to the counter series.
func (r *Recorder) IncCounter(name string, labels Labels) {
	r.collector.update(name, kindCounter, labels, func(s *series) {
		s.value++
	})
}

// SetGauge sets the gauge series to value.
func (r *Recorder) SetGauge(name string, value float64, labels Labels) {
	r.collector.update(name, kindGauge, labels, func(s *series) {
		s.value = value
	})
}

// ObserveHistogram records value in the histogram series.
func (r *Recorder) ObserveHistogram(name string, value float64, labels Labels) {
	bounds := r.collector.bucketsFor(name)
	r.collector.update(name, kindHistogram, labels, func(s *series) {
		observe(s, bounds, value)
	})
}

// Registry returns the private registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Render returns all live series in the Prometheus text exposition format.
func (r *Recorder) Render() (string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("metrics: gather: %w", err)
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}

// Handler serves the registry over HTTP with content negotiation.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
