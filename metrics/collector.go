package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type kind int

const (
	kindCounter kind = iota
	kindGauge
	kindHistogram
)

type series struct {
	labelNames  []string
	labelValues []string
	lastUpdate  time.Time

	// counter and gauge
	value float64

	// histogram; counts are per bucket, not cumulative
	count  uint64
	sum    float64
	counts []uint64
}

type family struct {
	kind   kind
	series map[string]*series
}

// collector is an unchecked prometheus.Collector emitting const metrics
// from the recorded series.
type collector struct {
	mu       sync.Mutex
	opts     *options
	families map[string]*family
}

var _ prometheus.Collector = (*collector)(nil)

func newCollector(opts *options) *collector {
	return &collector{
		opts:     opts,
		families: make(map[string]*family),
	}
}

// Describe sends no descriptors, which makes the collector unchecked.
func (c *collector) Describe(chan<- *prometheus.Desc) {}

// Collect drops idle counters and gauges and emits the remaining series.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
	for name, fam := range c.families {
		for _, s := range fam.series {
			ch <- c.constMetric(name, fam.kind, s)
		}
	}
}

// update applies fn to the series of name and labels, creating it if needed.
// Updates that disagree with the kind a name was first recorded as are dropped.
func (c *collector) update(name string, k kind, labels Labels, fn func(*series)) {
	names, values := splitLabels(labels)
	key := seriesKey(names, values)

	c.mu.Lock()
	defer c.mu.Unlock()

	fam, ok := c.families[name]
	if !ok {
		fam = &family{kind: k, series: make(map[string]*series)}
		c.families[name] = fam
	}
	if fam.kind != k {
		return
	}
	s, ok := fam.series[key]
	if !ok {
		s = &series{labelNames: names, labelValues: values}
		if k == kindHistogram {
			s.counts = make([]uint64, len(c.bucketsFor(name)))
		}
		fam.series[key] = s
	}
	s.lastUpdate = c.opts.clock()
	fn(s)
}

func (c *collector) pruneLocked() {
	if c.opts.idleTimeout <= 0 {
		return
	}
	now := c.opts.clock()
	for name, fam := range c.families {
		if fam.kind == kindHistogram {
			continue
		}
		for key, s := range fam.series {
			if now.Sub(s.lastUpdate) > c.opts.idleTimeout {
				delete(fam.series, key)
			}
		}
		if len(fam.series) == 0 {
			delete(c.families, name)
		}
	}
}

func (c *collector) constMetric(name string, k kind, s *series) prometheus.Metric {
	desc := prometheus.NewDesc(name, c.helpFor(name), s.labelNames, nil)

	var (
		m   prometheus.Metric
		err error
	)
	switch k {
	case kindCounter:
		m, err = prometheus.NewConstMetric(desc, prometheus.CounterValue, s.value, s.labelValues...)
	case kindGauge:
		m, err = prometheus.NewConstMetric(desc, prometheus.GaugeValue, s.value, s.labelValues...)
	default:
		bounds := c.bucketsFor(name)
		cumulative := make(map[float64]uint64, len(bounds))
		var running uint64
		for i, upper := range bounds {
			running += s.counts[i]
			cumulative[upper] = running
		}
		m, err = prometheus.NewConstHistogram(desc, s.count, s.sum, cumulative, s.labelValues...)
	}
	if err != nil {
		return prometheus.NewInvalidMetric(desc, err)
	}
	return m
}

func (c *collector) bucketsFor(name string) []float64 {
	if b, ok := c.opts.buckets[name]; ok {
		return b
	}
	return DefaultBuckets
}

func (c *collector) helpFor(name string) string {
	if h, ok := c.opts.help[name]; ok {
		return h
	}
	return name
}

func observe(s *series, bounds []float64, v float64) {
	s.count++
	s.sum += v
	for i, upper := range bounds {
		if v <= upper {
			s.counts[i]++
			return
		}
	}
}

func splitLabels(labels Labels) ([]string, []string) {
	names := make([]string, 0, len(labels))
	for n := range labels {
		names = append(names, n)
	}
	sort.Strings(names)
	values := make([]string, len(names))
	for i, n := range names {
		values[i] = labels[n]
	}
	return names, values
}

func seriesKey(names, values []string) string {
	var b strings.Builder
	for i := range names {
		b.WriteString(names[i])
		b.WriteByte(0xff)
		b.WriteString(values[i])
		b.WriteByte(0xfe)
	}
	return b.String()
}
