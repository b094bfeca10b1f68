package metrics

import "time"

// Option configures a Recorder.
type Option func(*options)

type options struct {
	idleTimeout    time.Duration
	buckets        map[string][]float64
	help           map[string]string
	clock          func() time.Time
	runtimeMetrics bool
}

func defaultOptions() *options {
	return &options{
		idleTimeout: DefaultIdleTimeout,
		buckets: map[string][]float64{
			RequestDuration: DefaultBuckets,
		},
		help: map[string]string{
			RequestsTotal:   "Total number of HTTP requests.",
			RequestDuration: "HTTP request latency in seconds.",
		},
		clock: time.Now,
	}
}

// WithIdleTimeout sets how long a counter or gauge series may go without an
// update before it is dropped. Zero disables expiry.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		o.idleTimeout = d
	}
}

// WithBuckets sets the histogram buckets for the metric name.
func WithBuckets(name string, buckets []float64) Option {
	return func(o *options) {
		o.buckets[name] = append([]float64(nil), buckets...)
	}
}

// WithHelp sets the help text for the metric name.
func WithHelp(name, help string) Option {
	return func(o *options) {
		o.help[name] = help
	}
}

// WithClock replaces time.Now for idle tracking.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRuntimeCollectors also registers the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(o *options) {
		o.runtimeMetrics = true
	}
}
