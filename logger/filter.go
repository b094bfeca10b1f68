package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Filter decides the minimum level per component. Component names are
// dot-separated; a directive for "otel" also covers "otel.tracing" unless a
// more specific directive exists.
type Filter struct {
	Default    zerolog.Level
	directives map[string]zerolog.Level
}

// NewFilter returns a filter with only a default level.
func NewFilter(def zerolog.Level) *Filter {
	return &Filter{Default: def, directives: make(map[string]zerolog.Level)}
}

// ParseFilter parses a comma-separated directive list such as
// "warn,otel::tracing=trace,httpclient=debug". A bare level sets the
// default. "::" is accepted as a separator alongside ".".
func ParseFilter(directives string) (*Filter, error) {
	f := NewFilter(zerolog.InfoLevel)
	for _, part := range strings.Split(directives, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target, lvl, hasTarget := strings.Cut(part, "=")
		if !hasTarget {
			level, err := parseLevel(target)
			if err != nil {
				return nil, err
			}
			f.Default = level
			continue
		}
		level, err := parseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("directive %q: %w", part, err)
		}
		f.Set(normalizeTarget(target), level)
	}
	return f, nil
}

// Set adds or replaces the directive for a component.
func (f *Filter) Set(component string, level zerolog.Level) {
	f.directives[normalizeTarget(component)] = level
}

// LevelFor returns the level of the most specific directive matching
// component, or the default.
func (f *Filter) LevelFor(component string) zerolog.Level {
	if f == nil {
		return zerolog.InfoLevel
	}
	component = normalizeTarget(component)
	best, bestLen := f.Default, -1
	for target, level := range f.directives {
		if component != target && !strings.HasPrefix(component, target+".") {
			continue
		}
		if len(target) > bestLen {
			best, bestLen = level, len(target)
		}
	}
	return best
}

// Min returns the most verbose level present in the filter. The zerolog
// global level must not be above it or component overrides are muted.
func (f *Filter) Min() zerolog.Level {
	minLevel := f.Default
	for _, level := range f.directives {
		if level < minLevel {
			minLevel = level
		}
	}
	return minLevel
}

// String renders the filter back into directive form, sorted by target.
func (f *Filter) String() string {
	parts := []string{f.Default.String()}
	targets := make([]string, 0, len(f.directives))
	for t := range f.directives {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		parts = append(parts, t+"="+f.directives[t].String())
	}
	return strings.Join(parts, ",")
}

func normalizeTarget(t string) string {
	return strings.ReplaceAll(strings.TrimSpace(t), "::", ".")
}

func parseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if s == "off" {
		return zerolog.Disabled, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
