package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/inputcore/internal/input/platform"
)

// Metrics tracks translation volume and latency.
type Metrics struct {
	// Counters
	notifications  [platform.NumKinds]atomic.Uint64
	unknown        atomic.Uint64
	ignored        atomic.Uint64
	decodeFailures atomic.Uint64
	frames         atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	latencies         []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakLatency atomic.Int64

	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		latencies:         make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordNotification records a translated notification and how long the
// translation took.
func (m *Metrics) RecordNotification(kind platform.Kind, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	if int(kind) < platform.NumKinds {
		m.notifications[kind].Add(1)
	} else {
		m.unknown.Add(1)
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordIgnored records a notification the translator did not act on.
func (m *Metrics) RecordIgnored() {
	if !m.enabled.Load() {
		return
	}
	m.ignored.Add(1)
}

// RecordDecodeFailure records a notification that failed to decode.
func (m *Metrics) RecordDecodeFailure() {
	if !m.enabled.Load() {
		return
	}
	m.decodeFailures.Add(1)
}

// RecordFrame records a frame handed to consumers.
func (m *Metrics) RecordFrame() {
	if !m.enabled.Load() {
		return
	}
	m.frames.Add(1)
}

// Count returns the number of notifications of kind translated.
func (m *Metrics) Count(kind platform.Kind) uint64 {
	if int(kind) >= platform.NumKinds {
		return m.unknown.Load()
	}
	return m.notifications[kind].Load()
}

// Stats holds a point-in-time view of metrics.
type Stats struct {
	// Notifications counts translated notifications by kind name.
	Notifications  map[string]uint64
	Total          uint64
	Ignored        uint64
	DecodeFailures uint64
	Frames         uint64

	AvgLatency  time.Duration
	MaxLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	NotificationsPerSecond float64

	Uptime time.Duration
}

// Stats returns a copy of all counters.
func (m *Metrics) Stats() Stats {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.latencies))
	copy(latencies, m.latencies)
	m.mu.RUnlock()

	s := Stats{
		Notifications:  make(map[string]uint64, platform.NumKinds),
		Ignored:        m.ignored.Load(),
		DecodeFailures: m.decodeFailures.Load(),
		Frames:         m.frames.Load(),
		PeakLatency:    time.Duration(m.peakLatency.Load()),
		Uptime:         time.Since(m.startTime),
	}
	for _, k := range platform.Kinds() {
		n := m.notifications[k].Load()
		if n > 0 {
			s.Notifications[k.String()] = n
		}
		s.Total += n
	}
	if n := m.unknown.Load(); n > 0 {
		s.Notifications["other"] = n
		s.Total += n
	}

	if s.Uptime > 0 {
		s.NotificationsPerSecond = float64(s.Total) / s.Uptime.Seconds()
	}
	s.AvgLatency, s.MaxLatency, s.P99Latency = calculateLatencyStats(latencies)
	return s
}

// JSON renders the statistics as a JSON document. Latencies are in
// microseconds.
func (s Stats) JSON() (string, error) {
	doc := "{}"
	var err error
	for _, kind := range sortedKeys(s.Notifications) {
		doc, err = sjson.Set(doc, "notifications."+kind, s.Notifications[kind])
		if err != nil {
			return "", err
		}
	}

	fields := []struct {
		path  string
		value any
	}{
		{"total", s.Total},
		{"ignored", s.Ignored},
		{"decode_failures", s.DecodeFailures},
		{"frames", s.Frames},
		{"latency_us.avg", s.AvgLatency.Microseconds()},
		{"latency_us.max", s.MaxLatency.Microseconds()},
		{"latency_us.p99", s.P99Latency.Microseconds()},
		{"latency_us.peak", s.PeakLatency.Microseconds()},
		{"per_second", s.NotificationsPerSecond},
		{"uptime_ms", s.Uptime.Milliseconds()},
	}
	for _, f := range fields {
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}

	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		if l > maxLat {
			maxLat = l
		}
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for i := range m.notifications {
		m.notifications[i].Store(0)
	}
	m.unknown.Store(0)
	m.ignored.Store(0)
	m.decodeFailures.Store(0)
	m.frames.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health of input processing.
type HealthStatus struct {
	Healthy          bool
	Evicted          uint64
	DecodeFailures   uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck reports whether the consumer is keeping up. Any queue
// eviction means events were produced faster than they were popped.
func (c *Context) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	keyDropped, charDropped := c.keyboard.Dropped()
	status := HealthStatus{
		Healthy:          true,
		Evicted:          keyDropped + charDropped + c.pointer.Dropped(),
		DecodeFailures:   c.metrics.decodeFailures.Load(),
		PeakLatency:      time.Duration(c.metrics.peakLatency.Load()),
		LatencyThreshold: latencyThreshold,
	}

	switch {
	case status.DecodeFailures > 0:
		status.Healthy = false
		status.Message = "decode failures detected"
	case status.Evicted > 0:
		status.Healthy = false
		status.Message = "queue evictions detected"
	case latencyThreshold > 0 && status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	default:
		status.Message = "healthy"
	}

	return status
}
