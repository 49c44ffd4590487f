package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks loop timing: how long each frame's consumers took and how
// many notifications each iteration delivered.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	batchCount    atomic.Uint64
	emptyBatches  atomic.Uint64
	notifications atomic.Uint64
	largestBatch  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time spent in consumers for one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordBatch records one source iteration of n notifications.
func (m *Metrics) RecordBatch(n int) {
	m.batchCount.Add(1)
	if n == 0 {
		m.emptyBatches.Add(1)
		return
	}
	m.notifications.Add(uint64(n))
	for {
		old := m.largestBatch.Load()
		if uint64(n) <= old || m.largestBatch.CompareAndSwap(old, uint64(n)) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		BatchCount:     m.batchCount.Load(),
		EmptyBatches:   m.emptyBatches.Load(),
		Notifications:  m.notifications.Load(),
		LargestBatch:   m.largestBatch.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	BatchCount     uint64
	EmptyBatches   uint64
	Notifications  uint64
	LargestBatch   uint64
}

// AvgBatch returns the mean notifications per non-empty batch.
func (s MetricsSnapshot) AvgBatch() float64 {
	full := s.BatchCount - s.EmptyBatches
	if full == 0 {
		return 0
	}
	return float64(s.Notifications) / float64(full)
}

// FramesPerSecond returns frames over uptime.
func (s MetricsSnapshot) FramesPerSecond() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.FrameCount) / s.Uptime.Seconds()
}
