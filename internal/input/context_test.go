package input

import (
	"errors"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

func TestNewContextDefaults(t *testing.T) {
	c := NewContext(Config{})

	if b := c.Bounds(); b.Width != DefaultWidth || b.Height != DefaultHeight {
		t.Errorf("Bounds() = %+v, want default", b)
	}
	if c.Captured() {
		t.Error("Captured() = true on new context")
	}
	if c.Metrics() == nil {
		t.Error("Metrics() = nil")
	}
}

func TestNextFrame(t *testing.T) {
	c := NewContext(DefaultConfig())

	f1 := c.NextFrame()
	f2 := c.NextFrame()
	if f1.Seq != 1 || f2.Seq != 2 {
		t.Errorf("frame seqs = %d, %d, want 1, 2", f1.Seq, f2.Seq)
	}
	if f1.Keyboard != KeyboardReader(c.Keyboard()) || f1.Pointer != PointerReader(c.Pointer()) {
		t.Error("frame does not expose the context state")
	}
	if got := c.Metrics().Stats().Frames; got != 2 {
		t.Errorf("Stats().Frames = %d, want 2", got)
	}
}

func TestUnpoppedEventsSurviveFrames(t *testing.T) {
	c := NewContext(DefaultConfig())
	if err := c.Translate(platform.KeyDown(70, false)); err != nil {
		t.Fatal(err)
	}

	_ = c.NextFrame()
	f := c.NextFrame()
	ev, ok := f.Keyboard.PopKeyEvent()
	if !ok || ev.Code != 70 {
		t.Errorf("PopKeyEvent() on later frame = %v, %v, want press 70", ev, ok)
	}
}

func TestChain(t *testing.T) {
	var order []string
	stop := errors.New("stop")

	chain := Chain{
		ConsumerFunc(func(*Frame) error { order = append(order, "a"); return nil }),
		ConsumerFunc(func(*Frame) error { order = append(order, "b"); return stop }),
		ConsumerFunc(func(*Frame) error { order = append(order, "c"); return nil }),
	}

	err := chain.Frame(&Frame{})
	if !errors.Is(err, stop) {
		t.Errorf("Chain.Frame() error = %v, want stop", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("consumers ran %v, want [a b]", order)
	}
}

func TestSnapshotJSON(t *testing.T) {
	c := NewContext(DefaultConfig())
	for _, n := range []platform.Notification{
		platform.KeyDown(65, true),
		platform.Move(12, 34, 0),
		platform.ButtonDown(mouse.ButtonLeft, 12, 34),
		platform.Wheel(12, 34, 50, 0),
	} {
		if err := c.Translate(n); err != nil {
			t.Fatal(err)
		}
	}
	_ = c.NextFrame()

	snap := c.Snapshot()
	if len(snap.Pressed) != 1 || snap.Pressed[0] != key.Code(65) {
		t.Errorf("Snapshot().Pressed = %v, want [65]", snap.Pressed)
	}

	doc, err := snap.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	checks := []struct {
		path string
		want string
	}{
		{"frame", "1"},
		{"keyboard.pressed.0", "65"},
		{"keyboard.auto_repeat", "true"},
		{"keyboard.queued.keys", "1"},
		{"pointer.x", "12"},
		{"pointer.y", "34"},
		{"pointer.inside", "true"},
		{"pointer.buttons.left", "true"},
		{"pointer.buttons.right", "false"},
		{"pointer.wheel_carry", "50"},
		{"pointer.queued", "3"},
		{"window.width", "1000"},
		{"window.captured", "true"},
	}
	for _, tt := range checks {
		if got := gjson.Get(doc, tt.path).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSnapshotDoesNotPop(t *testing.T) {
	c := NewContext(DefaultConfig())
	_ = c.Translate(platform.Char('x'))

	_ = c.Snapshot()
	if c.Keyboard().CharQueueEmpty() {
		t.Error("Snapshot() drained the char queue")
	}
}

func TestMetricsCounts(t *testing.T) {
	c := NewContext(DefaultConfig())
	for _, n := range []platform.Notification{
		platform.KeyDown(1, false),
		platform.KeyDown(2, false),
		platform.Move(1, 1, 0),
		platform.Close(),
	} {
		_ = c.Translate(n)
	}

	m := c.Metrics()
	if got := m.Count(platform.KindKeyDown); got != 2 {
		t.Errorf("Count(key-down) = %d, want 2", got)
	}

	stats := m.Stats()
	if stats.Total != 4 {
		t.Errorf("Stats().Total = %d, want 4", stats.Total)
	}
	if stats.Notifications["pointer-move"] != 1 {
		t.Errorf("Stats().Notifications = %v", stats.Notifications)
	}
	if stats.Ignored != 1 {
		t.Errorf("Stats().Ignored = %d, want 1", stats.Ignored)
	}

	doc, err := stats.JSON()
	if err != nil {
		t.Fatalf("Stats().JSON() error = %v", err)
	}
	if got := gjson.Get(doc, "notifications.key-down").Int(); got != 2 {
		t.Errorf("notifications.key-down = %d, want 2", got)
	}
	if got := gjson.Get(doc, "total").Int(); got != 4 {
		t.Errorf("total = %d, want 4", got)
	}

	m.Reset()
	if m.Stats().Total != 0 {
		t.Error("Reset() left counters")
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)
	m.RecordNotification(platform.KindChar, time.Millisecond)
	m.RecordFrame()

	if m.IsEnabled() {
		t.Error("IsEnabled() = true after disable")
	}
	if s := m.Stats(); s.Total != 0 || s.Frames != 0 {
		t.Errorf("disabled metrics recorded: %+v", s)
	}
}

func TestCalculateLatencyStats(t *testing.T) {
	avg, maxLat, p99 := calculateLatencyStats([]time.Duration{0, 3, 1, 2})
	if avg != 2 || maxLat != 3 || p99 != 3 {
		t.Errorf("calculateLatencyStats() = %v, %v, %v, want 2, 3, 3", avg, maxLat, p99)
	}
	if a, m, p := calculateLatencyStats(nil); a != 0 || m != 0 || p != 0 {
		t.Error("calculateLatencyStats(nil) not zero")
	}
}

func TestHealthCheck(t *testing.T) {
	c := NewContext(DefaultConfig())
	if h := c.HealthCheck(0); !h.Healthy {
		t.Errorf("HealthCheck() = %+v, want healthy", h)
	}

	for i := 0; i < 17; i++ {
		_ = c.Translate(platform.KeyDown(uint8(i), false))
	}
	h := c.HealthCheck(0)
	if h.Healthy || h.Evicted != 1 {
		t.Errorf("HealthCheck() = %+v, want unhealthy with 1 eviction", h)
	}
}
