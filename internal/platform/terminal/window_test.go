package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

func TestConvertRuneKey(t *testing.T) {
	c := converter{repeatWindow: time.Second}
	res := c.convert(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	want := []platform.Notification{platform.KeyDown(platform.VKA, false), platform.Char('a')}
	if !equalNotifications(res.now, want) {
		t.Errorf("now = %v, want %v", res.now, want)
	}
	if held := c.releaseAll(); !equalNotifications(held, []platform.Notification{platform.KeyUp(platform.VKA)}) {
		t.Errorf("held = %v, want key-up A", held)
	}
}

func TestConvertRepeat(t *testing.T) {
	press := func(c *converter, r rune) platform.Notification {
		res := c.convert(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		if len(res.now) == 0 {
			t.Errorf("no key-down for %q", r)
			return platform.Notification{}
		}
		return res.now[0]
	}

	tests := []struct {
		name   string
		run    func(c *converter) platform.Notification
		repeat bool
	}{
		{"held key", func(c *converter) platform.Notification {
			press(c, 'j')
			return press(c, 'j')
		}, true},
		{"different key", func(c *converter) platform.Notification {
			press(c, 'j')
			return press(c, 'k')
		}, false},
		{"double letter after release", func(c *converter) platform.Notification {
			press(c, 'l')
			if ups := c.release(time.Now().Add(time.Hour)); len(ups) != 1 || ups[0] != platform.KeyUp(platform.VKA+('l'-'a')) {
				t.Errorf("release() = %v, want key-up L", ups)
			}
			return press(c, 'l')
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &converter{repeatWindow: time.Second}
			if got := platform.RepeatFlag(tt.run(c).LParam); got != tt.repeat {
				t.Errorf("repeat flag = %v, want %v", got, tt.repeat)
			}
		})
	}
}

func TestConverterRelease(t *testing.T) {
	c := converter{repeatWindow: 50 * time.Millisecond}
	_ = c.convert(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	due, ok := c.nextRelease()
	if !ok {
		t.Fatal("nextRelease() ok = false with a held key")
	}
	if ups := c.release(due.Add(-time.Millisecond)); len(ups) != 0 {
		t.Errorf("release() before due = %v, want none", ups)
	}
	if ups := c.release(due); len(ups) != 1 || ups[0] != platform.KeyUp(platform.VKA) {
		t.Errorf("release() at due = %v, want key-up A", ups)
	}
	if _, ok := c.nextRelease(); ok {
		t.Error("nextRelease() ok = true after release")
	}
}

func TestConvertSpecialKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		code uint8
		ch   rune
	}{
		{"enter", tcell.KeyEnter, platform.VKReturn, '\r'},
		{"tab", tcell.KeyTab, platform.VKTab, '\t'},
		{"backspace", tcell.KeyBackspace2, platform.VKBack, '\b'},
		{"escape", tcell.KeyEscape, platform.VKEscape, 0},
		{"left", tcell.KeyLeft, platform.VKLeft, 0},
		{"f5", tcell.KeyF5, 0x74, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ch, ctrl := keyCode(tt.key, 0)
			if code != tt.code || ch != tt.ch || ctrl {
				t.Errorf("keyCode() = %#x, %q, %v, want %#x, %q, false", code, ch, ctrl, tt.code, tt.ch)
			}
		})
	}
}

func TestConvertCtrlChord(t *testing.T) {
	c := converter{}
	res := c.convert(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl))

	want := []platform.Notification{
		platform.KeyDown(platform.VKControl, false),
		platform.KeyDown(platform.VKA+('x'-'a'), false),
	}
	if !equalNotifications(res.now, want) {
		t.Errorf("now = %v, want %v", res.now, want)
	}
	if held := c.releaseAll(); len(held) != 2 || held[1].WParam != uint64(platform.VKControl) {
		t.Errorf("held = %v, want key-ups ending with control", held)
	}
}

func TestConvertAltIsSysKey(t *testing.T) {
	c := converter{}
	res := c.convert(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt))
	held := c.releaseAll()
	if res.now[0].Kind != platform.KindSysKeyDown || len(held) != 1 || held[0].Kind != platform.KindSysKeyUp {
		t.Errorf("alt chord = %v / %v, want sys key-down/up", res.now, held)
	}
}

func TestConvertInterrupt(t *testing.T) {
	c := converter{}
	if res := c.convert(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); !res.interrupt {
		t.Error("Ctrl+C did not interrupt")
	}
}

func TestConvertMouse(t *testing.T) {
	c := converter{}

	got := c.convert(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone)).now
	if !equalNotifications(got, []platform.Notification{platform.Move(4, 2, 0)}) {
		t.Errorf("first move = %v", got)
	}

	got = c.convert(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone)).now
	if !equalNotifications(got, []platform.Notification{platform.ButtonDown(mouse.ButtonLeft, 4, 2)}) {
		t.Errorf("press = %v", got)
	}

	got = c.convert(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone)).now
	if !equalNotifications(got, []platform.Notification{platform.Move(6, 2, platform.MaskLeft)}) {
		t.Errorf("drag = %v", got)
	}

	got = c.convert(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone)).now
	if !equalNotifications(got, []platform.Notification{platform.ButtonUp(mouse.ButtonLeft, 6, 2)}) {
		t.Errorf("release = %v", got)
	}

	got = c.convert(tcell.NewEventMouse(6, 2, tcell.WheelDown, tcell.ModNone)).now
	if len(got) != 1 || got[0].Kind != platform.KindWheelRotate || platform.WheelDelta(got[0].WParam) != -120 {
		t.Errorf("wheel = %v, want one -120 wheel notification", got)
	}
}

func TestConvertFocusAndResize(t *testing.T) {
	c := converter{}

	got := c.convert(tcell.NewEventFocus(false)).now
	if len(got) != 1 || got[0].Kind != platform.KindFocusLost {
		t.Errorf("focus lost = %v", got)
	}
	if got := c.convert(tcell.NewEventFocus(true)).now; len(got) != 0 {
		t.Errorf("focus gained = %v, want nothing", got)
	}

	got = c.convert(tcell.NewEventResize(120, 40)).now
	if len(got) != 1 || got[0].Kind != platform.KindResize {
		t.Fatalf("resize = %v", got)
	}
	if w, h := platform.MakeSize(got[0].LParam); w != 120 || h != 40 {
		t.Errorf("resize size = %dx%d, want 120x40", w, h)
	}
}

func TestWindowNext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w := NewWithScreen(screen, Config{FrameInterval: 5 * time.Millisecond, RepeatWindow: 20 * time.Millisecond})
	if err := w.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer w.Fini()

	ctx := context.Background()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	var got []platform.Notification
	for i := 0; i < 200 && len(got) == 0; i++ {
		batch, err := w.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = keyboardOnly(batch)
	}

	want := []platform.Notification{platform.KeyDown(0x51, false), platform.Char('q')}
	if !equalNotifications(got, want) {
		t.Fatalf("Next() = %v, want %v", got, want)
	}

	var next []platform.Notification
	for i := 0; i < 200 && len(next) == 0; i++ {
		batch, err := w.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		next = keyboardOnly(batch)
	}
	if len(next) == 0 || next[0] != platform.KeyUp(0x51) {
		t.Errorf("later Next() = %v, want the held key-up once the key went quiet", next)
	}

	if b := w.Bounds(); b.Width != 80 || b.Height != 25 {
		t.Errorf("Bounds() = %+v, want 80x25", b)
	}
}

func TestWindowInterrupt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w := NewWithScreen(screen, Config{FrameInterval: 5 * time.Millisecond})
	if err := w.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer w.Fini()

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	ctx := context.Background()
	var err error
	for i := 0; i < 200 && err == nil; i++ {
		_, err = w.Next(ctx)
	}
	if !errors.Is(err, platform.ErrClosed) {
		t.Errorf("Next() error = %v, want ErrClosed", err)
	}
	if _, err := w.Next(ctx); !errors.Is(err, platform.ErrClosed) {
		t.Errorf("Next() after close error = %v, want ErrClosed", err)
	}
}

func TestWindowInterruptKeepsBatch(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w := NewWithScreen(screen, Config{FrameInterval: 5 * time.Millisecond, RepeatWindow: time.Hour})
	if err := w.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer w.Fini()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	ctx := context.Background()
	var all, last []platform.Notification
	var err error
	for i := 0; i < 200 && err == nil; i++ {
		last, err = w.Next(ctx)
		all = append(all, keyboardOnly(last)...)
	}
	if !errors.Is(err, platform.ErrClosed) {
		t.Fatalf("Next() error = %v, want ErrClosed", err)
	}

	want := []platform.Notification{platform.KeyDown(platform.VKA, false), platform.Char('a'), platform.KeyUp(platform.VKA)}
	if !equalNotifications(all, want) {
		t.Errorf("delivered %v, want %v", all, want)
	}
	if kb := keyboardOnly(last); len(kb) == 0 || kb[len(kb)-1] != platform.KeyUp(platform.VKA) {
		t.Errorf("closing batch = %v, want it to end with the held key-up", kb)
	}
}

func TestWindowNextCancelled(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w := NewWithScreen(screen, Config{FrameInterval: time.Hour})
	if err := w.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer w.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestDrawText(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w := NewWithScreen(screen, DefaultConfig())
	if err := w.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer w.Fini()

	end := w.DrawText(0, 0, "a世b", "#ff0000")
	if end != 4 {
		t.Errorf("DrawText() = %d, want 4 (wide rune takes two cells)", end)
	}
	w.Show()

	cells, width, _ := screen.GetContents()
	if r := cells[0].Runes; len(r) == 0 || r[0] != 'a' {
		t.Errorf("cell 0 = %q, want a", r)
	}
	if r := cells[3].Runes; len(r) == 0 || r[0] != 'b' {
		t.Errorf("cell 3 = %q, want b", r)
	}
	if width != 80 {
		t.Errorf("screen width = %d, want 80", width)
	}
}

// keyboardOnly drops the resize and pointer notifications a screen may
// post on its own.
func keyboardOnly(ns []platform.Notification) []platform.Notification {
	var out []platform.Notification
	for _, n := range ns {
		switch n.Kind {
		case platform.KindKeyDown, platform.KindKeyUp, platform.KindChar:
			out = append(out, n)
		}
	}
	return out
}

func equalNotifications(a, b []platform.Notification) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
