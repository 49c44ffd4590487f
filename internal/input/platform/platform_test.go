package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/inputcore/internal/input/mouse"
)

func TestPackMakePoints(t *testing.T) {
	tests := []struct {
		x, y int16
	}{
		{0, 0},
		{10, 20},
		{-1, -1},
		{-32768, 32767},
		{32767, -32768},
		{-5, 400},
	}

	for _, tt := range tests {
		lp := PackPoints(tt.x, tt.y)
		x, y := MakePoints(lp)
		if x != tt.x || y != tt.y {
			t.Errorf("MakePoints(PackPoints(%d, %d)) = (%d, %d)", tt.x, tt.y, x, y)
		}
	}
}

func TestMakePointsRawLParam(t *testing.T) {
	// 0xFFFE0005: x = 5, y = -2
	x, y := MakePoints(int64(int32(-0x1FFFB)))
	if x != 5 || y != -2 {
		t.Errorf("MakePoints() = (%d, %d), want (5, -2)", x, y)
	}

	// Upper 32 bits of a 64-bit LPARAM are ignored.
	x, y = MakePoints(0x7FFF_0000_0003_0004)
	if x != 4 || y != 3 {
		t.Errorf("MakePoints() with high bits = (%d, %d), want (4, 3)", x, y)
	}
}

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		delta int16
		mk    ButtonMask
	}{
		{120, 0},
		{-120, MaskLeft},
		{-32768, MaskButtons},
		{32767, MaskShift},
		{48, 0},
	}

	for _, tt := range tests {
		wp := PackWheel(tt.delta, tt.mk)
		if got := WheelDelta(wp); got != tt.delta {
			t.Errorf("WheelDelta(PackWheel(%d)) = %d", tt.delta, got)
		}
		if got := Buttons(wp); got != tt.mk {
			t.Errorf("Buttons(PackWheel(_, %#x)) = %#x", tt.mk, got)
		}
	}

	// WHEEL_DELTA * -1 as the platform sends it: 0xFF880000.
	if got := WheelDelta(0xFF880000); got != -120 {
		t.Errorf("WheelDelta(0xFF880000) = %d, want -120", got)
	}
}

func TestRepeatFlag(t *testing.T) {
	if RepeatFlag(KeyDown(VKReturn, false).LParam) {
		t.Error("RepeatFlag() = true for first key-down")
	}
	if !RepeatFlag(KeyDown(VKReturn, true).LParam) {
		t.Error("RepeatFlag() = false for repeated key-down")
	}
	if !RepeatFlag(0x40000001) {
		t.Error("RepeatFlag(0x40000001) = false")
	}
}

func TestMakeSize(t *testing.T) {
	n := Resize(1000, 750)
	w, h := MakeSize(n.LParam)
	if w != 1000 || h != 750 {
		t.Errorf("MakeSize() = (%d, %d), want (1000, 750)", w, h)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		x, y int16
		want bool
	}{
		{0, 0, true},
		{100, 50, true},
		{50, 25, true},
		{-1, 10, false},
		{10, -1, false},
		{101, 10, false},
		{10, 51, false},
	}

	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMaskOf(t *testing.T) {
	if MaskOf(mouse.ButtonLeft) != MaskLeft || MaskOf(mouse.ButtonRight) != MaskRight || MaskOf(mouse.ButtonWheel) != MaskMiddle {
		t.Error("MaskOf() mapping mismatch")
	}
	if MaskOf(mouse.Button(0)) != 0 {
		t.Error("MaskOf(0) != 0")
	}
	if ButtonMask(MaskShift | MaskControl).AnyButton() {
		t.Error("modifier-only mask reported a button")
	}
	if !MaskMiddle.AnyButton() {
		t.Error("MaskMiddle.AnyButton() = false")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", k.String(), back, ok, k)
		}
	}
	if _, ok := ParseKind("nope"); ok {
		t.Error("ParseKind(nope) ok = true")
	}
	if got := Kind(200).String(); got != "kind(200)" {
		t.Errorf("Kind(200).String() = %q", got)
	}
}

func TestVKForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want uint8
		ok   bool
	}{
		{'a', 0x41, true},
		{'Z', 0x5A, true},
		{'7', 0x37, true},
		{' ', VKSpace, true},
		{'?', VKOEM2, true},
		{'é', 0, false},
	}
	for _, tt := range tests {
		got, ok := VKForRune(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VKForRune(%q) = %#x, %v, want %#x, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}

	if c, ok := VKFunction(12); !ok || c != 0x7B {
		t.Errorf("VKFunction(12) = %#x, %v", c, ok)
	}
	if _, ok := VKFunction(0); ok {
		t.Error("VKFunction(0) ok = true")
	}
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource(
		[]Notification{KeyDown(VKA, false)},
		nil,
		[]Notification{KeyUp(VKA), FocusLost()},
	)
	ctx := context.Background()

	wantLens := []int{1, 0, 2}
	for i, want := range wantLens {
		got, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if len(got) != want {
			t.Errorf("Next() #%d len = %d, want %d", i, len(got), want)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Next() after end error = %v, want ErrClosed", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewSliceSource(nil).Next(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() with cancelled ctx error = %v", err)
	}
}
