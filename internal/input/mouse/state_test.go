package mouse

import (
	"testing"
)

func drain(s *State) []Event {
	var out []Event
	for {
		ev, ok := s.PopEvent()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonLeft, "left"},
		{ButtonRight, "right"},
		{ButtonWheel, "wheel"},
		{Button(0), "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
			if tt.button == 0 {
				return
			}
			if back, ok := ParseButton(tt.expected); !ok || back != tt.button {
				t.Errorf("ParseButton(%q) = %v, %v", tt.expected, back, ok)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k := KindMove; k <= KindWheelDown; k++ {
		if k.String() == "none" {
			t.Errorf("Kind(%d).String() = none", k)
		}
	}
	if Kind(0).String() != "none" {
		t.Errorf("Kind(0).String() = %q, want none", Kind(0).String())
	}
	if !KindWheelUp.IsWheel() || KindMove.IsWheel() {
		t.Error("IsWheel() misclassified")
	}
	if !KindRightRelease.IsButton() || KindWheelUp.IsButton() || KindEnter.IsButton() {
		t.Error("IsButton() misclassified")
	}
}

func TestOnMove(t *testing.T) {
	s := NewState(DefaultConfig())
	s.OnMove(10, -4)

	x, y := s.Position()
	if x != 10 || y != -4 {
		t.Errorf("Position() = (%d, %d), want (10, -4)", x, y)
	}

	ev, ok := s.PopEvent()
	if !ok {
		t.Fatal("PopEvent() ok = false")
	}
	want := Event{Kind: KindMove, X: 10, Y: -4}
	if ev != want {
		t.Errorf("PopEvent() = %v, want %v", ev, want)
	}
}

func TestButtonEventsCarrySnapshot(t *testing.T) {
	s := NewState(DefaultConfig())
	s.OnMove(3, 4)
	s.OnButtonPress(ButtonLeft)
	s.OnButtonPress(ButtonRight)
	s.OnButtonRelease(ButtonLeft)
	s.OnButtonPress(ButtonWheel)
	s.OnButtonRelease(ButtonWheel)
	s.OnButtonRelease(ButtonRight)

	want := []Event{
		{Kind: KindMove, X: 3, Y: 4},
		{Kind: KindLeftPress, Left: true, X: 3, Y: 4},
		{Kind: KindRightPress, Left: true, Right: true, X: 3, Y: 4},
		{Kind: KindLeftRelease, Right: true, X: 3, Y: 4},
		{Kind: KindWheelPress, Right: true, Wheel: true, X: 3, Y: 4},
		{Kind: KindWheelRelease, Right: true, X: 3, Y: 4},
		{Kind: KindRightRelease, X: 3, Y: 4},
	}

	got := drain(s)
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if s.AnyPressed() {
		t.Error("AnyPressed() = true after all releases")
	}
}

func TestButtonFlags(t *testing.T) {
	s := NewState(DefaultConfig())

	s.OnButtonPress(ButtonWheel)
	if !s.WheelPressed() || s.LeftPressed() || s.RightPressed() {
		t.Error("wheel press set the wrong flags")
	}
	if !s.AnyPressed() {
		t.Error("AnyPressed() = false with wheel down")
	}
	s.OnButtonRelease(ButtonWheel)
	if s.WheelPressed() {
		t.Error("WheelPressed() = true after release")
	}
}

func TestEnterLeave(t *testing.T) {
	s := NewState(DefaultConfig())
	if s.Inside() {
		t.Error("Inside() = true on new state")
	}

	s.OnEnter()
	if !s.Inside() {
		t.Error("Inside() = false after OnEnter()")
	}
	s.OnLeave()
	if s.Inside() {
		t.Error("Inside() = true after OnLeave()")
	}

	got := drain(s)
	if len(got) != 2 || got[0].Kind != KindEnter || got[1].Kind != KindLeave {
		t.Errorf("events = %v, want [enter leave]", got)
	}
}

func TestDoubleEnterPanics(t *testing.T) {
	s := NewState(DefaultConfig())
	s.OnEnter()

	defer func() {
		if recover() == nil {
			t.Error("second OnEnter() did not panic")
		}
	}()
	s.OnEnter()
}

func TestLeaveWhileOutsidePanics(t *testing.T) {
	s := NewState(DefaultConfig())

	defer func() {
		if recover() == nil {
			t.Error("OnLeave() while outside did not panic")
		}
	}()
	s.OnLeave()
}

func TestInvalidButtonPanics(t *testing.T) {
	s := NewState(DefaultConfig())

	defer func() {
		if recover() == nil {
			t.Error("OnButtonPress(0) did not panic")
		}
		if !s.Empty() {
			t.Error("invalid button was queued")
		}
	}()
	s.OnButtonPress(Button(0))
}

func TestWheelDeltaSplits(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int16
		up     int
		down   int
		carry  int32
	}{
		{"single 240", []int16{240}, 2, 0, 0},
		{"five of 48", []int16{48, 48, 48, 48, 48}, 2, 0, 0},
		{"two of 120", []int16{120, 120}, 2, 0, 0},
		{"sub notch", []int16{119}, 0, 0, 119},
		{"negative 240", []int16{-240}, 0, 2, 0},
		{"negative partial", []int16{-60, -90}, 0, 1, -30},
		{"cancel out", []int16{100, -100}, 0, 0, 0},
		{"reverse after carry", []int16{100, -220}, 0, 1, 0},
		{"large", []int16{32767}, 273, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(Config{QueueCapacity: 512, WheelNotch: DefaultWheelNotch})
			for _, d := range tt.deltas {
				s.OnWheelDelta(1, 2, d)
			}

			up, down := 0, 0
			for _, ev := range drain(s) {
				switch ev.Kind {
				case KindWheelUp:
					up++
				case KindWheelDown:
					down++
				default:
					t.Errorf("unexpected event %v", ev)
				}
				if ev.X != 1 || ev.Y != 2 {
					t.Errorf("event position = (%d,%d), want (1,2)", ev.X, ev.Y)
				}
			}
			if up != tt.up || down != tt.down {
				t.Errorf("up/down = %d/%d, want %d/%d", up, down, tt.up, tt.down)
			}
			if s.WheelCarry() != tt.carry {
				t.Errorf("WheelCarry() = %d, want %d", s.WheelCarry(), tt.carry)
			}
		})
	}
}

func TestWheelCarryInvariant(t *testing.T) {
	s := NewState(Config{QueueCapacity: 1024, WheelNotch: 120})
	deltas := []int16{7, -300, 32767, -32768, 119, 1, -1, -119, 240, -17}
	for _, d := range deltas {
		s.OnWheelDelta(0, 0, d)
		c := s.WheelCarry()
		if c >= 120 || c <= -120 {
			t.Fatalf("after delta %d WheelCarry() = %d, want |carry| < 120", d, c)
		}
	}
}

func TestWheelDeltaReturnsNotches(t *testing.T) {
	s := NewState(DefaultConfig())
	if n := s.OnWheelDelta(0, 0, 360); n != 3 {
		t.Errorf("OnWheelDelta(360) = %d, want 3", n)
	}
	if n := s.OnWheelDelta(0, 0, -250); n != -2 {
		t.Errorf("OnWheelDelta(-250) = %d, want -2", n)
	}
	if s.WheelCarry() != -10 {
		t.Errorf("WheelCarry() = %d, want -10", s.WheelCarry())
	}
}

func TestQueueCapacity(t *testing.T) {
	s := NewState(DefaultConfig())
	for i := 0; i < 17; i++ {
		s.OnMove(int16(i), 0)
	}

	if s.Len() != 16 {
		t.Errorf("Len() = %d, want 16", s.Len())
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
	first, _ := s.PopEvent()
	if first.X != 1 {
		t.Errorf("oldest X = %d, want 1", first.X)
	}
}

func TestResetKeepsState(t *testing.T) {
	s := NewState(DefaultConfig())
	s.OnMove(5, 6)
	s.OnEnter()
	s.OnButtonPress(ButtonLeft)
	s.OnWheelDelta(5, 6, 50)

	s.Reset()

	if !s.Empty() {
		t.Error("Reset() left events queued")
	}
	x, y := s.Position()
	if x != 5 || y != 6 {
		t.Errorf("Position() = (%d,%d), want (5,6)", x, y)
	}
	if !s.Inside() || !s.LeftPressed() {
		t.Error("Reset() changed inside/button state")
	}
	if s.WheelCarry() != 50 {
		t.Errorf("WheelCarry() = %d, want 50", s.WheelCarry())
	}
}

func TestDirection(t *testing.T) {
	if Direction(KindWheelUp) != ScrollUp || Direction(KindWheelDown) != ScrollDown || Direction(KindMove) != ScrollNone {
		t.Error("Direction() misclassified")
	}
	if ScrollUp.String() != "up" || ScrollDown.String() != "down" || ScrollNone.String() != "none" {
		t.Error("ScrollDirection.String() mismatch")
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Kind: KindLeftPress, Left: true, Right: true, X: 10, Y: 4}
	if got := ev.String(); got != "left-press (10,4) [L-R]" {
		t.Errorf("Event.String() = %q", got)
	}
}
