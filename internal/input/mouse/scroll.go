package mouse

// ScrollDirection represents the direction of a wheel notch.
type ScrollDirection int8

const (
	// ScrollDown is rotation toward the user (negative delta).
	ScrollDown ScrollDirection = -1
	// ScrollNone indicates no notch.
	ScrollNone ScrollDirection = 0
	// ScrollUp is rotation away from the user (positive delta).
	ScrollUp ScrollDirection = 1
)

// String returns a string representation of the scroll direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	default:
		return "none"
	}
}

// OnWheelDelta adds a raw wheel delta reported at (x, y) to the carry and
// drains every whole notch into a WheelUp or WheelDown event. After the
// call the carry is always smaller than one notch in magnitude, so surplus
// rotation is never dropped and a notch is never split.
//
// It returns the number of notch events recorded; the sign gives the
// direction.
func (s *State) OnWheelDelta(x, y int16, delta int16) int {
	s.wheelCarry += int32(delta)

	notches := 0
	for s.wheelCarry >= s.notch {
		s.wheelCarry -= s.notch
		s.push(KindWheelUp, x, y)
		notches++
	}
	for s.wheelCarry <= -s.notch {
		s.wheelCarry += s.notch
		s.push(KindWheelDown, x, y)
		notches--
	}
	return notches
}

// WheelCarry returns the accumulated sub-notch wheel delta.
func (s *State) WheelCarry() int32 {
	return s.wheelCarry
}

// WheelNotch returns the raw delta of one notch.
func (s *State) WheelNotch() int32 {
	return s.notch
}

// Direction returns the scroll direction of a wheel event kind.
func Direction(k Kind) ScrollDirection {
	switch k {
	case KindWheelUp:
		return ScrollUp
	case KindWheelDown:
		return ScrollDown
	default:
		return ScrollNone
	}
}
