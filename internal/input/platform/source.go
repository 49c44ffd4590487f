package platform

import (
	"context"
	"errors"
)

// ErrClosed is returned by a Source when the platform has shut down.
var ErrClosed = errors.New("platform closed")

// Source yields raw notifications from the platform's message pump.
//
// Next returns the notifications collected during one iteration, possibly
// none, in delivery order. It returns ErrClosed once the platform has shut
// down and ctx.Err() if the context is cancelled first.
type Source interface {
	Next(ctx context.Context) ([]Notification, error)
}

// Capturer is the platform's pointer-capture mechanism. While captured,
// pointer notifications keep arriving even when the cursor is outside the
// client area.
type Capturer interface {
	SetCapture()
	ReleaseCapture()
}

// NopCapturer ignores capture requests. It suits platforms that always
// report pointer motion, such as terminals and recorded journals.
type NopCapturer struct{}

func (NopCapturer) SetCapture()     {}
func (NopCapturer) ReleaseCapture() {}

// SliceSource replays a fixed list of notifications, one batch per call,
// then reports ErrClosed.
type SliceSource struct {
	batches [][]Notification
	next    int
}

// NewSliceSource creates a source that yields each batch in order.
func NewSliceSource(batches ...[]Notification) *SliceSource {
	return &SliceSource{batches: batches}
}

// Next implements Source.
func (s *SliceSource) Next(ctx context.Context) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.batches) {
		return nil, ErrClosed
	}
	b := s.batches[s.next]
	s.next++
	return b, nil
}
