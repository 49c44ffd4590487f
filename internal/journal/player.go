package journal

import (
	"context"
	"time"

	"github.com/dshills/inputcore/internal/input/platform"
)

// Player is a platform.Source that replays a journal. Each call to Next
// yields the notifications of the entries sharing the next batch number,
// so a recorded frame replays as one frame. Entries without a batch number
// replay one per call.
type Player struct {
	entries [][]platform.Notification
	offsets []int64
	batches []uint64
	next    int

	realtime bool
	start    time.Time
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithRealtime paces playback by the recorded offsets.
func WithRealtime() PlayerOption {
	return func(p *Player) {
		p.realtime = true
	}
}

// NewPlayer prepares j for playback.
func NewPlayer(j *Journal, opts ...PlayerOption) (*Player, error) {
	p := &Player{}
	for _, opt := range opts {
		opt(p)
	}

	for _, e := range j.Entries {
		ns, err := e.Notifications()
		if err != nil {
			return nil, err
		}
		last := len(p.entries) - 1
		if e.Batch != 0 && last >= 0 && p.batches[last] == e.Batch {
			p.entries[last] = append(p.entries[last], ns...)
			continue
		}
		p.entries = append(p.entries, ns)
		p.offsets = append(p.offsets, e.OffsetMS)
		p.batches = append(p.batches, e.Batch)
	}
	return p, nil
}

// Remaining returns the number of batches not yet replayed.
func (p *Player) Remaining() int {
	return len(p.entries) - p.next
}

// Next implements platform.Source. It returns platform.ErrClosed once
// every entry has been replayed.
func (p *Player) Next(ctx context.Context) ([]platform.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.next >= len(p.entries) {
		return nil, platform.ErrClosed
	}

	if p.realtime {
		if p.start.IsZero() {
			p.start = time.Now()
		}
		due := p.start.Add(time.Duration(p.offsets[p.next]) * time.Millisecond)
		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	batch := p.entries[p.next]
	p.next++
	return batch, nil
}
