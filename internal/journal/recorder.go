package journal

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/inputcore/internal/input/platform"
)

// Recorder is a platform.Source that records every notification it passes
// on from the wrapped source.
type Recorder struct {
	src platform.Source

	mu      sync.Mutex
	journal *Journal
	batches uint64
	start   time.Time
	now     func() time.Time
}

// NewRecorder starts recording notifications from src. bounds is stored
// as the journal's starting client area.
func NewRecorder(src platform.Source, bounds platform.Bounds) *Recorder {
	return &Recorder{
		src:     src,
		journal: New(bounds),
		start:   time.Now(),
		now:     time.Now,
	}
}

// Next implements platform.Source.
func (r *Recorder) Next(ctx context.Context) ([]platform.Notification, error) {
	batch, err := r.src.Next(ctx)
	if len(batch) > 0 {
		r.record(batch)
	}
	return batch, err
}

func (r *Recorder) record(batch []platform.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches++
	offset := r.now().Sub(r.start).Milliseconds()
	for _, n := range batch {
		e := EntryOf(n)
		e.Seq = uint64(len(r.journal.Entries) + 1)
		e.Batch = r.batches
		e.OffsetMS = offset
		r.journal.Entries = append(r.journal.Entries, e)
	}
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.journal.Entries)
}

// Journal returns a copy of the journal recorded so far.
func (r *Recorder) Journal() *Journal {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := *r.journal
	j.Entries = append([]Entry(nil), r.journal.Entries...)
	return &j
}

// Save writes the journal recorded so far to path.
func (r *Recorder) Save(path string) error {
	return Save(r.Journal(), path)
}
