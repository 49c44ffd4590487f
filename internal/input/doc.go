// Package input owns the keyboard and pointer state and the translator that
// turns raw platform notifications into state changes.
//
// # Architecture
//
// A platform window produces notifications (see package platform). The
// application loop hands every notification of one iteration to
// Context.Translate, then builds a Frame and passes it to each Consumer.
//
//	Source.Next ──► Context.Translate ──► key.State / mouse.State
//	                                           │
//	                  Consumer.Frame ◄── Context.NextFrame
//
// Consumers read the level-triggered state (IsPressed, Position, Inside)
// and drain the edge-triggered queues (PopKeyEvent, PopChar, PopEvent).
// Anything a consumer leaves queued is still there on the next frame,
// unless newer events evict it.
//
// # Boundary rule
//
// A pointer move inside the client area (edges inclusive) enters the
// window if it was outside, acquiring capture, and then records a move.
// A move outside with any button held is a drag and still records a move.
// A move outside with no button held leaves the window and releases
// capture. Enter and Leave events carry the last known position.
//
// # Focus
//
// Losing focus resets the keyboard, since releases that happen while
// unfocused are never delivered. Pointer state is not affected.
//
// # Thread safety
//
// Context and both state types are used from a single goroutine. Metrics
// counters are atomic and may be read from anywhere.
package input
