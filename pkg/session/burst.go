package session

import (
	"time"

	"github.com/whisperwall/cli/pkg/api"
)

// BurstDuration is how long a reaction press stays in its transient
// "burst" display state
const BurstDuration = 600 * time.Millisecond

// BurstTracker holds the transient per-press burst state for a
// reaction bar. Display-only; it never affects counts.
type BurstTracker struct {
	kind  api.ReactionKind
	until time.Time
	now   func() time.Time
}

// NewBurstTracker creates a tracker on the real clock
func NewBurstTracker() *BurstTracker {
	return &BurstTracker{now: time.Now}
}

// NewBurstTrackerWithClock creates a tracker on an injected clock
func NewBurstTrackerWithClock(now func() time.Time) *BurstTracker {
	return &BurstTracker{now: now}
}

// Trigger marks kind as bursting for BurstDuration from now
func (b *BurstTracker) Trigger(kind api.ReactionKind) {
	b.kind = kind
	b.until = b.now().Add(BurstDuration)
}

// Active reports whether kind is currently bursting
func (b *BurstTracker) Active(kind api.ReactionKind) bool {
	return b.kind == kind && b.now().Before(b.until)
}
