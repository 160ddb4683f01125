// Package resilience provides the quota latch and error classification used
// around external text-generation calls.
package resilience

import "sync"

// QuotaLatch is a one-way circuit breaker: once tripped by a quota
// violation it stays tripped for the remainder of the run. Each run owns its
// own latch; there is no hidden process-wide state.
type QuotaLatch struct {
	mu      sync.Mutex
	tripped bool
	onTrip  func()
}

// NewQuotaLatch creates an untripped latch. onTrip, if non-nil, is invoked
// exactly once on the first trip.
func NewQuotaLatch(onTrip func()) *QuotaLatch {
	return &QuotaLatch{onTrip: onTrip}
}

// Trip latches the breaker open. Subsequent calls are no-ops.
func (l *QuotaLatch) Trip() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tripped {
		return
	}
	l.tripped = true
	if l.onTrip != nil {
		l.onTrip()
	}
}

// Tripped reports whether the latch has been tripped.
func (l *QuotaLatch) Tripped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tripped
}
