// Package mock provides a deterministic source.Adapter test double. It is
// also used by the build CLI's offline mode.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

// Adapter returns a canned SourceRecord for every fetch. An optional delay
// simulates slow upstreams; the delay respects context cancellation and
// yields a failed(timeout) record when the deadline fires first. One
// adapter may serve concurrent fetches.
type Adapter struct {
	kind   domain.SourceKind
	record domain.SourceRecord
	delay  time.Duration

	mu    sync.Mutex
	calls int
}

// New creates a mock adapter serving the given record.
// Parameters:
//   - kind: source kind the adapter claims to handle.
//   - record: record returned by every Fetch call.
// Returns:
//   - *Adapter: initialized mock adapter.
func New(kind domain.SourceKind, record domain.SourceRecord) *Adapter {
	return &Adapter{kind: kind, record: record}
}

// WithDelay makes every Fetch wait before answering.
// Parameters:
//   - d: artificial latency per call.
// Returns:
//   - *Adapter: the same adapter, for chaining.
func (a *Adapter) WithDelay(d time.Duration) *Adapter {
	a.delay = d
	return a
}

// Kind returns the source kind this adapter handles.
func (a *Adapter) Kind() domain.SourceKind {
	return a.kind
}

// DisplayName returns a human-readable name for this source.
func (a *Adapter) DisplayName() string {
	return "Mock " + string(a.kind)
}

// Calls reports how many times Fetch has been invoked.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Fetch returns the canned record, stamped with the reference and a fresh
// fetch time.
func (a *Adapter) Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.delay > 0 {
		t := time.NewTimer(a.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return domain.FailedRecord(ref, domain.ReasonTimeout)
		}
	}
	rec := a.record
	rec.Kind = ref.Kind
	rec.Locator = ref.Locator
	rec.FetchedAt = time.Now()
	if rec.Status == "" {
		rec.Status = domain.FetchOK
	}
	return rec
}
