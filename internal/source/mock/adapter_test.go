package mock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

func TestFetchCountsConcurrentCalls(t *testing.T) {
	adapter := New(domain.KindWebsite, domain.SourceRecord{Name: "Maya Chen"})
	ref := domain.SourceReference{Kind: domain.KindWebsite, Locator: "https://mayachen.example.com"}

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adapter.Fetch(context.Background(), ref)
		}()
	}
	wg.Wait()

	if got := adapter.Calls(); got != n {
		t.Errorf("Calls() = %d, want %d", got, n)
	}
}

func TestFetchDelayHonorsDeadline(t *testing.T) {
	adapter := New(domain.KindWebsite, domain.SourceRecord{}).WithDelay(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	rec := adapter.Fetch(ctx, domain.SourceReference{Kind: domain.KindWebsite, Locator: "https://slow.example.com"})
	if rec.Status != domain.FetchFailed {
		t.Fatalf("Status = %q, want %q", rec.Status, domain.FetchFailed)
	}
	if rec.Reason != domain.ReasonTimeout {
		t.Errorf("Reason = %q, want %q", rec.Reason, domain.ReasonTimeout)
	}
}
