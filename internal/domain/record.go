package domain

import "time"

// FetchStatus represents the outcome of one source fetch.
// Values include FetchOK, FetchPartial, and FetchFailed.
type FetchStatus string

const (
	FetchOK      FetchStatus = "ok"
	FetchPartial FetchStatus = "partial"
	FetchFailed  FetchStatus = "failed"
)

// Failure reason codes recorded on failed fetches and enrichment calls.
const (
	ReasonTimeout     = "timeout"
	ReasonNetwork     = "network"
	ReasonParse       = "parse"
	ReasonUnsupported = "unsupported"
)

// SourceReference identifies one input to a profile build. Immutable,
// supplied by the caller.
type SourceReference struct {
	Kind    SourceKind `json:"kind"`
	Locator string     `json:"locator"`
}

// MediaRef points at one media item extracted from a source.
type MediaRef struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Format  string `json:"format,omitempty"`
}

// SourceRecord is the normalized output of one source fetch. It lives only
// for the duration of the build that produced it and is never persisted.
type SourceRecord struct {
	Kind       SourceKind
	Locator    string
	Name       string
	Profession string
	Email      string
	Phone      string
	Location   string
	Bio        string
	Captions   []string
	Experience []string
	Education  []string
	Skills     []string
	Media      []MediaRef
	FetchedAt  time.Time
	Status     FetchStatus
	Reason     string
}

// FailedRecord builds a failed SourceRecord for the given reference.
// Parameters:
//   - ref: reference that could not be fetched.
//   - reason: failure reason code.
// Returns:
//   - SourceRecord: record with FetchFailed status.
func FailedRecord(ref SourceReference, reason string) SourceRecord {
	return SourceRecord{
		Kind:      ref.Kind,
		Locator:   ref.Locator,
		FetchedAt: time.Now(),
		Status:    FetchFailed,
		Reason:    reason,
	}
}

// Usable reports whether the record contributes at least one non-empty
// field to a merge.
// Parameters: none.
// Returns:
//   - bool: true when the record carries any usable data.
func (r SourceRecord) Usable() bool {
	if r.Status == FetchFailed {
		return false
	}
	if r.Name != "" || r.Profession != "" || r.Email != "" || r.Phone != "" ||
		r.Location != "" || r.Bio != "" {
		return true
	}
	return len(r.Captions) > 0 || len(r.Experience) > 0 || len(r.Education) > 0 ||
		len(r.Skills) > 0 || len(r.Media) > 0
}

// TextFragments gathers the record's free-text content for skill extraction.
// Parameters: none.
// Returns:
//   - []string: non-empty text fragments in source order.
func (r SourceRecord) TextFragments() []string {
	fragments := make([]string, 0, 2+len(r.Captions)+len(r.Experience)+len(r.Education))
	if r.Bio != "" {
		fragments = append(fragments, r.Bio)
	}
	fragments = append(fragments, r.Captions...)
	fragments = append(fragments, r.Experience...)
	fragments = append(fragments, r.Education...)
	return fragments
}
