package source

import (
	"context"

	"github.com/talentio/profilehub/internal/domain"
)

// Adapter defines the interface for profile data sources. Implementations
// never return errors for expected failure modes (network error, parse
// error, unsupported input); they report them through the record's fetch
// status instead. Adapters must honor ctx cancellation and deadlines.
type Adapter interface {
	// Kind returns the source kind this adapter handles.
	// Parameters: none.
	// Returns:
	//   - domain.SourceKind: stable source kind.
	Kind() domain.SourceKind

	// DisplayName returns a human-readable name for this source.
	// Parameters: none.
	// Returns:
	//   - string: display-friendly source name.
	DisplayName() string

	// Fetch retrieves and normalizes content for one source reference.
	// Parameters:
	//   - ctx: context carrying the per-call deadline.
	//   - ref: reference identifying what to fetch.
	// Returns:
	//   - domain.SourceRecord: normalized record; Status is FetchFailed
	//     with a reason code when fetching or parsing fails.
	Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord
}
