// Package enrich calls an external AI service to derive skills, bios, and
// image tags from normalized source content. Every operation is
// independently failable; callers degrade to deterministic fallbacks
// instead of aborting.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// BioRequest carries the inputs for professional bio generation.
type BioRequest struct {
	Name       string
	Profession string
	Skills     []string
	Experience []string
}

// Enricher defines the enrichment operations consumed by the build
// pipeline. Implementations must honor ctx deadlines on every call.
type Enricher interface {
	// ExtractSkills extracts professional skills from free-text fragments.
	// Parameters:
	//   - ctx: context carrying the per-call deadline.
	//   - fragments: raw text fragments from one source.
	// Returns:
	//   - []string: extracted skill names.
	//   - error: non-nil if the call fails.
	ExtractSkills(ctx context.Context, fragments []string) ([]string, error)

	// GenerateBio writes a short professional bio.
	// Parameters:
	//   - ctx: context carrying the per-call deadline.
	//   - req: subject details gathered across sources.
	// Returns:
	//   - string: generated bio text.
	//   - error: non-nil if the call fails.
	GenerateBio(ctx context.Context, req BioRequest) (string, error)

	// AnalyzeImage tags an image reachable at a public URL.
	// Parameters:
	//   - ctx: context carrying the per-call deadline.
	//   - imageURL: publicly accessible image URL.
	// Returns:
	//   - []string: descriptive tags.
	//   - error: non-nil if the call fails.
	AnalyzeImage(ctx context.Context, imageURL string) ([]string, error)

	// AnalyzeImageData tags an uploaded image from raw bytes.
	// Parameters:
	//   - ctx: context carrying the per-call deadline.
	//   - data: raw image bytes.
	//   - format: image format extension (jpg, png, gif, webp).
	// Returns:
	//   - []string: descriptive tags.
	//   - error: non-nil if the call fails.
	AnalyzeImageData(ctx context.Context, data []byte, format string) ([]string, error)
}

// CallError describes a failed enrichment call. Transient errors
// (rate limits, upstream outages, network trouble) may be retried once;
// anything else is permanent.
type CallError struct {
	Op        string
	Status    int
	Transient bool
	Err       error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether the error is worth one retry.
// Parameters:
//   - err: error returned by an enrichment call.
// Returns:
//   - bool: true for rate-limit, server, network, and deadline errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Transient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// transientStatus classifies HTTP status codes from the AI backend.
func transientStatus(status int) bool {
	return status == 429 || status >= 500
}
