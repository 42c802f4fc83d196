package linkedin

import (
	"context"
	"strings"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

// Adapter normalizes LinkedIn profile data. LinkedIn has no public profile
// API without partner access, so this adapter serves deterministic fixture
// data shaped like a profile export; swap it out behind the source.Adapter
// interface once partner access exists.
type Adapter struct{}

// NewAdapter creates a new LinkedIn adapter.
// Parameters: none.
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Kind returns the source kind this adapter handles.
func (a *Adapter) Kind() domain.SourceKind {
	return domain.KindLinkedIn
}

// DisplayName returns a human-readable name for this source.
func (a *Adapter) DisplayName() string {
	return "LinkedIn"
}

// Fetch normalizes the profile identified by the reference locator, which
// may be a profile URL or a bare public slug.
func (a *Adapter) Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	if ctx.Err() != nil {
		return domain.FailedRecord(ref, domain.ReasonTimeout)
	}

	slug := parseSlug(ref.Locator)
	if slug == "" {
		return domain.FailedRecord(ref, domain.ReasonParse)
	}

	return domain.SourceRecord{
		Kind:       ref.Kind,
		Locator:    ref.Locator,
		Name:       nameFromSlug(slug),
		Profession: "Creative Director & Photographer",
		Location:   "New York, NY",
		Experience: []string{
			"Senior Photographer at Creative Studio Inc. (2021 - Present): lead photographer for commercial and portrait projects",
			"Freelance Designer (2019 - 2021): brand and editorial design for small businesses",
		},
		Education: []string{
			"Bachelor of Fine Arts, Art Institute (2020)",
		},
		Skills: []string{
			"Photography",
			"Adobe Creative Suite",
			"Portrait Photography",
			"Commercial Photography",
		},
		FetchedAt: time.Now(),
		Status:    domain.FetchOK,
	}
}

// parseSlug extracts the public profile slug from a URL or plain string.
func parseSlug(locator string) string {
	s := strings.TrimSpace(locator)
	s = strings.TrimSuffix(s, "/")
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	if strings.ContainsAny(s, " ?#") {
		return ""
	}
	return s
}

// nameFromSlug turns "john-doe-123" into "John Doe".
func nameFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			continue // skip numeric disambiguation suffixes
		}
		words = append(words, strings.ToUpper(p[:1])+p[1:])
	}
	if len(words) == 0 {
		return slug
	}
	return strings.Join(words, " ")
}
