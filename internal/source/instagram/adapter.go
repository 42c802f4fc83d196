package instagram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

// Adapter normalizes Instagram account data. Live Instagram access needs an
// approved Basic Display API app, so this adapter serves deterministic
// fixture data shaped like the API response; swap it out behind the
// source.Adapter interface once credentials exist.
type Adapter struct{}

// NewAdapter creates a new Instagram adapter.
// Parameters: none.
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Kind returns the source kind this adapter handles.
func (a *Adapter) Kind() domain.SourceKind {
	return domain.KindInstagram
}

// DisplayName returns a human-readable name for this source.
func (a *Adapter) DisplayName() string {
	return "Instagram"
}

// Fetch normalizes the account identified by the reference locator, which
// may be a profile URL or a bare username.
func (a *Adapter) Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	if ctx.Err() != nil {
		return domain.FailedRecord(ref, domain.ReasonTimeout)
	}

	username := parseUsername(ref.Locator)
	if username == "" {
		return domain.FailedRecord(ref, domain.ReasonParse)
	}

	posts := []struct {
		url     string
		caption string
	}{
		{
			url:     fmt.Sprintf("https://instagram.example.com/%s/p/1.jpg", username),
			caption: "Golden hour magic #photography #goldenhour",
		},
		{
			url:     fmt.Sprintf("https://instagram.example.com/%s/p/2.jpg", username),
			caption: "Behind the scenes of today's shoot #studio",
		},
	}

	rec := domain.SourceRecord{
		Kind:      ref.Kind,
		Locator:   ref.Locator,
		Name:      username,
		Bio:       "Creative photographer capturing life's moments",
		FetchedAt: time.Now(),
		Status:    domain.FetchOK,
	}
	for _, p := range posts {
		rec.Captions = append(rec.Captions, p.caption)
		rec.Media = append(rec.Media, domain.MediaRef{
			URL:     p.url,
			Caption: p.caption,
			Format:  "jpeg",
		})
	}
	return rec
}

// parseUsername extracts the account name from a profile URL or handle.
func parseUsername(locator string) string {
	s := strings.TrimSpace(locator)
	s = strings.TrimSuffix(s, "/")
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	s = strings.TrimPrefix(s, "@")
	if strings.ContainsAny(s, " ?#") {
		return ""
	}
	return s
}
