// Package mock provides a deterministic Enricher for tests and the build
// CLI's offline mode.
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentio/profilehub/internal/enrich"
)

// Enricher answers every enrichment call locally with predictable output
// derived from its input.
type Enricher struct{}

// New creates a mock enricher.
// Parameters: none.
// Returns:
//   - *Enricher: initialized mock.
func New() *Enricher {
	return &Enricher{}
}

// ExtractSkills returns capitalized single words that look like skill
// mentions, keeping the output stable for identical input.
func (e *Enricher) ExtractSkills(ctx context.Context, fragments []string) ([]string, error) {
	seen := map[string]bool{}
	var skills []string
	for _, fragment := range fragments {
		for _, word := range strings.Fields(fragment) {
			word = strings.Trim(word, ".,;:!?#")
			if len(word) < 4 || word[0] < 'A' || word[0] > 'Z' {
				continue
			}
			key := strings.ToLower(word)
			if !seen[key] {
				seen[key] = true
				skills = append(skills, word)
			}
		}
	}
	return skills, nil
}

// GenerateBio composes a short bio from the request fields.
func (e *Enricher) GenerateBio(ctx context.Context, req enrich.BioRequest) (string, error) {
	name := req.Name
	if name == "" {
		name = "This professional"
	}
	if req.Profession == "" {
		return fmt.Sprintf("%s builds a varied body of work.", name), nil
	}
	bio := fmt.Sprintf("%s is a %s", name, strings.ToLower(req.Profession))
	if len(req.Skills) > 0 {
		bio += " skilled in " + strings.Join(req.Skills, ", ")
	}
	return bio + ".", nil
}

// AnalyzeImage derives tags from the URL path segments.
func (e *Enricher) AnalyzeImage(ctx context.Context, imageURL string) ([]string, error) {
	base := imageURL
	if idx := strings.LastIndex(base, "/"); idx != -1 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	tags := []string{"photo"}
	for _, part := range strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' }) {
		if part != "" {
			tags = append(tags, strings.ToLower(part))
		}
	}
	return tags, nil
}

// AnalyzeImageData tags uploaded bytes by format only.
func (e *Enricher) AnalyzeImageData(ctx context.Context, data []byte, format string) ([]string, error) {
	return []string{"photo", format}, nil
}
