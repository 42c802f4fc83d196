package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	yearsRe   = regexp.MustCompile(`(\d+)\+?\s*(?:years|yrs)`)
)

// Merger combines source records and enrichment results into one canonical
// profile. Merge is pure and deterministic: identical inputs produce an
// identical profile regardless of dispatch or arrival order (timestamps
// excluded). Determinism comes from re-sorting inputs by the fixed kind
// priority, never from arrival order.
type Merger struct{}

// NewMerger creates a new Merger.
// Parameters: none.
// Returns:
//   - *Merger: initialized merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge applies the precedence and dedup rules to produce the profile for
// the given identity.
// Parameters:
//   - identity: stable profile identity.
//   - records: all source records from the run, any status.
//   - results: all enrichment results from the run, any status.
// Returns:
//   - *domain.Profile: merged profile.
func (m *Merger) Merge(identity string, records []domain.SourceRecord, results []domain.EnrichmentResult) *domain.Profile {
	sorted := sortRecords(records)

	now := time.Now()
	profile := &domain.Profile{
		ID:        identity,
		Skills:    domain.StringArray{},
		Links:     domain.LinkMap{},
		Portfolio: domain.PortfolioList{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mergeDetails(profile, sorted)
	mergeLinks(profile, sorted)
	mergeSkills(profile, sorted, results)
	mergeBio(profile, sorted, results)
	mergePortfolio(profile, sorted, results)

	return profile
}

// sortRecords orders records by kind priority, then fetch time, then
// locator, so the outcome is independent of dispatch order.
func sortRecords(records []domain.SourceRecord) []domain.SourceRecord {
	sorted := make([]domain.SourceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Kind.PriorityIndex(), sorted[j].Kind.PriorityIndex()
		if pi != pj {
			return pi < pj
		}
		if !sorted[i].FetchedAt.Equal(sorted[j].FetchedAt) {
			return sorted[i].FetchedAt.Before(sorted[j].FetchedAt)
		}
		return sorted[i].Locator < sorted[j].Locator
	})
	return sorted
}

// mergeDetails fills personal details with the first non-empty value in
// priority order. Conflicting values from lower-priority sources are
// discarded silently.
func mergeDetails(profile *domain.Profile, sorted []domain.SourceRecord) {
	for _, rec := range sorted {
		if rec.Status == domain.FetchFailed {
			continue
		}
		if profile.Name == "" {
			profile.Name = rec.Name
		}
		if profile.Profession == "" {
			profile.Profession = rec.Profession
		}
		if profile.Email == "" {
			profile.Email = rec.Email
		}
		if profile.Phone == "" {
			profile.Phone = rec.Phone
		}
		if profile.Location == "" {
			profile.Location = rec.Location
		}
	}
}

// mergeLinks keeps one locator per kind, from the most recent successfully
// fetched record of that kind.
func mergeLinks(profile *domain.Profile, sorted []domain.SourceRecord) {
	latest := map[domain.SourceKind]domain.SourceRecord{}
	for _, rec := range sorted {
		if rec.Status == domain.FetchFailed || rec.Locator == "" {
			continue
		}
		if prev, ok := latest[rec.Kind]; !ok || rec.FetchedAt.After(prev.FetchedAt) {
			latest[rec.Kind] = rec
		}
	}
	for kind, rec := range latest {
		profile.Links[kind] = rec.Locator
	}
}

// mergeSkills unions direct source skills with successful skill
// extractions, deduplicated case-insensitively with first-seen casing.
// Insertion order follows the fixed kind priority.
func mergeSkills(profile *domain.Profile, sorted []domain.SourceRecord, results []domain.EnrichmentResult) {
	seen := map[string]bool{}
	add := func(skills []string) {
		for _, s := range skills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if !seen[key] {
				seen[key] = true
				profile.Skills = append(profile.Skills, s)
			}
		}
	}

	// Extractions are keyed by originating record, not just kind: a run may
	// carry two records of the same kind and their unions must still land in
	// a stable order.
	extracted := map[recordKey][][]string{}
	for _, res := range sortResults(results) {
		if res.Kind == domain.EnrichSkills && res.Status == domain.EnrichOK {
			key := recordKey{kind: res.SourceKind, locator: res.Locator}
			extracted[key] = append(extracted[key], res.Skills)
		}
	}

	for _, rec := range sorted {
		if rec.Status == domain.FetchFailed {
			continue
		}
		add(rec.Skills)
		for _, skills := range extracted[recordKey{kind: rec.Kind, locator: rec.Locator}] {
			add(skills)
		}
	}
}

// recordKey identifies the source record an enrichment result derived from.
type recordKey struct {
	kind    domain.SourceKind
	locator string
}

// mergeBio takes the generated bio when available and otherwise degrades
// to a deterministic fallback from profession and derivable experience.
func mergeBio(profile *domain.Profile, sorted []domain.SourceRecord, results []domain.EnrichmentResult) {
	for _, res := range sortResults(results) {
		if res.Kind == domain.EnrichBio && res.Status == domain.EnrichOK && res.Bio != "" {
			profile.Bio = res.Bio
			return
		}
	}
	profile.Bio = fallbackBio(profile.Profession, sorted)
}

// fallbackBio builds a deterministic bio from the profession and years of
// experience derivable from raw text. Without a profession there is
// nothing deterministic to say, so the bio stays empty.
func fallbackBio(profession string, sorted []domain.SourceRecord) string {
	if profession == "" {
		return ""
	}
	years := 0
	for _, rec := range sorted {
		if rec.Status == domain.FetchFailed {
			continue
		}
		for _, fragment := range rec.TextFragments() {
			for _, match := range yearsRe.FindAllStringSubmatch(strings.ToLower(fragment), -1) {
				var n int
				fmt.Sscanf(match[1], "%d", &n)
				if n > years {
					years = n
				}
			}
		}
	}
	if years > 0 {
		return fmt.Sprintf("%s with %d years of experience.", profession, years)
	}
	return profession + "."
}

// mergePortfolio collects every media reference from every successful
// record in source order, deduplicated by media URL keeping the first
// occurrence, tagged with image analysis results when available.
func mergePortfolio(profile *domain.Profile, sorted []domain.SourceRecord, results []domain.EnrichmentResult) {
	tagsByURL := map[string][]string{}
	for _, res := range sortResults(results) {
		if res.Kind == domain.EnrichImageTags && res.Status == domain.EnrichOK {
			if _, ok := tagsByURL[res.MediaURL]; !ok {
				tagsByURL[res.MediaURL] = res.Tags
			}
		}
	}

	seen := map[string]bool{}
	for _, rec := range sorted {
		if rec.Status == domain.FetchFailed {
			continue
		}
		for _, media := range rec.Media {
			if media.URL == "" || seen[media.URL] {
				continue
			}
			seen[media.URL] = true
			profile.Portfolio = append(profile.Portfolio, portfolioItem(rec, media, tagsByURL[media.URL]))
		}
	}
}

func portfolioItem(rec domain.SourceRecord, media domain.MediaRef, aiTags []string) domain.PortfolioItem {
	item := domain.PortfolioItem{
		Title:       mediaTitle(rec.Kind, media),
		Description: media.Caption,
		MediaType:   "image",
		MediaURL:    media.URL,
		Tags:        []string{},
		SourceKind:  rec.Kind,
	}

	seen := map[string]bool{}
	add := func(tags []string) {
		for _, t := range tags {
			t = strings.TrimSpace(t)
			key := strings.ToLower(t)
			if t != "" && !seen[key] {
				seen[key] = true
				item.Tags = append(item.Tags, t)
			}
		}
	}
	add(extractHashtags(media.Caption))
	add(aiTags)

	return item
}

func mediaTitle(kind domain.SourceKind, media domain.MediaRef) string {
	caption := strings.TrimSpace(media.Caption)
	if caption != "" {
		if idx := strings.IndexByte(caption, '\n'); idx != -1 {
			caption = caption[:idx]
		}
		if len(caption) > 80 {
			caption = caption[:80]
		}
		return caption
	}
	name := string(kind)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + " media"
}

// extractHashtags pulls #tags out of a caption.
func extractHashtags(text string) []string {
	var tags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// sortResults orders enrichment results by source kind priority, then
// locator, then media URL, so unions built from them are dispatch-order
// independent even when two results share a kind.
func sortResults(results []domain.EnrichmentResult) []domain.EnrichmentResult {
	sorted := make([]domain.EnrichmentResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].SourceKind.PriorityIndex(), sorted[j].SourceKind.PriorityIndex()
		if pi != pj {
			return pi < pj
		}
		if sorted[i].Locator != sorted[j].Locator {
			return sorted[i].Locator < sorted[j].Locator
		}
		return sorted[i].MediaURL < sorted[j].MediaURL
	})
	return sorted
}
