package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/talentio/profilehub/internal/domain"
)

func baseTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// TestMergeDeterministic verifies that input order never changes the merged profile
func TestMergeDeterministic(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:      domain.KindInstagram,
			Locator:   "https://instagram.com/maya",
			Name:      "maya.creates",
			Captions:  []string{"Golden hour #photography #portrait"},
			Media:     []domain.MediaRef{{URL: "https://cdn.example.com/a.jpg", Caption: "Golden hour #photography"}},
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
		{
			Kind:       domain.KindLinkedIn,
			Locator:    "https://linkedin.com/in/maya-chen",
			Name:       "Maya Chen",
			Profession: "Photographer",
			Skills:     []string{"Photography", "Lightroom"},
			FetchedAt:  baseTime().Add(time.Minute),
			Status:     domain.FetchOK,
		},
		{
			Kind:      domain.KindWebsite,
			Locator:   "https://maya.example.com",
			Bio:       "Portfolio site",
			FetchedAt: baseTime().Add(2 * time.Minute),
			Status:    domain.FetchPartial,
		},
	}
	results := []domain.EnrichmentResult{
		{Kind: domain.EnrichSkills, SourceKind: domain.KindInstagram, Locator: "https://instagram.com/maya", Skills: []string{"Portrait Photography"}, Status: domain.EnrichOK},
		{Kind: domain.EnrichBio, SourceKind: domain.KindLinkedIn, Bio: "Maya is a photographer.", Status: domain.EnrichOK},
		{Kind: domain.EnrichImageTags, SourceKind: domain.KindInstagram, Locator: "https://instagram.com/maya", MediaURL: "https://cdn.example.com/a.jpg", Tags: []string{"sunset", "portrait"}, Status: domain.EnrichOK},
	}

	m := NewMerger()
	first := m.Merge("user-1", records, results)

	permutations := [][]int{{2, 0, 1}, {1, 2, 0}, {2, 1, 0}}
	for _, perm := range permutations {
		shuffledRecords := make([]domain.SourceRecord, len(records))
		for i, j := range perm {
			shuffledRecords[i] = records[j]
		}
		shuffledResults := []domain.EnrichmentResult{results[2], results[0], results[1]}

		got := m.Merge("user-1", shuffledRecords, shuffledResults)

		first.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
		first.UpdatedAt, got.UpdatedAt = time.Time{}, time.Time{}
		if !reflect.DeepEqual(first, got) {
			t.Errorf("merge not deterministic for permutation %v:\nfirst=%+v\ngot=%+v", perm, first, got)
		}
	}
}

// TestMergeSameKindDeterministic verifies that two records of the same kind
// keep a stable skill order regardless of result arrival order
func TestMergeSameKindDeterministic(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:      domain.KindWebsite,
			Locator:   "https://maya-portraits.example.com",
			Bio:       "Portrait work",
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
		{
			Kind:      domain.KindWebsite,
			Locator:   "https://maya-weddings.example.com",
			Bio:       "Wedding work",
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
	}
	results := []domain.EnrichmentResult{
		{Kind: domain.EnrichSkills, SourceKind: domain.KindWebsite, Locator: "https://maya-portraits.example.com", Skills: []string{"Photography"}, Status: domain.EnrichOK},
		{Kind: domain.EnrichSkills, SourceKind: domain.KindWebsite, Locator: "https://maya-weddings.example.com", Skills: []string{"Lightroom"}, Status: domain.EnrichOK},
	}

	m := NewMerger()
	first := m.Merge("user-1", records, results)
	second := m.Merge("user-1",
		[]domain.SourceRecord{records[1], records[0]},
		[]domain.EnrichmentResult{results[1], results[0]},
	)

	want := []string{"Photography", "Lightroom"}
	if !reflect.DeepEqual([]string(first.Skills), want) {
		t.Errorf("Skills = %v, want %v", first.Skills, want)
	}
	if !reflect.DeepEqual([]string(first.Skills), []string(second.Skills)) {
		t.Errorf("skill order depends on arrival order: %v vs %v", first.Skills, second.Skills)
	}
}

// TestMergeFieldPrecedence verifies that higher-priority sources win conflicting fields
func TestMergeFieldPrecedence(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:       domain.KindInstagram,
			Name:       "maya.creates",
			Profession: "Content Creator",
			FetchedAt:  baseTime(),
			Status:     domain.FetchOK,
		},
		{
			Kind:       domain.KindLinkedIn,
			Name:       "Maya Chen",
			Profession: "Photographer",
			Location:   "Brooklyn, NY",
			FetchedAt:  baseTime(),
			Status:     domain.FetchOK,
		},
		{
			Kind:      domain.KindResume,
			Name:      "M. Chen",
			Email:     "maya@example.com",
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
	}

	profile := NewMerger().Merge("user-1", records, nil)

	if profile.Name != "Maya Chen" {
		t.Errorf("Name = %q, want %q", profile.Name, "Maya Chen")
	}
	if profile.Profession != "Photographer" {
		t.Errorf("Profession = %q, want %q", profile.Profession, "Photographer")
	}
	if profile.Email != "maya@example.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "maya@example.com")
	}
	if profile.Location != "Brooklyn, NY" {
		t.Errorf("Location = %q, want %q", profile.Location, "Brooklyn, NY")
	}
}

// TestMergeFailedRecordsIgnored verifies that failed fetches contribute nothing
func TestMergeFailedRecordsIgnored(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:       domain.KindLinkedIn,
			Name:       "Should Not Appear",
			Profession: "Ghost",
			Skills:     []string{"Haunting"},
			FetchedAt:  baseTime(),
			Status:     domain.FetchFailed,
			Reason:     domain.ReasonNetwork,
		},
		{
			Kind:       domain.KindWebsite,
			Name:       "Maya Chen",
			Profession: "Photographer",
			FetchedAt:  baseTime(),
			Status:     domain.FetchOK,
		},
	}

	profile := NewMerger().Merge("user-1", records, nil)

	if profile.Name != "Maya Chen" {
		t.Errorf("Name = %q, want %q", profile.Name, "Maya Chen")
	}
	if len(profile.Skills) != 0 {
		t.Errorf("Skills = %v, want empty", profile.Skills)
	}
	if _, ok := profile.Links[domain.KindLinkedIn]; ok {
		t.Error("failed source must not contribute a link")
	}
}

// TestMergeSkillDedup verifies case-insensitive dedup keeping first-seen casing
func TestMergeSkillDedup(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:      domain.KindLinkedIn,
			Skills:    []string{"Python", "Go"},
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
		{
			Kind:      domain.KindResume,
			Skills:    []string{"python", "PYTHON", "SQL"},
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
	}
	results := []domain.EnrichmentResult{
		{Kind: domain.EnrichSkills, SourceKind: domain.KindResume, Skills: []string{"go", "Docker"}, Status: domain.EnrichOK},
	}

	profile := NewMerger().Merge("user-1", records, results)

	want := []string{"Python", "Go", "SQL", "Docker"}
	if !reflect.DeepEqual([]string(profile.Skills), want) {
		t.Errorf("Skills = %v, want %v", profile.Skills, want)
	}
}

// TestMergeFailedExtractionIgnored verifies that failed skill extraction contributes nothing
func TestMergeFailedExtractionIgnored(t *testing.T) {
	records := []domain.SourceRecord{
		{Kind: domain.KindLinkedIn, Skills: []string{"Photography"}, FetchedAt: baseTime(), Status: domain.FetchOK},
	}
	results := []domain.EnrichmentResult{
		{Kind: domain.EnrichSkills, SourceKind: domain.KindLinkedIn, Skills: []string{"Phantom"}, Status: domain.EnrichFailed, Reason: "timeout"},
	}

	profile := NewMerger().Merge("user-1", records, results)

	want := []string{"Photography"}
	if !reflect.DeepEqual([]string(profile.Skills), want) {
		t.Errorf("Skills = %v, want %v", profile.Skills, want)
	}
}

// TestMergeBio verifies generated bio preference and deterministic fallback
func TestMergeBio(t *testing.T) {
	testCases := []struct {
		name    string
		records []domain.SourceRecord
		results []domain.EnrichmentResult
		want    string
	}{
		{
			name: "generated bio wins",
			records: []domain.SourceRecord{
				{Kind: domain.KindLinkedIn, Profession: "Photographer", FetchedAt: baseTime(), Status: domain.FetchOK},
			},
			results: []domain.EnrichmentResult{
				{Kind: domain.EnrichBio, SourceKind: domain.KindLinkedIn, Bio: "Maya shoots portraits.", Status: domain.EnrichOK},
			},
			want: "Maya shoots portraits.",
		},
		{
			name: "fallback with years",
			records: []domain.SourceRecord{
				{
					Kind:       domain.KindLinkedIn,
					Profession: "Photographer",
					Experience: []string{"Freelance portraits, 5 years of client work"},
					FetchedAt:  baseTime(),
					Status:     domain.FetchOK,
				},
			},
			want: "Photographer with 5 years of experience.",
		},
		{
			name: "fallback takes largest years mention",
			records: []domain.SourceRecord{
				{
					Kind:       domain.KindLinkedIn,
					Profession: "Photographer",
					Experience: []string{"3 years at Studio A", "8 yrs freelance"},
					FetchedAt:  baseTime(),
					Status:     domain.FetchOK,
				},
			},
			want: "Photographer with 8 years of experience.",
		},
		{
			name: "fallback without years",
			records: []domain.SourceRecord{
				{Kind: domain.KindWebsite, Profession: "Photographer", FetchedAt: baseTime(), Status: domain.FetchOK},
			},
			want: "Photographer.",
		},
		{
			name: "no profession yields empty bio",
			records: []domain.SourceRecord{
				{Kind: domain.KindInstagram, Name: "maya.creates", FetchedAt: baseTime(), Status: domain.FetchOK},
			},
			want: "",
		},
		{
			name: "failed bio generation falls back",
			records: []domain.SourceRecord{
				{Kind: domain.KindLinkedIn, Profession: "Photographer", FetchedAt: baseTime(), Status: domain.FetchOK},
			},
			results: []domain.EnrichmentResult{
				{Kind: domain.EnrichBio, SourceKind: domain.KindLinkedIn, Status: domain.EnrichFailed, Reason: "timeout"},
			},
			want: "Photographer.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := NewMerger().Merge("user-1", tc.records, tc.results)
			if profile.Bio != tc.want {
				t.Errorf("Bio = %q, want %q", profile.Bio, tc.want)
			}
		})
	}
}

// TestMergeLinks verifies one link per kind from the most recent successful fetch
func TestMergeLinks(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind:      domain.KindInstagram,
			Locator:   "https://instagram.com/old",
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
			Name:      "x",
		},
		{
			Kind:      domain.KindInstagram,
			Locator:   "https://instagram.com/new",
			FetchedAt: baseTime().Add(time.Hour),
			Status:    domain.FetchPartial,
			Name:      "x",
		},
		{
			Kind:      domain.KindLinkedIn,
			Locator:   "https://linkedin.com/in/maya",
			FetchedAt: baseTime(),
			Status:    domain.FetchFailed,
			Reason:    domain.ReasonTimeout,
		},
	}

	profile := NewMerger().Merge("user-1", records, nil)

	if got := profile.Links[domain.KindInstagram]; got != "https://instagram.com/new" {
		t.Errorf("instagram link = %q, want most recent successful locator", got)
	}
	if _, ok := profile.Links[domain.KindLinkedIn]; ok {
		t.Error("failed fetch must not contribute a link")
	}
	if len(profile.Links) != 1 {
		t.Errorf("Links = %v, want exactly one entry", profile.Links)
	}
}

// TestMergePortfolio verifies media dedup by URL and tag assembly
func TestMergePortfolio(t *testing.T) {
	records := []domain.SourceRecord{
		{
			Kind: domain.KindInstagram,
			Media: []domain.MediaRef{
				{URL: "https://cdn.example.com/a.jpg", Caption: "Golden hour #sunset #portrait"},
				{URL: "https://cdn.example.com/b.jpg", Caption: "Studio day"},
			},
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
		{
			Kind: domain.KindWebsite,
			Media: []domain.MediaRef{
				{URL: "https://cdn.example.com/a.jpg", Caption: "Duplicate of the instagram shot"},
				{URL: "https://cdn.example.com/c.jpg"},
			},
			FetchedAt: baseTime(),
			Status:    domain.FetchOK,
		},
	}
	results := []domain.EnrichmentResult{
		{
			Kind:       domain.EnrichImageTags,
			SourceKind: domain.KindInstagram,
			MediaURL:   "https://cdn.example.com/a.jpg",
			Tags:       []string{"sunset", "golden light"},
			Status:     domain.EnrichOK,
		},
	}

	profile := NewMerger().Merge("user-1", records, results)

	if len(profile.Portfolio) != 3 {
		t.Fatalf("Portfolio has %d items, want 3", len(profile.Portfolio))
	}

	first := profile.Portfolio[0]
	if first.MediaURL != "https://cdn.example.com/a.jpg" {
		t.Errorf("first item URL = %q", first.MediaURL)
	}
	if first.SourceKind != domain.KindInstagram {
		t.Errorf("duplicate URL must keep the first occurrence, got kind %q", first.SourceKind)
	}
	if first.Title != "Golden hour #sunset #portrait" {
		t.Errorf("Title = %q", first.Title)
	}
	wantTags := []string{"sunset", "portrait", "golden light"}
	if !reflect.DeepEqual([]string(first.Tags), wantTags) {
		t.Errorf("Tags = %v, want %v", first.Tags, wantTags)
	}

	untitled := profile.Portfolio[2]
	if untitled.Title != "Website media" {
		t.Errorf("untitled item Title = %q, want %q", untitled.Title, "Website media")
	}
}

// TestExtractHashtags verifies hashtag extraction from captions
func TestExtractHashtags(t *testing.T) {
	testCases := []struct {
		caption string
		want    []string
	}{
		{"Golden hour #sunset #portrait", []string{"sunset", "portrait"}},
		{"no tags here", nil},
		{"#one#two", []string{"one", "two"}},
		{"", nil},
	}

	for _, tc := range testCases {
		got := extractHashtags(tc.caption)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("extractHashtags(%q) = %v, want %v", tc.caption, got, tc.want)
		}
	}
}
