package resume

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/storage"
)

const sampleResume = `Maya Chen - Photographer
Email: maya@example.com
Phone: +1 555 0100
Location: Brooklyn, NY

Experience:
- Freelance portrait photographer, 5 years
- Studio assistant at Lumen Studio

Education:
- BFA Photography, Pratt Institute

Skills: Photography, Lightroom, Photoshop
`

func uploadResume(t *testing.T, store storage.ObjectStorage, key, content string) {
	t.Helper()
	err := store.Upload(context.Background(), key, strings.NewReader(content), int64(len(content)), "text/plain")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
}

func TestFetchParsesStoredResume(t *testing.T) {
	store := storage.NewMemoryStorage()
	uploadResume(t, store, "resumes/maya.txt", sampleResume)

	rec := NewAdapter(store).Fetch(context.Background(), domain.SourceReference{
		Kind:    domain.KindResume,
		Locator: "resumes/maya.txt",
	})

	if rec.Status != domain.FetchOK {
		t.Fatalf("Status = %q, reason %q", rec.Status, rec.Reason)
	}
	if rec.Name != "Maya Chen" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Profession != "Photographer" {
		t.Errorf("Profession = %q", rec.Profession)
	}
	if rec.Email != "maya@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}
	if rec.Phone != "+1 555 0100" {
		t.Errorf("Phone = %q", rec.Phone)
	}
	if rec.Location != "Brooklyn, NY" {
		t.Errorf("Location = %q", rec.Location)
	}
	wantExp := []string{
		"Freelance portrait photographer, 5 years",
		"Studio assistant at Lumen Studio",
	}
	if !reflect.DeepEqual(rec.Experience, wantExp) {
		t.Errorf("Experience = %v, want %v", rec.Experience, wantExp)
	}
	wantEdu := []string{"BFA Photography, Pratt Institute"}
	if !reflect.DeepEqual(rec.Education, wantEdu) {
		t.Errorf("Education = %v, want %v", rec.Education, wantEdu)
	}
	wantSkills := []string{"Photography", "Lightroom", "Photoshop"}
	if !reflect.DeepEqual(rec.Skills, wantSkills) {
		t.Errorf("Skills = %v, want %v", rec.Skills, wantSkills)
	}
}

func TestFetchFailsOnMissingDocument(t *testing.T) {
	rec := NewAdapter(storage.NewMemoryStorage()).Fetch(context.Background(), domain.SourceReference{
		Kind:    domain.KindResume,
		Locator: "resumes/nope.txt",
	})

	if rec.Status != domain.FetchFailed {
		t.Errorf("Status = %q, want failed for a missing document", rec.Status)
	}
}

func TestFetchRejectsBinaryDocuments(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "pdf", content: "%PDF-1.7 binary payload"},
		{name: "embedded nul", content: "Maya\x00Chen"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			uploadResume(t, store, "resumes/doc", tc.content)

			rec := NewAdapter(store).Fetch(context.Background(), domain.SourceReference{
				Kind:    domain.KindResume,
				Locator: "resumes/doc",
			})

			if rec.Status != domain.FetchFailed {
				t.Fatalf("Status = %q, want failed", rec.Status)
			}
			if rec.Reason != domain.ReasonUnsupported {
				t.Errorf("Reason = %q, want %q", rec.Reason, domain.ReasonUnsupported)
			}
		})
	}
}

func TestParseBareEmailFallback(t *testing.T) {
	rec := parse("Maya Chen\nReach me at maya@example.com anytime.")
	if rec.Email != "maya@example.com" {
		t.Errorf("Email = %q, want fallback extraction", rec.Email)
	}
}

func TestParseNameOnlyIsPartial(t *testing.T) {
	rec := parse("Maya Chen")
	if rec.Status != domain.FetchPartial {
		t.Errorf("Status = %q, want partial for a name-only resume", rec.Status)
	}
	if rec.Name != "Maya Chen" {
		t.Errorf("Name = %q", rec.Name)
	}
}
