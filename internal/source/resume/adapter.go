package resume

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/storage"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?m)Phone:\s*([^\n]+)`)
)

// Adapter parses plain-text resume documents. The locator is an object
// storage key (uploaded via the API) or a local file path.
type Adapter struct {
	storage storage.ObjectStorage
}

// NewAdapter creates a new resume adapter.
// Parameters:
//   - store: object storage holding uploaded resumes; may be nil for
//     local-path-only use.
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(store storage.ObjectStorage) *Adapter {
	return &Adapter{storage: store}
}

// Kind returns the source kind this adapter handles.
func (a *Adapter) Kind() domain.SourceKind {
	return domain.KindResume
}

// DisplayName returns a human-readable name for this source.
func (a *Adapter) DisplayName() string {
	return "Resume"
}

// Fetch reads the resume document and extracts contact details, experience
// lines, and a skills list.
func (a *Adapter) Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	data, err := a.read(ctx, ref.Locator)
	if err != nil {
		reason := domain.ReasonNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			reason = domain.ReasonTimeout
		}
		return domain.FailedRecord(ref, reason)
	}

	// Only plain-text resumes are parsed here; binary formats need a
	// document-conversion step upstream.
	if bytes.HasPrefix(data, []byte("%PDF")) || bytes.Contains(data[:min(len(data), 512)], []byte{0}) {
		return domain.FailedRecord(ref, domain.ReasonUnsupported)
	}

	rec := parse(string(data))
	rec.Kind = ref.Kind
	rec.Locator = ref.Locator
	rec.FetchedAt = time.Now()

	if !rec.Usable() {
		return domain.FailedRecord(ref, domain.ReasonParse)
	}
	return rec
}

func (a *Adapter) read(ctx context.Context, locator string) ([]byte, error) {
	if a.storage != nil {
		if ok, err := a.storage.Exists(ctx, locator); err == nil && ok {
			r, err := a.storage.Download(ctx, locator)
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		}
	}
	return os.ReadFile(locator)
}

// parse extracts structured fields from resume text. The expected layout is
// a name header (optionally "Name - Profession"), Email:/Phone: lines, an
// Experience: section of bullet lines, and a Skills: line.
func parse(text string) domain.SourceRecord {
	rec := domain.SourceRecord{Status: domain.FetchOK}

	lines := strings.Split(text, "\n")
	inExperience := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case rec.Name == "" && !strings.Contains(line, ":"):
			// First plain line is the header.
			if name, prof, found := strings.Cut(line, " - "); found {
				rec.Name = strings.TrimSpace(name)
				rec.Profession = strings.TrimSpace(prof)
			} else {
				rec.Name = line
			}
		case strings.HasPrefix(lower, "email:"):
			if m := emailRe.FindString(line); m != "" {
				rec.Email = m
			}
		case strings.HasPrefix(lower, "phone:"):
			if m := phoneRe.FindStringSubmatch(line); m != nil {
				rec.Phone = strings.TrimSpace(m[1])
			}
		case strings.HasPrefix(lower, "location:"):
			rec.Location = strings.TrimSpace(line[len("location:"):])
		case strings.HasPrefix(lower, "experience"):
			inExperience = true
		case strings.HasPrefix(lower, "education"):
			inExperience = false
		case strings.HasPrefix(lower, "skills:"):
			inExperience = false
			for _, s := range strings.Split(line[len("skills:"):], ",") {
				if s = strings.TrimSpace(s); s != "" {
					rec.Skills = append(rec.Skills, s)
				}
			}
		case strings.HasPrefix(line, "-"):
			entry := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if inExperience {
				rec.Experience = append(rec.Experience, entry)
			} else {
				rec.Education = append(rec.Education, entry)
			}
		}
	}

	// Fall back to a bare email anywhere in the document.
	if rec.Email == "" {
		rec.Email = emailRe.FindString(text)
	}

	if rec.Name != "" && rec.Email == "" && len(rec.Experience) == 0 && len(rec.Skills) == 0 {
		rec.Status = domain.FetchPartial
	}
	return rec
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
