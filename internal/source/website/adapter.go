package website

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/talentio/profilehub/internal/domain"
)

const (
	// maxImages caps how many page images become portfolio media.
	maxImages = 10
	// maxContentChars caps the free-text excerpt used for skill extraction.
	maxContentChars = 1000
)

var (
	titleRe = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	descRe  = regexp.MustCompile(`(?is)<meta\s+name="description"\s+content="(.*?)"`)
	imgRe   = regexp.MustCompile(`(?is)<img[^>]+src="([^"]+)"`)
	tagRe   = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Adapter fetches personal/portfolio websites over HTTP.
type Adapter struct {
	client *resty.Client
}

// NewAdapter creates a new website adapter.
// Parameters: none.
// Returns:
//   - *Adapter: initialized adapter with a shared HTTP client.
func NewAdapter() *Adapter {
	client := resty.New()
	client.SetHeader("User-Agent", "profilehub/1.0")
	return &Adapter{client: client}
}

// Kind returns the source kind this adapter handles.
func (a *Adapter) Kind() domain.SourceKind {
	return domain.KindWebsite
}

// DisplayName returns a human-readable name for this source.
func (a *Adapter) DisplayName() string {
	return "Personal Website"
}

// Fetch downloads the page at the reference locator and extracts title,
// description, free text, and images. Fetch or parse problems are reported
// through the record status, never as a panic or returned error.
func (a *Adapter) Fetch(ctx context.Context, ref domain.SourceReference) domain.SourceRecord {
	resp, err := a.client.R().SetContext(ctx).Get(ref.Locator)
	if err != nil {
		reason := domain.ReasonNetwork
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = domain.ReasonTimeout
		}
		return domain.FailedRecord(ref, reason)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return domain.FailedRecord(ref, fmt.Sprintf("%s: HTTP %d", domain.ReasonNetwork, resp.StatusCode()))
	}

	html := resp.String()

	rec := domain.SourceRecord{
		Kind:      ref.Kind,
		Locator:   ref.Locator,
		FetchedAt: time.Now(),
		Status:    domain.FetchOK,
		Bio:       extractDescription(html),
	}

	if title := extractTitle(html); title != "" {
		rec.Captions = append(rec.Captions, title)
	}
	if text := extractText(html); text != "" {
		rec.Captions = append(rec.Captions, text)
	}

	for _, imgURL := range extractImages(html, ref.Locator) {
		rec.Media = append(rec.Media, domain.MediaRef{
			URL:     imgURL,
			Caption: rec.Bio,
			Format:  formatFromURL(imgURL),
		})
	}

	if rec.Bio == "" && len(rec.Captions) == 0 && len(rec.Media) == 0 {
		return domain.FailedRecord(ref, domain.ReasonParse)
	}
	if rec.Bio == "" || len(rec.Media) == 0 {
		rec.Status = domain.FetchPartial
	}

	return rec
}

func extractTitle(html string) string {
	if m := titleRe.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractDescription(html string) string {
	if m := descRe.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractText strips markup and collapses whitespace into a short excerpt.
func extractText(html string) string {
	text := tagRe.ReplaceAllString(html, " ")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text
}

// extractImages resolves up to maxImages image URLs against the page URL.
func extractImages(html, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var images []string
	for _, m := range imgRe.FindAllStringSubmatch(html, -1) {
		if len(images) >= maxImages {
			break
		}
		src := strings.TrimSpace(m[1])
		switch {
		case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
			images = append(images, src)
		case strings.HasPrefix(src, "/") && base != nil:
			images = append(images, base.Scheme+"://"+base.Host+src)
		}
	}
	return images
}

func formatFromURL(imgURL string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(imgURL), "."))
	switch ext {
	case "jpg", "jpeg":
		return "jpeg"
	case "png", "gif", "webp":
		return ext
	default:
		return ""
	}
}
