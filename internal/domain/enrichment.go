package domain

// EnrichmentKind identifies which enrichment operation produced a result.
// Values include EnrichSkills, EnrichBio, and EnrichImageTags.
type EnrichmentKind string

const (
	EnrichSkills    EnrichmentKind = "skills"
	EnrichBio       EnrichmentKind = "bio"
	EnrichImageTags EnrichmentKind = "image_tags"
)

// EnrichmentStatus represents the outcome of one enrichment call.
type EnrichmentStatus string

const (
	EnrichOK     EnrichmentStatus = "ok"
	EnrichFailed EnrichmentStatus = "failed"
)

// EnrichmentResult is the output of one enrichment call, tagged with the
// source record it derived from. Like SourceRecord it exists only within
// one build and is never persisted.
type EnrichmentResult struct {
	Kind       EnrichmentKind
	SourceKind SourceKind
	Locator    string // locator of the originating record, empty for bio results
	MediaURL   string // set for image_tags results
	Skills     []string
	Bio        string
	Tags       []string
	Status     EnrichmentStatus
	Reason     string
}
