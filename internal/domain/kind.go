package domain

// SourceKind identifies the platform a source reference points at.
// Values include KindLinkedIn, KindInstagram, KindWebsite, and KindResume.
type SourceKind string

const (
	KindLinkedIn  SourceKind = "linkedin"
	KindInstagram SourceKind = "instagram"
	KindWebsite   SourceKind = "website"
	KindResume    SourceKind = "resume"
)

// KindPriority is the fixed precedence order used when sources disagree on
// a field. Lower index wins.
var KindPriority = []SourceKind{KindLinkedIn, KindInstagram, KindWebsite, KindResume}

// IsValid reports whether the kind is one of the supported source kinds.
// Parameters: none.
// Returns:
//   - bool: true for a supported kind.
func (k SourceKind) IsValid() bool {
	switch k {
	case KindLinkedIn, KindInstagram, KindWebsite, KindResume:
		return true
	}
	return false
}

// PriorityIndex returns the position of the kind in the fixed precedence
// order. Unknown kinds sort after all known ones.
// Parameters: none.
// Returns:
//   - int: precedence index, lower wins.
func (k SourceKind) PriorityIndex() int {
	for i, p := range KindPriority {
		if p == k {
			return i
		}
	}
	return len(KindPriority)
}
