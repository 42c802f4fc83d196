package domain

import (
	"reflect"
	"testing"
)

func TestStringArrayValueScan(t *testing.T) {
	testCases := []struct {
		name string
		in   StringArray
		want string
	}{
		{name: "nil encodes as empty array", in: nil, want: "[]"},
		{name: "values", in: StringArray{"Photography", "Go"}, want: `["Photography","Go"]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.in.Value()
			if err != nil {
				t.Fatalf("Value failed: %v", err)
			}
			if v.(string) != tc.want {
				t.Errorf("Value = %q, want %q", v, tc.want)
			}
		})
	}

	var out StringArray
	if err := out.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !reflect.DeepEqual(out, StringArray{"a", "b"}) {
		t.Errorf("Scan = %v", out)
	}

	if err := out.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Scan(nil) = %v, want empty", out)
	}

	if err := out.Scan(42); err == nil {
		t.Error("Scan(int) must fail")
	}
}

func TestLinkMapValueScan(t *testing.T) {
	in := LinkMap{KindLinkedIn: "https://linkedin.com/in/maya"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out LinkMap
	if err := out.Scan(v.(string)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}

	var empty LinkMap
	v, err = empty.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v.(string) != "{}" {
		t.Errorf("nil map Value = %q, want {}", v)
	}
}

func TestPortfolioListValueScan(t *testing.T) {
	in := PortfolioList{
		{
			Title:      "Golden hour",
			MediaType:  "image",
			MediaURL:   "https://cdn.example.com/a.jpg",
			Tags:       []string{"sunset"},
			SourceKind: KindInstagram,
		},
	}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out PortfolioList
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestSourceKindPriority(t *testing.T) {
	if domainLen := len(KindPriority); domainLen != 4 {
		t.Fatalf("KindPriority has %d kinds", domainLen)
	}
	if KindLinkedIn.PriorityIndex() >= KindInstagram.PriorityIndex() {
		t.Error("linkedin must outrank instagram")
	}
	if KindInstagram.PriorityIndex() >= KindWebsite.PriorityIndex() {
		t.Error("instagram must outrank website")
	}
	if KindWebsite.PriorityIndex() >= KindResume.PriorityIndex() {
		t.Error("website must outrank resume")
	}
	if got := SourceKind("myspace").PriorityIndex(); got != len(KindPriority) {
		t.Errorf("unknown kind index = %d, want %d", got, len(KindPriority))
	}
	if SourceKind("myspace").IsValid() {
		t.Error("unknown kind must be invalid")
	}
}

func TestSourceRecordUsable(t *testing.T) {
	testCases := []struct {
		name string
		rec  SourceRecord
		want bool
	}{
		{name: "empty", rec: SourceRecord{Status: FetchOK}, want: false},
		{name: "failed with data", rec: SourceRecord{Status: FetchFailed, Name: "Maya"}, want: false},
		{name: "name only", rec: SourceRecord{Status: FetchOK, Name: "Maya"}, want: true},
		{name: "media only", rec: SourceRecord{Status: FetchPartial, Media: []MediaRef{{URL: "x"}}}, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.Usable(); got != tc.want {
				t.Errorf("Usable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTextFragments(t *testing.T) {
	rec := SourceRecord{
		Bio:        "Shoots portraits.",
		Captions:   []string{"Golden hour"},
		Experience: []string{"5 years freelance"},
		Education:  []string{"BFA Photography"},
	}
	want := []string{"Shoots portraits.", "Golden hour", "5 years freelance", "BFA Photography"}
	if got := rec.TextFragments(); !reflect.DeepEqual(got, want) {
		t.Errorf("TextFragments = %v, want %v", got, want)
	}
}
