package source

import (
	"reflect"
	"testing"

	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/source/mock"
)

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(
		mock.New(domain.KindLinkedIn, domain.SourceRecord{}),
		mock.New(domain.KindResume, domain.SourceRecord{}),
	)

	if _, ok := registry.Lookup(domain.KindLinkedIn); !ok {
		t.Error("registered adapter not found")
	}
	if _, ok := registry.Lookup(domain.KindWebsite); ok {
		t.Error("unregistered kind must not resolve")
	}
}

func TestRegistryKindsInPriorityOrder(t *testing.T) {
	registry := NewRegistry(
		mock.New(domain.KindResume, domain.SourceRecord{}),
		mock.New(domain.KindLinkedIn, domain.SourceRecord{}),
		mock.New(domain.KindInstagram, domain.SourceRecord{}),
	)

	want := []domain.SourceKind{domain.KindLinkedIn, domain.KindInstagram, domain.KindResume}
	if got := registry.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds = %v, want %v", got, want)
	}
}

func TestRegistryRegisterOverrides(t *testing.T) {
	first := mock.New(domain.KindWebsite, domain.SourceRecord{Name: "first"})
	second := mock.New(domain.KindWebsite, domain.SourceRecord{Name: "second"})

	registry := NewRegistry(first)
	registry.Register(second)

	adapter, ok := registry.Lookup(domain.KindWebsite)
	if !ok {
		t.Fatal("adapter not found")
	}
	if adapter != second {
		t.Error("later registration must replace the earlier adapter")
	}
}
