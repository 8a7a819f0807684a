package service

import (
	"testing"

	"persona-insight/internal/domain"
)

func vec(o, c, e, a, n float64) domain.TraitVector {
	return domain.NewTraitVector([domain.TraitCount]float64{o, c, e, a, n})
}

func TestAverageOfZeroVectorsIsZero(t *testing.T) {
	batch := domain.BatchResult{Items: make([]domain.ScoredRecord, 4)}
	if got := Average(batch); !got.IsZero() {
		t.Fatalf("expected zero vector, got %+v", got)
	}
	if got := AverageTraits(nil); !got.IsZero() {
		t.Fatalf("expected zero vector for empty batch, got %+v", got)
	}
}

func TestAverageIncludesZeroVectors(t *testing.T) {
	got := AverageTraits([]domain.TraitVector{vec(0.2, 0.4, 0.6, 0.8, 1), vec(0.4, 0.4, 0.4, 0.4, 0.4), domain.ZeroTraits()})
	want := vec(0.2, 0.27, 0.33, 0.4, 0.47)
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCompareReportsLeaderPerTrait(t *testing.T) {
	linkedin := vec(0.9, 0.5, 0.2, 0.4, 0.1)
	github := vec(0.3, 0.6, 0.2, 0.1, 0.5)

	res := Compare(linkedin, github, domain.SourceLinkedIn, domain.SourceGitHub)

	if len(res.Traits) != domain.TraitCount {
		t.Fatalf("expected %d traits, got %d", domain.TraitCount, len(res.Traits))
	}
	if res.Traits[0].Trait != domain.TraitOpenness || res.Traits[0].Leader != domain.SourceLinkedIn {
		t.Fatalf("expected LinkedIn to lead Openness, got %+v", res.Traits[0])
	}
	if leader, ok := res.Leader(domain.TraitConscientiousness); !ok || leader != domain.SourceGitHub {
		t.Fatalf("expected GitHub to lead Conscientiousness")
	}
	if leader, _ := res.Leader(domain.TraitExtraversion); leader != domain.SourceLinkedIn {
		t.Fatalf("expected tie to go to LinkedIn")
	}
	if res.DominantA != (domain.DominantTrait{Trait: domain.TraitOpenness, Score: 0.9}) {
		t.Fatalf("unexpected LinkedIn dominant: %+v", res.DominantA)
	}
	if res.DominantB != (domain.DominantTrait{Trait: domain.TraitConscientiousness, Score: 0.6}) {
		t.Fatalf("unexpected GitHub dominant: %+v", res.DominantB)
	}
}

func TestDominantPrefersFirstOnTie(t *testing.T) {
	if got := Dominant(domain.ZeroTraits()); got.Trait != domain.TraitOpenness {
		t.Fatalf("expected Openness for all-zero vector, got %s", got.Trait)
	}
	if got := Dominant(vec(0.1, 0.7, 0.7, 0.2, 0.7)); got.Trait != domain.TraitConscientiousness {
		t.Fatalf("expected Conscientiousness, got %s", got.Trait)
	}
}
