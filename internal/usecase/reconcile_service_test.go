package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/shelfsync/backend/internal/domain"
)

func TestCompare_VerifiedCodeMatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	idx := newFakeIndex()
	idx.addIndexed(domain.CandidateRecord{
		ID: "c1", Code: "012345678905", Name: "Organic Whole Milk", Brand: "DairyCo",
	})

	t.Run("clean match at full confidence", func(t *testing.T) {
		got := svc.Compare(ctx, domain.ImportedRecord{Code: "012345678905", Name: "Organic Whole Milk"}, idx)

		if got.Status != domain.StatusMatched {
			t.Errorf("status = %q, want %q", got.Status, domain.StatusMatched)
		}
		if got.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", got.Confidence)
		}
		if got.UsedSecondary {
			t.Error("UsedSecondary = true, want false for a code match")
		}
		if len(got.Discrepancies) != 0 {
			t.Errorf("discrepancies = %+v, want none", got.Discrepancies)
		}
	})

	t.Run("discrepancies stay informational at full confidence", func(t *testing.T) {
		got := svc.Compare(ctx, domain.ImportedRecord{Code: "012345678905", Name: "Sparkling Water"}, idx)

		if got.Status != domain.StatusMatched {
			t.Errorf("status = %q, want %q despite the name difference", got.Status, domain.StatusMatched)
		}
		if got.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0 despite the name difference", got.Confidence)
		}
		if len(got.Discrepancies) != 1 || got.Discrepancies[0].Field != domain.FieldName {
			t.Errorf("discrepancies = %+v, want the name difference recorded", got.Discrepancies)
		}
	})
}

func TestCompare_DiscrepancyDowngradesBelowCertainty(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	idx := newFakeIndex()
	idx.addIndexed(domain.CandidateRecord{
		ID: "c1", Name: "Organic Whole Milk", Brand: "DairyCo",
	})

	got := svc.Compare(ctx, domain.ImportedRecord{Name: "Organic Whole Milk", Brand: "BubbleCo"}, idx)

	if got.Status != domain.StatusDiscrepancy {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusDiscrepancy)
	}
	// 0.85 name-exact minus one field penalty
	if got.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", got.Confidence)
	}
	if len(got.Discrepancies) != 1 || got.Discrepancies[0].Field != domain.FieldBrand {
		t.Errorf("discrepancies = %+v, want the brand difference recorded", got.Discrepancies)
	}
}

func TestCompare_PenaltyFloorsAtMinimum(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.DiscrepancyPenalty = 0.5
	svc := NewReconcileService(cfg, nil, nil)
	ctx := context.Background()

	idx := newFakeIndex()
	idx.addIndexed(domain.CandidateRecord{
		ID: "c1", Name: "Organic Whole Milk", Brand: "DairyCo", Category: "Dairy",
	})

	got := svc.Compare(ctx, domain.ImportedRecord{
		Name: "Organic Whole Milk", Brand: "BubbleCo", Category: "Beverages",
	}, idx)

	if got.Status != domain.StatusDiscrepancy {
		t.Fatalf("status = %q, want %q", got.Status, domain.StatusDiscrepancy)
	}
	if got.Confidence != cfg.ConfidenceFloor {
		t.Errorf("confidence = %v, want the floor %v", got.Confidence, cfg.ConfidenceFloor)
	}
}

func TestCompare_Unmatched(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	idx := newFakeIndex()
	idx.addIndexed(domain.CandidateRecord{ID: "c1", Code: "4006381333931", Name: "Ballpoint Pen"})

	got := svc.Compare(ctx, domain.ImportedRecord{Code: "012345678905", Name: "Sparkling Water"}, idx)

	if got.Status != domain.StatusUnmatched {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusUnmatched)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", got.Confidence)
	}
	if got.Candidate != nil {
		t.Errorf("candidate = %+v, want nil", got.Candidate)
	}
}

func TestCompare_RecoversFromPanic(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	got := svc.Compare(ctx, domain.ImportedRecord{Code: "012345678905", Name: "Sparkling Water"}, panickingIndex{})

	if got == nil {
		t.Fatal("Compare returned nil, want an error result")
	}
	if got.Status != domain.StatusError {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusError)
	}
	if !strings.Contains(got.FailureReason, "index corrupted") {
		t.Errorf("failure reason = %q, want the panic value included", got.FailureReason)
	}
}

func TestCompare_MultipleMatchesOutranksDiscrepancy(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	idx := newFakeIndex()
	idx.add(domain.CandidateRecord{
		ID: "c1", Name: "Acme Crunchy Peanut Butter", Brand: "Acme",
		Category: "Spreads", Quantity: "454 g", Allergens: []string{"peanuts"},
	})
	idx.add(domain.CandidateRecord{
		ID: "c2", Name: "Acme Crunchy Peanut Butter", Brand: "Acme",
		Category: "Spreads", Quantity: "454 g", Allergens: []string{"peanuts"},
	})

	got := svc.Compare(ctx, domain.ImportedRecord{
		Name: "Acme Crunchy Peanut Butter", Brand: "Acme", Category: "Spreads",
		QuantityValue: 16, QuantityUnit: "oz", Allergens: []string{"soy"},
	}, idx)

	if got.Status != domain.StatusMultipleMatches {
		t.Errorf("status = %q, want %q even with a discrepant field", got.Status, domain.StatusMultipleMatches)
	}
	if len(got.Discrepancies) != 1 || got.Discrepancies[0].Field != domain.FieldAllergens {
		t.Errorf("discrepancies = %+v, want the allergen difference recorded", got.Discrepancies)
	}
	// the penalty still applies even though the status is not Discrepancy
	if got.Confidence >= 0.99 {
		t.Errorf("confidence = %v, want penalized below the raw score", got.Confidence)
	}
}

func TestCompare_SecondaryEngagement(t *testing.T) {
	normalizer := &fakeNormalizer{result: "organic whole milk"}
	svc := NewReconcileService(DefaultMatchConfig(), normalizer, nil)
	ctx := context.Background()

	idx := newFakeIndex()
	want := idx.add(domain.CandidateRecord{ID: "c1", Name: "Organic Whole Milk"})

	got := svc.Compare(ctx, domain.ImportedRecord{Name: "Organic Whole Milk, 1 Gallon"}, idx)

	if got.Status != domain.StatusMatched {
		t.Fatalf("status = %q, want %q", got.Status, domain.StatusMatched)
	}
	if got.Candidate != want {
		t.Errorf("candidate = %+v, want c1", got.Candidate)
	}
	if !got.UsedSecondary {
		t.Error("UsedSecondary = false, want true")
	}
	if got.SecondaryStrategy != "name-brand" {
		t.Errorf("strategy = %q, want name-brand", got.SecondaryStrategy)
	}
}

func TestCompare_NormalizationIsCached(t *testing.T) {
	normalizer := &fakeNormalizer{result: "organic whole milk"}
	svc := NewReconcileService(DefaultMatchConfig(), normalizer, newFakeCache())
	ctx := context.Background()

	idx := newFakeIndex()
	idx.add(domain.CandidateRecord{ID: "c1", Name: "Organic Whole Milk"})

	imported := domain.ImportedRecord{Name: "Organic Whole Milk, 1 Gallon"}
	svc.Compare(ctx, imported, idx)
	svc.Compare(ctx, imported, idx)

	if normalizer.calls != 1 {
		t.Errorf("collaborator calls = %d, want 1 with a warm cache", normalizer.calls)
	}
}
