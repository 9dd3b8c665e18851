package service

import (
	"strings"
	"testing"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
)

func TestApplyAdd_CreatesEntry(t *testing.T) {
	rec, msg := ApplyAdd(domain.Record{}, "carrots", 4, "fridge")

	entry, ok := rec["carrots_fridge"]
	if !ok {
		t.Fatal("expected carrots_fridge entry")
	}
	if entry.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", entry.Quantity)
	}
	if entry.Location != "fridge" {
		t.Errorf("expected location fridge, got %s", entry.Location)
	}
	if entry.LastUpdated.IsZero() {
		t.Error("expected lastUpdated to be stamped")
	}
	if !strings.Contains(msg, "4") || !strings.Contains(msg, "fridge") {
		t.Errorf("message should mention total and location: %q", msg)
	}
}

func TestApplyAdd_Accumulates(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "carrots", 3, "fridge")
	rec, _ = ApplyAdd(rec, "carrots", 2, "fridge")

	if got := rec["carrots_fridge"].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}
}

func TestApplyAdd_CaseInsensitiveKey(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "Carrots", 3, "Fridge")
	rec, _ = ApplyAdd(rec, "carrots", 2, "fridge")

	if len(rec) != 1 {
		t.Fatalf("expected one entry, got %d", len(rec))
	}
	if got := rec["carrots_fridge"].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}
}

func TestApplyAdd_DoesNotMutateInput(t *testing.T) {
	orig := domain.Record{}
	ApplyAdd(orig, "eggs", 2, "fridge")

	if len(orig) != 0 {
		t.Error("input record was mutated")
	}
}

func TestApplyAdd_ZeroQuantityDefaultsToOne(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "eggs", 0, "fridge")
	if got := rec["eggs_fridge"].Quantity; got != 1 {
		t.Errorf("expected quantity 1, got %d", got)
	}
}

func TestApplyAdd_NegativeQuantityDefaultsToOne(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "eggs", -5, "fridge")

	if got := rec["eggs_fridge"].Quantity; got != 1 {
		t.Errorf("expected quantity 1, got %d", got)
	}
	// A stored entry must never carry a non-positive quantity.
	for key, entry := range rec {
		if entry.Quantity <= 0 {
			t.Errorf("entry %s stored with non-positive quantity %d", key, entry.Quantity)
		}
	}
}

func TestApplyRemove_NegativeQuantityDefaultsToOne(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "eggs", 4, "fridge")

	rec, _, outcome := ApplyRemove(rec, "eggs", -3, "fridge")
	if outcome != RemoveDecremented {
		t.Fatalf("expected RemoveDecremented, got %v", outcome)
	}
	if got := rec["eggs_fridge"].Quantity; got != 3 {
		t.Errorf("negative removal must subtract 1, not add: got %d, want 3", got)
	}
}

func TestApplyAdd_DefaultLocation(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "rice", 2, "")
	entry, ok := rec["rice_"+domain.DefaultLocation]
	if !ok {
		t.Fatal("expected entry under default location")
	}
	if entry.Location != domain.DefaultLocation {
		t.Errorf("expected stored location %q, got %q", domain.DefaultLocation, entry.Location)
	}
}

func TestApplyAdd_DisplayName(t *testing.T) {
	rec, msg := ApplyAdd(domain.Record{}, "eggs", 2, "fridge")
	if rec["eggs_fridge"].DisplayName != "鸡蛋" {
		t.Errorf("expected display name, got %q", rec["eggs_fridge"].DisplayName)
	}
	if !strings.Contains(msg, "鸡蛋") {
		t.Errorf("message should carry the display name: %q", msg)
	}
}

func TestApplyRemove_DeletesOnExhaustion(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "carrots", 4, "fridge")

	rec, msg, outcome := ApplyRemove(rec, "carrots", 10, "fridge")
	if outcome != RemoveExhausted {
		t.Errorf("expected RemoveExhausted, got %v", outcome)
	}
	if _, ok := rec["carrots_fridge"]; ok {
		t.Error("entry should be deleted, not stored with negative quantity")
	}
	if !strings.Contains(msg, "out of") {
		t.Errorf("message should indicate exhaustion: %q", msg)
	}
}

func TestApplyRemove_ExactQuantityDeletes(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "carrots", 4, "fridge")

	rec, _, outcome := ApplyRemove(rec, "carrots", 4, "fridge")
	if outcome != RemoveExhausted {
		t.Errorf("expected RemoveExhausted, got %v", outcome)
	}
	if len(rec) != 0 {
		t.Error("expected empty record")
	}
}

func TestApplyRemove_Decrements(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "carrots", 4, "fridge")

	rec, msg, outcome := ApplyRemove(rec, "carrots", 1, "fridge")
	if outcome != RemoveDecremented {
		t.Errorf("expected RemoveDecremented, got %v", outcome)
	}
	if got := rec["carrots_fridge"].Quantity; got != 3 {
		t.Errorf("expected quantity 3, got %d", got)
	}
	if !strings.Contains(msg, "3") || !strings.Contains(msg, "remaining") {
		t.Errorf("message should report remaining count: %q", msg)
	}
}

func TestApplyRemove_MissingEntry(t *testing.T) {
	rec := domain.Record{}

	out, msg, outcome := ApplyRemove(rec, "bananas", 1, "fridge")
	if outcome != RemoveMissing {
		t.Errorf("expected RemoveMissing, got %v", outcome)
	}
	if len(out) != 0 {
		t.Error("record should be unchanged")
	}
	if msg == "" {
		t.Error("expected an already-empty message")
	}
}

func TestApplyQuery(t *testing.T) {
	rec, _ := ApplyAdd(domain.Record{}, "eggs", 5, "fridge")

	if got := ApplyQuery(rec, "EGGS", "Fridge"); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := ApplyQuery(domain.Record{}, "bananas", "fridge"); got != 0 {
		t.Errorf("absent entry should report 0, got %d", got)
	}
}
