package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
)

func TestMemory_LoadUnknownOwner(t *testing.T) {
	m := NewMemoryAdapter()

	rec, err := m.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil || len(rec) != 0 {
		t.Errorf("expected empty record, got %v", rec)
	}
}

func TestMemory_SaveLoadRoundtrip(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	in := domain.Record{"eggs_fridge": {Name: "eggs", Quantity: 5, Location: "fridge"}}
	if err := m.Save(ctx, "alice", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := m.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out["eggs_fridge"].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", out["eggs_fridge"].Quantity)
	}
}

func TestMemory_LoadReturnsCopy(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	m.Save(ctx, "alice", domain.Record{"eggs_fridge": {Name: "eggs", Quantity: 5}})

	out, _ := m.Load(ctx, "alice")
	entry := out["eggs_fridge"]
	entry.Quantity = 99
	out["eggs_fridge"] = entry

	again, _ := m.Load(ctx, "alice")
	if again["eggs_fridge"].Quantity != 5 {
		t.Error("caller mutation leaked into the store")
	}
}

func TestMemory_NilRecordNormalizes(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	if err := m.Save(ctx, "alice", nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	rec, _ := m.Load(ctx, "alice")
	if rec == nil || len(rec) != 0 {
		t.Errorf("expected empty record, got %v", rec)
	}
}

func TestMemory_PathologicalOwnerIDs(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	ids := []string{
		`{"$gt": ""}`,
		"'; DROP TABLE inventory_records; --",
		strings.Repeat("x", 1<<16),
		"owner\x00with\x01controls",
	}

	for _, id := range ids {
		if err := m.Save(ctx, id, domain.Record{"a_b": {Name: "a", Quantity: 1}}); err != nil {
			t.Errorf("Save(%.20q) failed: %v", id, err)
		}
		rec, err := m.Load(ctx, id)
		if err != nil || rec["a_b"].Quantity != 1 {
			t.Errorf("Load(%.20q) = %v, %v", id, rec, err)
		}
	}
}

func TestMemory_ListAndDelete(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	m.Save(ctx, "alice", domain.Record{})
	m.Save(ctx, "bob", domain.Record{})

	owners, err := m.ListOwners(ctx)
	if err != nil {
		t.Fatalf("ListOwners failed: %v", err)
	}
	if len(owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(owners))
	}
	for _, o := range owners {
		if o.LastUpdated.IsZero() {
			t.Errorf("owner %s missing lastUpdated", o.OwnerID)
		}
	}

	deleted, _ := m.DeleteOwner(ctx, "alice")
	if !deleted {
		t.Error("expected delete to report true")
	}
	deleted, _ = m.DeleteOwner(ctx, "alice")
	if deleted {
		t.Error("expected second delete to report false")
	}

	owners, _ = m.ListOwners(ctx)
	if len(owners) != 1 || owners[0].OwnerID != "bob" {
		t.Errorf("unexpected owners after delete: %v", owners)
	}
}
