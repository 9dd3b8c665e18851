package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
)

func getMongoAdapter(t *testing.T) *MongoAdapter {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	adapter := NewMongoAdapter(uri, "inventory_test")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := adapter.Connect(ctx); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	return adapter
}

func TestMongo_SaveLoadRoundtrip(t *testing.T) {
	adapter := getMongoAdapter(t)
	defer adapter.Disconnect(context.Background())

	ctx := context.Background()
	owner := "mongo-test-owner"
	defer adapter.DeleteOwner(ctx, owner)

	rec := domain.Record{"eggs_fridge": {Name: "eggs", Quantity: 5, Location: "fridge", DisplayName: "鸡蛋"}}
	if err := adapter.Save(ctx, owner, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := adapter.Load(ctx, owner)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entry := out["eggs_fridge"]
	if entry.Quantity != 5 || entry.DisplayName != "鸡蛋" {
		t.Errorf("round-trip mangled entry: %+v", entry)
	}
}

func TestMongo_UpsertReplaces(t *testing.T) {
	adapter := getMongoAdapter(t)
	defer adapter.Disconnect(context.Background())

	ctx := context.Background()
	owner := "mongo-upsert-owner"
	defer adapter.DeleteOwner(ctx, owner)

	adapter.Save(ctx, owner, domain.Record{
		"eggs_fridge": {Name: "eggs", Quantity: 5},
		"milk_fridge": {Name: "milk", Quantity: 1},
	})
	adapter.Save(ctx, owner, domain.Record{
		"eggs_fridge": {Name: "eggs", Quantity: 2},
	})

	out, err := adapter.Load(ctx, owner)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 1 || out["eggs_fridge"].Quantity != 2 {
		t.Errorf("save should replace the whole document: %v", out)
	}
}

func TestMongo_LoadUnknownOwner(t *testing.T) {
	adapter := getMongoAdapter(t)
	defer adapter.Disconnect(context.Background())

	out, err := adapter.Load(context.Background(), "mongo-no-such-owner")
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty record, got %v", out)
	}
}

func TestMongo_OpaqueOwnerIDs(t *testing.T) {
	adapter := getMongoAdapter(t)
	defer adapter.Disconnect(context.Background())

	ctx := context.Background()
	// Injection-shaped ids must be matched as literal strings, not operators.
	owner := `{"$gt": ""}`
	defer adapter.DeleteOwner(ctx, owner)

	if err := adapter.Save(ctx, owner, domain.Record{"a_b": {Name: "a", Quantity: 1}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := adapter.Load(ctx, owner)
	if err != nil || out["a_b"].Quantity != 1 {
		t.Errorf("Load = %v, %v", out, err)
	}

	other, err := adapter.Load(ctx, "mongo-unrelated-owner")
	if err != nil || len(other) != 0 {
		t.Errorf("hostile id leaked into another owner's read: %v, %v", other, err)
	}
}

func TestMongo_ListOwners(t *testing.T) {
	adapter := getMongoAdapter(t)
	defer adapter.Disconnect(context.Background())

	ctx := context.Background()
	owner := "mongo-list-owner"
	defer adapter.DeleteOwner(ctx, owner)

	adapter.Save(ctx, owner, domain.Record{})

	owners, err := adapter.ListOwners(ctx)
	if err != nil {
		t.Fatalf("ListOwners failed: %v", err)
	}

	found := false
	for _, o := range owners {
		if o.OwnerID == owner {
			found = true
		}
	}
	if !found {
		t.Errorf("owner %s not enumerated", owner)
	}
}
