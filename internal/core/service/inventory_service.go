package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

var (
	ErrItemRequired = errors.New("item is required")
	ErrItemNotFound = errors.New("item not found")
)

// InventoryService runs the load -> mutate -> save cycle for one owner per
// call. There is no cross-request locking: two concurrent cycles against the
// same owner race and the second save wins. Accepted for this workload.
type InventoryService struct {
	store port.DocumentStore
}

func NewInventoryService(store port.DocumentStore) *InventoryService {
	return &InventoryService{store: store}
}

// Add records quantity of an item at a location and returns the outcome
// message plus the entry as stored.
func (s *InventoryService) Add(ctx context.Context, ownerID, item string, quantity int, location string) (string, domain.ItemEntry, error) {
	if item == "" {
		return "", domain.ItemEntry{}, ErrItemRequired
	}

	rec, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return "", domain.ItemEntry{}, fmt.Errorf("load record: %w", err)
	}

	rec, msg := ApplyAdd(rec, item, quantity, location)
	if err := s.store.Save(ctx, ownerID, rec); err != nil {
		return "", domain.ItemEntry{}, fmt.Errorf("save record: %w", err)
	}

	return msg, rec[domain.EntryKey(item, location)], nil
}

// Remove subtracts quantity of an item at a location. Removing an item that
// is not stored returns ErrItemNotFound along with the spoken message, so the
// voice path can still say something useful.
func (s *InventoryService) Remove(ctx context.Context, ownerID, item string, quantity int, location string) (string, error) {
	if item == "" {
		return "", ErrItemRequired
	}

	rec, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("load record: %w", err)
	}

	rec, msg, outcome := ApplyRemove(rec, item, quantity, location)
	if outcome == RemoveMissing {
		return msg, ErrItemNotFound
	}

	if err := s.store.Save(ctx, ownerID, rec); err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}
	return msg, nil
}

// Record returns the owner's whole inventory; unknown owners get an empty one.
func (s *InventoryService) Record(ctx context.Context, ownerID string) (domain.Record, error) {
	rec, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return rec, nil
}

// Item returns the entry for (item, location) and whether it is stored.
func (s *InventoryService) Item(ctx context.Context, ownerID, item, location string) (domain.ItemEntry, bool, error) {
	rec, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return domain.ItemEntry{}, false, fmt.Errorf("load record: %w", err)
	}
	entry, ok := rec[domain.EntryKey(item, location)]
	return entry, ok, nil
}

// Quantity reports how many of an item are stored at a location; zero when
// absent.
func (s *InventoryService) Quantity(ctx context.Context, ownerID, item, location string) (int, error) {
	rec, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("load record: %w", err)
	}
	return ApplyQuery(rec, item, location), nil
}

// Owners enumerates stored records for the admin surface.
func (s *InventoryService) Owners(ctx context.Context) ([]domain.OwnerInfo, error) {
	owners, err := s.store.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

// DeleteOwner removes an owner's record entirely.
func (s *InventoryService) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	deleted, err := s.store.DeleteOwner(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete owner: %w", err)
	}
	return deleted, nil
}
