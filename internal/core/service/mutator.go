package service

import (
	"fmt"
	"time"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
)

// RemoveOutcome classifies what a removal did to the record.
type RemoveOutcome int

const (
	// RemoveMissing means no entry existed for the item and location.
	RemoveMissing RemoveOutcome = iota
	// RemoveExhausted means the removal emptied the entry and it was deleted.
	RemoveExhausted
	// RemoveDecremented means the entry remains with a reduced quantity.
	RemoveDecremented
)

// ApplyAdd accumulates quantity onto the entry for (name, location), creating
// it if absent. The input record is not mutated. Quantities that arrive
// non-positive (unparseable or negative input upstream) are treated as 1, so
// an add can never drive a stored quantity to zero or below.
func ApplyAdd(rec domain.Record, name string, quantity int, location string) (domain.Record, string) {
	if location == "" {
		location = domain.DefaultLocation
	}
	if quantity <= 0 {
		quantity = 1
	}

	out := rec.Clone()
	key := domain.EntryKey(name, location)
	entry, ok := out[key]
	if !ok {
		entry = domain.ItemEntry{
			Name:        name,
			Location:    location,
			DisplayName: domain.DisplayName(name),
		}
	}
	entry.Quantity += quantity
	entry.LastUpdated = time.Now()
	out[key] = entry

	return out, fmt.Sprintf("You now have %d %s in the %s.", entry.Quantity, spoken(entry), location)
}

// ApplyRemove subtracts quantity from the entry for (name, location). Removing
// from an absent entry reports RemoveMissing without touching the record;
// removing the entry's full quantity or more deletes it outright, so a stored
// quantity is never zero or negative.
func ApplyRemove(rec domain.Record, name string, quantity int, location string) (domain.Record, string, RemoveOutcome) {
	if location == "" {
		location = domain.DefaultLocation
	}
	if quantity <= 0 {
		quantity = 1
	}

	key := domain.EntryKey(name, location)
	entry, ok := rec[key]
	if !ok {
		return rec, fmt.Sprintf("You don't have any %s in the %s.", name, location), RemoveMissing
	}

	out := rec.Clone()
	remaining := entry.Quantity - quantity
	if remaining <= 0 {
		delete(out, key)
		return out, fmt.Sprintf("You are now out of %s in the %s.", spoken(entry), location), RemoveExhausted
	}

	entry.Quantity = remaining
	entry.LastUpdated = time.Now()
	out[key] = entry
	return out, fmt.Sprintf("You have %d %s remaining in the %s.", remaining, spoken(entry), location), RemoveDecremented
}

// ApplyQuery reports the quantity stored for (name, location); absent entries
// count as zero.
func ApplyQuery(rec domain.Record, name, location string) int {
	entry, ok := rec[domain.EntryKey(name, location)]
	if !ok {
		return 0
	}
	return entry.Quantity
}

func spoken(entry domain.ItemEntry) string {
	if entry.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", entry.Name, entry.DisplayName)
	}
	return entry.Name
}
