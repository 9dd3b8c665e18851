package domain

import (
	"strings"
	"time"
)

// DefaultLocation is used when a caller does not say where an item lives.
const DefaultLocation = "pantry"

// ItemEntry is one (item, location) slot within an owner's record.
type ItemEntry struct {
	Name        string         `json:"name" bson:"name"`
	Quantity    int            `json:"quantity" bson:"quantity"`
	Location    string         `json:"location" bson:"location"`
	LastUpdated time.Time      `json:"lastUpdated" bson:"lastUpdated"`
	DisplayName string         `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Meta        map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Record is the complete inventory snapshot for one owner, keyed by EntryKey.
type Record map[string]ItemEntry

// OwnerInfo describes one stored record for administrative enumeration.
type OwnerInfo struct {
	OwnerID     string    `json:"ownerId"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// EntryKey derives the composite key for an item at a location. Derivation is
// case-insensitive, so "Eggs"/"Fridge" and "eggs"/"fridge" address the same entry.
func EntryKey(name, location string) string {
	if location == "" {
		location = DefaultLocation
	}
	return strings.ToLower(name) + "_" + strings.ToLower(location)
}

// Clone returns an independent copy of the record. Entry metadata is shared,
// not copied; it is treated as opaque and never mutated by this package.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
