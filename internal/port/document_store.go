package port

import (
	"context"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
)

type DocumentStore interface {
	// Connect establishes the backing connection. Idempotent: calling it while
	// already connected is a no-op.
	Connect(ctx context.Context) error

	// Disconnect releases the connection; safe when already disconnected.
	Disconnect(ctx context.Context) error

	// Load returns the owner's record, or an empty record when none exists.
	// Absence is not an error.
	Load(ctx context.Context, ownerID string) (domain.Record, error)

	// Save replaces the owner's stored record in one upsert and stamps the
	// store-level last-updated time. A nil record is stored as empty.
	Save(ctx context.Context, ownerID string, record domain.Record) error

	// ListOwners enumerates stored records, unordered.
	ListOwners(ctx context.Context) ([]domain.OwnerInfo, error)

	// DeleteOwner removes the owner's record entirely, reporting whether
	// anything was deleted.
	DeleteOwner(ctx context.Context, ownerID string) (bool, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
