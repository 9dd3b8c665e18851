package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/metrics"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

// ErrNotConfigured is returned by Connect when no primary store was configured.
// The failover store still serves from memory in that state.
var ErrNotConfigured = errors.New("no primary store configured")

// connectTimeout bounds every primary connection attempt so an unreachable
// store cannot hang request processing.
const connectTimeout = 5 * time.Second

// BackendState is the failover state machine's position. Transitions happen
// only on Connect, Disconnect, and primary-failure events.
type BackendState int

const (
	StateDisconnected BackendState = iota
	StateConnected
	StateDegraded
)

func (s BackendState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDegraded:
		return "degraded"
	default:
		return "disconnected"
	}
}

var _ port.DocumentStore = (*Failover)(nil)

// Failover serves reads and writes from the primary store while it is
// reachable and degrades to the in-process secondary when it is not. A failed
// primary save is written to the secondary and reported as success; the
// degradation shows up in logs, metrics, and the health endpoint instead of
// the request path. Availability over durability: losing the memory store on
// restart beats refusing service.
type Failover struct {
	primary   port.DocumentStore
	secondary *MemoryAdapter

	mu    sync.Mutex
	state BackendState
}

func NewFailover(primary port.DocumentStore) *Failover {
	f := &Failover{
		primary:   primary,
		secondary: NewMemoryAdapter(),
		state:     StateDisconnected,
	}
	metrics.SetBackendState(int(StateDisconnected))
	return f
}

// Connect attempts the primary connection. Idempotent while connected. On
// failure the store enters Degraded and the error is returned to this caller
// only; request paths keep working against the secondary. The dial happens
// outside the state lock so CurrentBackend and Ping stay responsive while a
// slow connect attempt is in flight.
func (f *Failover) Connect(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateConnected {
		f.mu.Unlock()
		return nil
	}
	if f.primary == nil {
		f.setStateLocked(StateDegraded)
		f.mu.Unlock()
		return ErrNotConfigured
	}
	primary := f.primary
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	err := primary.Connect(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// A concurrent Connect may have won in the meantime; keep its result.
		if f.state != StateConnected {
			f.setStateLocked(StateDegraded)
		}
		return fmt.Errorf("connect primary store: %w", err)
	}
	f.setStateLocked(StateConnected)
	log.Println("primary store connected")
	return nil
}

// Disconnect releases the primary connection; safe when already disconnected.
func (f *Failover) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setStateLocked(StateDisconnected)
	if f.primary == nil {
		return nil
	}
	return f.primary.Disconnect(ctx)
}

// CurrentBackend reports the state machine's position.
func (f *Failover) CurrentBackend() BackendState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Failover) Load(ctx context.Context, ownerID string) (domain.Record, error) {
	if f.CurrentBackend() != StateConnected {
		metrics.StoreOp("load", "memory", "ok")
		return f.secondary.Load(ctx, ownerID)
	}

	rec, err := f.primary.Load(ctx, ownerID)
	if err != nil {
		f.degrade("load", ownerID, err)
		metrics.StoreOp("load", "memory", "fallback")
		return f.secondary.Load(ctx, ownerID)
	}
	metrics.StoreOp("load", "primary", "ok")
	return rec, nil
}

func (f *Failover) Save(ctx context.Context, ownerID string, record domain.Record) error {
	if record == nil {
		record = domain.Record{}
	}

	if f.CurrentBackend() != StateConnected {
		metrics.StoreOp("save", "memory", "ok")
		return f.secondary.Save(ctx, ownerID, record)
	}

	if err := f.primary.Save(ctx, ownerID, record); err != nil {
		f.degrade("save", ownerID, err)
		metrics.StoreOp("save", "memory", "fallback")
		return f.secondary.Save(ctx, ownerID, record)
	}
	metrics.StoreOp("save", "primary", "ok")
	return nil
}

func (f *Failover) ListOwners(ctx context.Context) ([]domain.OwnerInfo, error) {
	if f.CurrentBackend() != StateConnected {
		return f.secondary.ListOwners(ctx)
	}

	owners, err := f.primary.ListOwners(ctx)
	if err != nil {
		f.degrade("list", "", err)
		return f.secondary.ListOwners(ctx)
	}
	return owners, nil
}

func (f *Failover) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	if f.CurrentBackend() != StateConnected {
		return f.secondary.DeleteOwner(ctx, ownerID)
	}

	deleted, err := f.primary.DeleteOwner(ctx, ownerID)
	if err != nil {
		f.degrade("delete", ownerID, err)
		return f.secondary.DeleteOwner(ctx, ownerID)
	}
	// Keep the secondary from resurrecting a deleted owner after a later
	// degradation within the same process.
	f.secondary.DeleteOwner(ctx, ownerID)
	return deleted, nil
}

func (f *Failover) Ping(ctx context.Context) error {
	f.mu.Lock()
	primary := f.primary
	state := f.state
	f.mu.Unlock()

	if state != StateConnected || primary == nil {
		return fmt.Errorf("primary store %s", state)
	}
	return primary.Ping(ctx)
}

func (f *Failover) degrade(op, ownerID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateDegraded {
		return
	}
	f.setStateLocked(StateDegraded)
	log.Printf("primary store failed during %s (owner %q), serving from memory: %v", op, ownerID, err)
}

func (f *Failover) setStateLocked(s BackendState) {
	f.state = s
	metrics.SetBackendState(int(s))
}
