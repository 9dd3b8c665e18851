package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

const (
	recordKeyPrefix = "record:"
	// recordMetaKey holds ownerID -> RFC3339 last-updated, one hash field per
	// owner, so enumeration never needs a SCAN.
	recordMetaKey = "record-meta"
)

var _ port.DocumentStore = (*RedisAdapter)(nil)

// RedisAdapter stores each owner's record as a JSON string value. Owner ids
// go into key names verbatim; redis keys are binary-safe so arbitrary ids are
// fine.
type RedisAdapter struct {
	addr string

	mu     sync.Mutex
	client *redis.Client
}

func NewRedisAdapter(addr string) *RedisAdapter {
	return &RedisAdapter{addr: addr}
}

func (r *RedisAdapter) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: r.addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	r.client = client
	return nil
}

func (r *RedisAdapter) Disconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	client, err := r.connected()
	if err != nil {
		return err
	}
	return client.Ping(ctx).Err()
}

func (r *RedisAdapter) Load(ctx context.Context, ownerID string) (domain.Record, error) {
	client, err := r.connected()
	if err != nil {
		return nil, err
	}

	payload, err := client.Get(ctx, recordKeyPrefix+ownerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		rec = domain.Record{}
	}
	return rec, nil
}

func (r *RedisAdapter) Save(ctx context.Context, ownerID string, record domain.Record) error {
	client, err := r.connected()
	if err != nil {
		return err
	}
	if record == nil {
		record = domain.Record{}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, recordKeyPrefix+ownerID, payload, 0)
	pipe.HSet(ctx, recordMetaKey, ownerID, time.Now().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	return nil
}

func (r *RedisAdapter) ListOwners(ctx context.Context) ([]domain.OwnerInfo, error) {
	client, err := r.connected()
	if err != nil {
		return nil, err
	}

	meta, err := client.HGetAll(ctx, recordMetaKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	owners := make([]domain.OwnerInfo, 0, len(meta))
	for id, stamp := range meta {
		updated, _ := time.Parse(time.RFC3339Nano, stamp)
		owners = append(owners, domain.OwnerInfo{OwnerID: id, LastUpdated: updated})
	}
	return owners, nil
}

func (r *RedisAdapter) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	client, err := r.connected()
	if err != nil {
		return false, err
	}

	pipe := client.TxPipeline()
	del := pipe.Del(ctx, recordKeyPrefix+ownerID)
	pipe.HDel(ctx, recordMetaKey, ownerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	return del.Val() > 0, nil
}

func (r *RedisAdapter) connected() (*redis.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil, errors.New("redis: not connected")
	}
	return r.client, nil
}
