package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

var _ port.DocumentStore = (*MySQLAdapter)(nil)

// MySQLAdapter keeps one row per owner with the whole record as a JSON
// column. All statements are parameterized; the owner id is data, never SQL.
type MySQLAdapter struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

func NewMySQLAdapter(dsn string) *MySQLAdapter {
	return &MySQLAdapter{dsn: dsn}
}

func (m *MySQLAdapter) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return nil
	}

	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping mysql: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inventory_records (
			owner_id     VARCHAR(512) NOT NULL PRIMARY KEY,
			inventory    JSON NOT NULL,
			last_updated TIMESTAMP(6) NOT NULL
		)`)
	if err != nil {
		db.Close()
		return fmt.Errorf("ensure records table: %w", err)
	}

	m.db = db
	return nil
}

func (m *MySQLAdapter) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	db, err := m.connected()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (m *MySQLAdapter) Load(ctx context.Context, ownerID string) (domain.Record, error) {
	db, err := m.connected()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `
		SELECT inventory FROM inventory_records WHERE owner_id = ?`, ownerID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
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

func (m *MySQLAdapter) Save(ctx context.Context, ownerID string, record domain.Record) error {
	db, err := m.connected()
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

	_, err = db.ExecContext(ctx, `
		INSERT INTO inventory_records (owner_id, inventory, last_updated)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE inventory = VALUES(inventory), last_updated = VALUES(last_updated)`,
		ownerID, payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListOwners(ctx context.Context) ([]domain.OwnerInfo, error) {
	db, err := m.connected()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT owner_id, last_updated FROM inventory_records`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var owners []domain.OwnerInfo
	for rows.Next() {
		var info domain.OwnerInfo
		if err := rows.Scan(&info.OwnerID, &info.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		owners = append(owners, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return owners, nil
}

func (m *MySQLAdapter) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	db, err := m.connected()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM inventory_records WHERE owner_id = ?`, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (m *MySQLAdapter) connected() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil, errors.New("mysql: not connected")
	}
	return m.db, nil
}
