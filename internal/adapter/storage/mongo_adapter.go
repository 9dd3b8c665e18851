package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

const recordCollection = "records"

var _ port.DocumentStore = (*MongoAdapter)(nil)

// ownerDocument is the persisted shape: one document per owner.
type ownerDocument struct {
	OwnerID     string        `bson:"ownerId"`
	Inventory   domain.Record `bson:"inventory"`
	LastUpdated time.Time     `bson:"lastUpdated"`
}

// MongoAdapter stores one document per owner in a single collection. Owner
// identifiers are passed as BSON values only, never spliced into a query, so
// pathological ids stay inert.
type MongoAdapter struct {
	uri      string
	database string

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongoAdapter(uri, database string) *MongoAdapter {
	return &MongoAdapter{uri: uri, database: database}
}

func (m *MongoAdapter) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongo: %w", err)
	}

	_, err = client.Database(m.database).Collection(recordCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ensure ownerId index: %w", err)
	}

	m.client = client
	return nil
}

func (m *MongoAdapter) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}

func (m *MongoAdapter) Ping(ctx context.Context) error {
	client, err := m.connected()
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

func (m *MongoAdapter) Load(ctx context.Context, ownerID string) (domain.Record, error) {
	client, err := m.connected()
	if err != nil {
		return nil, err
	}

	var doc ownerDocument
	err = m.records(client).FindOne(ctx, bson.D{{Key: "ownerId", Value: ownerID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	if doc.Inventory == nil {
		return domain.Record{}, nil
	}
	return doc.Inventory, nil
}

func (m *MongoAdapter) Save(ctx context.Context, ownerID string, record domain.Record) error {
	client, err := m.connected()
	if err != nil {
		return err
	}
	if record == nil {
		record = domain.Record{}
	}

	doc := ownerDocument{OwnerID: ownerID, Inventory: record, LastUpdated: time.Now()}
	_, err = m.records(client).ReplaceOne(ctx,
		bson.D{{Key: "ownerId", Value: ownerID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (m *MongoAdapter) ListOwners(ctx context.Context) ([]domain.OwnerInfo, error) {
	client, err := m.connected()
	if err != nil {
		return nil, err
	}

	cursor, err := m.records(client).Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "ownerId", Value: 1}, {Key: "lastUpdated", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cursor.Close(ctx)

	var owners []domain.OwnerInfo
	for cursor.Next(ctx) {
		var doc ownerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		owners = append(owners, domain.OwnerInfo{OwnerID: doc.OwnerID, LastUpdated: doc.LastUpdated})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return owners, nil
}

func (m *MongoAdapter) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	client, err := m.connected()
	if err != nil {
		return false, err
	}

	res, err := m.records(client).DeleteOne(ctx, bson.D{{Key: "ownerId", Value: ownerID}})
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (m *MongoAdapter) connected() (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil, errors.New("mongo: not connected")
	}
	return m.client, nil
}

func (m *MongoAdapter) records(client *mongo.Client) *mongo.Collection {
	return client.Database(m.database).Collection(recordCollection)
}
