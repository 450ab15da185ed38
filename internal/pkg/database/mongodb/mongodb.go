// Package mongodb stores networks in MongoDB, one collection per component
// table plus a networks collection for metadata.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when the URI names no database.
const DefaultDatabase = "augment"

const networksCollection = "networks"

// ErrNotFound is returned by Load for unknown networks.
var ErrNotFound = errors.New("network not found")

var collections = map[network.Component]string{
	network.CarrierComponent:     "carriers",
	network.BusComponent:         "buses",
	network.LineComponent:        "lines",
	network.LinkComponent:        "links",
	network.StorageUnitComponent: "storage_units",
	network.StoreComponent:       "stores",
}

// Store is a network store backed by a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

type meta struct {
	Name  string  `bson:"name"`
	PID   string  `bson:"pid"`
	Hours float64 `bson:"snapshot_hours"`
}

type record[T any] struct {
	Network string `bson:"network"`
	Seq     int    `bson:"seq"`
	Row     T      `bson:"row"`
}

// Open connects to uri. The database is taken from the URI path.
func Open(ctx context.Context, uri string) (*Store, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return nil, err
	}
	database := cs.Database
	if database == "" {
		database = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Save replaces the stored network called name with n.
func (s *Store) Save(ctx context.Context, name string, n *network.Network) error {
	c := n.Components()
	steps := []struct {
		comp network.Component
		docs []interface{}
	}{
		{network.CarrierComponent, records(name, c.Carriers)},
		{network.BusComponent, records(name, c.Buses)},
		{network.LineComponent, records(name, c.Lines)},
		{network.LinkComponent, records(name, c.Links)},
		{network.StorageUnitComponent, records(name, c.StorageUnits)},
		{network.StoreComponent, records(name, c.Stores)},
	}

	for _, step := range steps {
		coll := s.db.Collection(collections[step.comp])
		if _, err := coll.DeleteMany(ctx, byNetwork(name)); err != nil {
			return fmt.Errorf("%s: %w", step.comp, err)
		}
		if len(step.docs) == 0 {
			continue
		}
		if _, err := coll.InsertMany(ctx, step.docs); err != nil {
			return fmt.Errorf("%s: %w", step.comp, err)
		}
	}

	_, err := s.db.Collection(networksCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": meta{Name: name, PID: n.PID().String(), Hours: n.SnapshotHours()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	log.Printf("[Mongo] saved network %q to %s\n", name, s.db.Name())
	return nil
}

// Load reads the network called name.
func (s *Store) Load(ctx context.Context, name string) (*network.Network, error) {
	m := meta{}
	err := s.db.Collection(networksCollection).FindOne(ctx, bson.M{"name": name}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	pid, err := uuid.Parse(m.PID)
	if err != nil {
		return nil, fmt.Errorf("network %q pid: %w", name, err)
	}

	c := network.Components{}
	if c.Carriers, err = find[network.Carrier](ctx, s.db, network.CarrierComponent, name); err != nil {
		return nil, err
	}
	if c.Buses, err = find[network.Bus](ctx, s.db, network.BusComponent, name); err != nil {
		return nil, err
	}
	if c.Lines, err = find[network.Line](ctx, s.db, network.LineComponent, name); err != nil {
		return nil, err
	}
	if c.Links, err = find[network.Link](ctx, s.db, network.LinkComponent, name); err != nil {
		return nil, err
	}
	if c.StorageUnits, err = find[network.StorageUnit](ctx, s.db, network.StorageUnitComponent, name); err != nil {
		return nil, err
	}
	if c.Stores, err = find[network.Store](ctx, s.db, network.StoreComponent, name); err != nil {
		return nil, err
	}
	return network.Restore(name, pid, m.Hours, c)
}

func byNetwork(name string) bson.M {
	return bson.M{"network": name}
}

func records[T any](name string, rows []T) []interface{} {
	docs := make([]interface{}, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, record[T]{Network: name, Seq: i, Row: r})
	}
	return docs
}

func find[T any](ctx context.Context, db *mongo.Database, comp network.Component, name string) ([]T, error) {
	cur, err := db.Collection(collections[comp]).Find(ctx, byNetwork(name),
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", comp, err)
	}
	defer cur.Close(ctx)

	docs := make([]record[T], 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", comp, err)
	}
	rows := make([]T, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, d.Row)
	}
	return rows, nil
}
