package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// MongoStore persists layouts in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "layouts"
// collection of the given database. The connection is verified with a
// ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("layouts"),
	}, nil
}

// Put assigns a fresh id and inserts the layout.
func (s *MongoStore) Put(ctx context.Context, l mosaic.Layout) (StoredLayout, error) {
	stored := StoredLayout{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Layout:    l,
	}

	if _, err := s.coll.InsertOne(ctx, stored); err != nil {
		return StoredLayout{}, errors.Wrap(errors.ErrCodeStorage, err, "insert layout")
	}
	return stored, nil
}

// Get looks up a layout by id.
func (s *MongoStore) Get(ctx context.Context, id string) (StoredLayout, error) {
	var stored StoredLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return StoredLayout{}, errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	}
	if err != nil {
		return StoredLayout{}, errors.Wrap(errors.ErrCodeStorage, err, "find layout %s", id)
	}
	return stored, nil
}

// Delete removes a layout by id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete layout %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	}
	return nil
}

// List returns layouts newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]StoredLayout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list layouts")
	}
	defer cursor.Close(ctx)

	var all []StoredLayout
	if err := cursor.All(ctx, &all); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode layouts")
	}
	return all, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
