package history

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/distspan/ist/pkg/errors"
)

// MongoRecorder persists build runs to a MongoDB collection, one document
// per run.
type MongoRecorder struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// databaseName and collectionName fix where runs land; they are not
// configurable since a single collection of small documents never needs
// partitioning at the scale this tool operates at.
const (
	databaseName   = "ist"
	collectionName = "runs"
)

// NewMongoRecorder connects to the MongoDB deployment at uri and returns a
// Recorder backed by it.
func NewMongoRecorder(ctx context.Context, uri string) (*MongoRecorder, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "connect to mongo at %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "ping mongo at %s", uri)
	}
	coll := client.Database(databaseName).Collection(collectionName)
	return &MongoRecorder{client: client, runs: coll}, nil
}

// Record inserts run as a new document.
func (m *MongoRecorder) Record(ctx context.Context, run Run) error {
	if _, err := m.runs.InsertOne(ctx, run); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "record build run")
	}
	return nil
}

// Close disconnects the underlying client.
func (m *MongoRecorder) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "disconnect from mongo")
	}
	return nil
}
