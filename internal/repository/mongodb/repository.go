package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satyammall/stockledger/internal/domain/models"
)

// Archive defines the interface for report snapshot storage.
type Archive interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// MongoDBArchive implements the Archive interface for MongoDB.
type MongoDBArchive struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBArchive creates a new MongoDB snapshot archive.
func NewMongoDBArchive(ctx context.Context, uri string, dbName string) (*MongoDBArchive, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBArchive{
		client:   client,
		dbName:   dbName,
		collName: "daily_snapshots",
	}, nil
}

// SaveDailySnapshot stores one day's aggregated summary.
func (a *MongoDBArchive) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	collection := a.client.Database(a.dbName).Collection(a.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert daily snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (a *MongoDBArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
