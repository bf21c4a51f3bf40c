package db

import (
	"context"
	"fmt"
	"time"

	"carnatic-archive/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults used when no store configuration is provided.
const (
	DefaultConnectionString = "mongodb://localhost:27017"
	DefaultDatabaseName     = "carnatic_music_db"
	DefaultCollectionName   = "ragas"
)

// Client wraps the MongoDB client and the ragas collection
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString).SetServerSelectionTimeout(5 * time.Second)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// UpsertRaga writes one raga document keyed by raga name: insert on first
// sight, full-field replace on repeat (last-write-wins, no merge). The
// last_updated stamp is refreshed on every call.
func (c *Client) UpsertRaga(ctx context.Context, doc *domain.RagaDocument) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}
	if doc.Raga == "" {
		return fmt.Errorf("raga document must have a name")
	}

	doc.LastUpdated = time.Now().UTC()

	filter := bson.M{"Raga": doc.Raga}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert raga %q: %w", doc.Raga, err)
	}
	return nil
}

// GetAllRagas fetches every raga document from the collection
func (c *Client) GetAllRagas(ctx context.Context) ([]domain.RagaDocument, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query ragas: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []domain.RagaDocument
	for cursor.Next(ctx) {
		var doc domain.RagaDocument
		if err := cursor.Decode(&doc); err != nil {
			continue // Skip invalid documents
		}
		if doc.Raga != "" {
			docs = append(docs, doc)
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return docs, nil
}
