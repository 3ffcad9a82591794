package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/repository"
)

// collectionDocument holds one serialized collection keyed by its name.
type collectionDocument struct {
	Name      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository implements repository.Adapter on a single MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

var _ repository.Adapter = (*MongoDBRepository)(nil)

// NewMongoDBRepository connects and pings the server.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "collections",
	}, nil
}

// Load fetches the serialized collection. A missing document is not an error.
func (r *MongoDBRepository) Load(ctx context.Context, name repository.Collection) (string, error) {
	var doc collectionDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": string(name)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load collection %s: %w", name, err)
	}
	return doc.Payload, nil
}

// Save upserts the whole serialized collection.
func (r *MongoDBRepository) Save(ctx context.Context, name repository.Collection, payload string) error {
	doc := collectionDocument{Name: string(name), Payload: payload, UpdatedAt: time.Now().UTC()}
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": doc.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
