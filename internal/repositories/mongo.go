package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	cartCollection     = "cart_items"
)

type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects to the document database and pings the primary.
func NewMongo(ctx context.Context, cfg *config.Mongo) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("✅ Successfully connected to MongoDB", slog.String("database", cfg.Database))

	return &MongoStore{Client: client, DB: client.Database(cfg.Database)}, nil
}

// EnsureIndexes creates the unique productId index that backs the
// one-line-per-product invariant of the cart.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.DB.Collection(cartCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_product_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart index: %w", err)
	}

	_, err = m.DB.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product index: %w", err)
	}

	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
