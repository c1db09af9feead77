package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{coll: db.Collection(productsCollection)}
}

func (r *mongoProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(dbCtx, product); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *mongoProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	if err := r.coll.FindOne(dbCtx, bson.D{{Key: "_id", Value: id}}).Decode(product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("finding product: %w", err)
	}

	return product, nil
}

func (r *mongoProductRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("finding products: %w", err)
	}

	products := []*models.Product{}

	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	return products, nil
}

func (r *mongoProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "description", Value: product.Description},
		{Key: "price", Value: product.Price},
		{Key: "image", Value: product.Image},
		{Key: "category", Value: product.Category},
		{Key: "updatedAt", Value: product.UpdatedAt},
	}}}

	result, err := r.coll.UpdateByID(dbCtx, product.ID, update)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(dbCtx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteMany(dbCtx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("deleting products: %w", err)
	}

	return result.DeletedCount, nil
}
