package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoCartRepo(db *mongo.Database) CartRepository {
	return &mongoCartRepository{coll: db.Collection(cartCollection), now: time.Now}
}

// AddOrIncrement is a single findAndModify upsert. Two racing upserts for a
// new product can both miss and one then fails on the unique index, in
// which case the increment is applied to the line the other one created.
// A line already too full to take line.Qty never matches the filter, so its
// upsert also collides on the unique index, and a second collision means
// the limit was hit.
func (r *mongoCartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := r.now().UTC()
	filter := bson.D{
		{Key: "productId", Value: line.ProductID},
		{Key: "qty", Value: bson.D{{Key: "$lte", Value: models.MaxLineQty - line.Qty}}},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "qty", Value: line.Qty}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: line.ID},
			{Key: "name", Value: line.Name},
			{Key: "price", Value: line.Price},
			{Key: "image", Value: line.Image},
			{Key: "createdAt", Value: now},
		}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err := r.coll.FindOneAndUpdate(dbCtx, filter, update, opts).Decode(line)
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOneAndUpdate(dbCtx, filter, update, opts).Decode(line)
		if mongo.IsDuplicateKeyError(err) {
			return ErrQtyLimit
		}
	}

	if err != nil {
		return fmt.Errorf("upserting cart line: %w", err)
	}

	return nil
}

func (r *mongoCartRepository) SetQuantity(ctx context.Context, productID string, qty int) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "qty", Value: qty},
		{Key: "updatedAt", Value: r.now().UTC()},
	}}}

	line := &models.CartLine{}

	err := r.coll.FindOneAndUpdate(dbCtx, bson.D{{Key: "productId", Value: productID}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("updating cart line: %w", err)
	}

	return line, nil
}

func (r *mongoCartRepository) DeleteLine(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.coll.DeleteOne(dbCtx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("deleting cart line: %w", err)
	}

	return nil
}

func (r *mongoCartRepository) ListLines(ctx context.Context) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("finding cart lines: %w", err)
	}

	lines := []models.CartLine{}

	if err := cursor.All(dbCtx, &lines); err != nil {
		return nil, fmt.Errorf("decoding cart lines: %w", err)
	}

	return lines, nil
}

// TakeLines removes each selected line with its own findOneAndDelete, so a
// line only ends up in the result if this call is the one that deleted it.
func (r *mongoCartRepository) TakeLines(ctx context.Context, ids []string) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	lines := []models.CartLine{}
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}

		var line models.CartLine

		err := r.coll.FindOneAndDelete(dbCtx, bson.D{{Key: "_id", Value: id}}).Decode(&line)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}

		if err != nil {
			return nil, r.restore(ctx, lines, fmt.Errorf("taking cart line %s: %w", id, err))
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// restore puts back lines already taken by a checkout that failed midway.
// Each line is merged by product the same way an add is, so a line a
// concurrent add created in the meantime absorbs the quantity instead of
// colliding with it.
func (r *mongoCartRepository) restore(ctx context.Context, lines []models.CartLine, cause error) error {
	if len(lines) == 0 {
		return cause
	}

	dbCtx, cancel := utils.WithDBTimeout(context.WithoutCancel(ctx))
	defer cancel()

	now := r.now().UTC()
	writes := make([]mongo.WriteModel, 0, len(lines))

	for _, line := range lines {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "productId", Value: line.ProductID}}).
			SetUpdate(bson.D{
				{Key: "$inc", Value: bson.D{{Key: "qty", Value: line.Qty}}},
				{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
				{Key: "$setOnInsert", Value: bson.D{
					{Key: "_id", Value: line.ID},
					{Key: "name", Value: line.Name},
					{Key: "price", Value: line.Price},
					{Key: "image", Value: line.Image},
					{Key: "createdAt", Value: line.CreatedAt},
				}},
			}).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)

	_, err := r.coll.BulkWrite(dbCtx, writes, opts)

	// upserts that lost an insert race land on the winner's line when retried
	if retry := duplicateWrites(err, writes); len(retry) > 0 {
		_, err = r.coll.BulkWrite(dbCtx, retry, opts)
	}

	if err != nil {
		return errors.Join(cause, fmt.Errorf("restoring %d cart lines: %w", len(lines), err))
	}

	return cause
}

const duplicateKeyCode = 11000

// duplicateWrites returns the writes that failed only on a duplicate key.
func duplicateWrites(err error, writes []mongo.WriteModel) []mongo.WriteModel {
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) || bulkErr.WriteConcernError != nil {
		return nil
	}

	retry := make([]mongo.WriteModel, 0, len(bulkErr.WriteErrors))

	for _, writeErr := range bulkErr.WriteErrors {
		if writeErr.Code != duplicateKeyCode || writeErr.Index >= len(writes) {
			return nil
		}

		retry = append(retry, writes[writeErr.Index])
	}

	return retry
}
