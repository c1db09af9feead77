package repository_test

import (
	"testing"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(id, name string, price int64, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: ""},
		{Key: "price", Value: price},
		{Key: "image", Value: models.DefaultProductImage},
		{Key: "category", Value: "general"},
		{Key: "createdAt", Value: createdAt},
		{Key: "updatedAt", Value: createdAt},
	}
}

func cartLineDoc(id, productID, name string, price int64, qty int32) bson.D {
	now := time.Now().UTC().Truncate(time.Millisecond)

	return bson.D{
		{Key: "_id", Value: id},
		{Key: "productId", Value: productID},
		{Key: "name", Value: name},
		{Key: "price", Value: price},
		{Key: "image", Value: "img"},
		{Key: "qty", Value: qty},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Now().UTC().Truncate(time.Millisecond)

	mt.Run("CreateProduct Success", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		// Act
		err := repo.CreateProduct(t.Context(), &models.Product{ID: "p-1", Name: "Lamp", Price: 1299})

		// Assert
		require.NoError(mt, err)
	})

	mt.Run("CreateProduct Duplicate", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		// Act
		err := repo.CreateProduct(t.Context(), &models.Product{ID: "p-1", Name: "Lamp", Price: 1299})

		// Assert
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("GetProductByID Success", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vibecommerce.products", mtest.FirstBatch, productDoc("p-1", "Lamp", 1299, now)))

		// Act
		product, err := repo.GetProductByID(t.Context(), "p-1")

		// Assert
		require.NoError(mt, err)
		assert.Equal(mt, "p-1", product.ID)
		assert.Equal(mt, "Lamp", product.Name)
		assert.Equal(mt, int64(1299), product.Price)
		assert.True(mt, now.Equal(product.CreatedAt))
	})

	mt.Run("GetProductByID Not Found", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vibecommerce.products", mtest.FirstBatch))

		// Act
		product, err := repo.GetProductByID(t.Context(), "missing")

		// Assert
		assert.Nil(mt, product)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("ListProducts", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vibecommerce.products", mtest.FirstBatch,
			productDoc("p-2", "Speaker", 1999, now),
			productDoc("p-1", "Lamp", 1299, now.Add(-time.Hour)),
		))

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "p-2", products[0].ID)
	})

	mt.Run("ListProducts Command Error", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		assert.Nil(mt, products)
		require.Error(mt, err)
	})

	mt.Run("UpdateProduct Success", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		// Act
		err := repo.UpdateProduct(t.Context(), &models.Product{ID: "p-1", Name: "Lamp", Price: 1499})

		// Assert
		require.NoError(mt, err)
	})

	mt.Run("UpdateProduct Not Found", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		// Act
		err := repo.UpdateProduct(t.Context(), &models.Product{ID: "missing", Name: "Lamp", Price: 1499})

		// Assert
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("DeleteProduct", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		// Act
		first := repo.DeleteProduct(t.Context(), "p-1")
		second := repo.DeleteProduct(t.Context(), "p-1")

		// Assert
		require.NoError(mt, first)
		assert.ErrorIs(mt, second, repository.ErrNotFound)
	})

	mt.Run("DeleteAll", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 6}))

		// Act
		deleted, err := repo.DeleteAll(t.Context())

		// Assert
		require.NoError(mt, err)
		assert.Equal(mt, int64(6), deleted)
	})
}

func TestMongoCartRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("AddOrIncrement returns stored line", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 3)},
		))

		line := &models.CartLine{
			ID:              "fresh-id",
			ProductID:       "p-1",
			ProductSnapshot: models.ProductSnapshot{Name: "Lamp", Price: 100, Image: "img"},
			Qty:             2,
		}

		// Act
		err := repo.AddOrIncrement(t.Context(), line)

		// Assert
		require.NoError(mt, err)
		assert.Equal(mt, "line-1", line.ID)
		assert.Equal(mt, 3, line.Qty)
		assert.Equal(mt, int64(100), line.Price)
	})

	mt.Run("AddOrIncrement retries after losing an insert race", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 2)}),
		)

		line := &models.CartLine{ID: "fresh-id", ProductID: "p-1", Qty: 1}

		// Act
		err := repo.AddOrIncrement(t.Context(), line)

		// Assert
		require.NoError(mt, err)
		assert.Equal(mt, "line-1", line.ID)
		assert.Equal(mt, 2, line.Qty)
	})

	mt.Run("AddOrIncrement stops at the line limit", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		duplicate := mtest.CommandError{Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error"}
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(duplicate),
			mtest.CreateCommandErrorResponse(duplicate),
		)

		line := &models.CartLine{ID: "fresh-id", ProductID: "p-1", Qty: 5}

		// Act
		err := repo.AddOrIncrement(t.Context(), line)

		// Assert
		require.ErrorIs(mt, err, repository.ErrQtyLimit)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		limit := started.Command.Lookup("query", "qty", "$lte")
		assert.EqualValues(mt, models.MaxLineQty-5, rawInt(limit))
	})

	mt.Run("SetQuantity", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 7)},
		))

		// Act
		line, err := repo.SetQuantity(t.Context(), "p-1", 7)

		// Assert
		require.NoError(mt, err)
		assert.Equal(mt, 7, line.Qty)
	})

	mt.Run("DeleteLine is idempotent", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		// Act & Assert
		require.NoError(mt, repo.DeleteLine(t.Context(), "line-1"))
		require.NoError(mt, repo.DeleteLine(t.Context(), "line-1"))
	})

	mt.Run("ListLines", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vibecommerce.cart_items", mtest.FirstBatch,
			cartLineDoc("line-1", "p-1", "Lamp", 100, 1),
			cartLineDoc("line-2", "p-2", "Stand", 899, 2),
		))

		// Act
		lines, err := repo.ListLines(t.Context())

		// Assert
		require.NoError(mt, err)
		require.Len(mt, lines, 2)
		assert.Equal(mt, "p-2", lines[1].ProductID)
		assert.Equal(mt, int64(1898), models.SumLines(lines[1:]))
	})

	mt.Run("ListLines Empty", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vibecommerce.cart_items", mtest.FirstBatch))

		// Act
		lines, err := repo.ListLines(t.Context())

		// Assert
		require.NoError(mt, err)
		assert.NotNil(mt, lines)
		assert.Empty(mt, lines)
	})

	mt.Run("TakeLines skips duplicate ids", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 3)}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartLineDoc("line-2", "p-2", "Stand", 899, 1)}),
		)

		// Act
		lines, err := repo.TakeLines(t.Context(), []string{"line-1", "line-1", "line-2"})

		// Assert
		require.NoError(mt, err)
		require.Len(mt, lines, 2)
		assert.Equal(mt, "line-1", lines[0].ID)
		assert.Equal(mt, "line-2", lines[1].ID)
		assert.Equal(mt, int64(1199), models.SumLines(lines))
	})

	mt.Run("TakeLines restores taken lines on failure", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 3)}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		// Act
		lines, err := repo.TakeLines(t.Context(), []string{"line-1", "line-2"})

		// Assert
		require.Error(mt, err)
		assert.Nil(mt, lines)
		assert.Contains(mt, err.Error(), "line-2")

		updates := startedCommands(mt, "update")
		require.Len(mt, updates, 1)

		restored := updates[0].Lookup("updates", "0").Document()
		assert.Equal(mt, "p-1", restored.Lookup("q", "productId").StringValue())
		assert.EqualValues(mt, 3, rawInt(restored.Lookup("u", "$inc", "qty")))
		assert.Equal(mt, "line-1", restored.Lookup("u", "$setOnInsert", "_id").StringValue())
		assert.True(mt, restored.Lookup("upsert").Boolean())
	})

	mt.Run("TakeLines restore merges into a line added meanwhile", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewMongoCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartLineDoc("line-1", "p-1", "Lamp", 100, 3)}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		// Act
		_, err := repo.TakeLines(t.Context(), []string{"line-1", "line-2"})

		// Assert
		require.Error(mt, err)
		assert.NotContains(mt, err.Error(), "restoring")

		updates := startedCommands(mt, "update")
		require.Len(mt, updates, 2)
		assert.Equal(mt, "p-1", updates[1].Lookup("updates", "0", "q", "productId").StringValue())
		assert.EqualValues(mt, 3, rawInt(updates[1].Lookup("updates", "0", "u", "$inc", "qty")))
	})
}

func startedCommands(mt *mtest.T, name string) []bson.Raw {
	var commands []bson.Raw

	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == name {
			commands = append(commands, evt.Command)
		}
	}

	return commands
}

func rawInt(v bson.RawValue) int64 {
	if i, ok := v.Int32OK(); ok {
		return int64(i)
	}

	return v.Int64()
}
