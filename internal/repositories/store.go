package repository

import (
	"context"
	"fmt"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
)

// Stores holds the repositories of the configured storage driver.
type Stores struct {
	Products ProductRepository
	Cart     CartRepository
	Driver   string

	close func(context.Context) error
}

// Open connects to the backend named by cfg.Storage.Driver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pg, err := NewPostgres(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}

		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}

		return &Stores{
			Products: NewProductRepo(pg.DB),
			Cart:     NewCartRepo(pg.DB),
			Driver:   config.StorageDriverPostgres,
			close:    func(context.Context) error { return pg.Close() },
		}, nil

	case config.StorageDriverMongo:
		store, err := NewMongo(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}

		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}

		return &Stores{
			Products: NewMongoProductRepo(store.DB),
			Cart:     NewMongoCartRepo(store.DB),
			Driver:   config.StorageDriverMongo,
			close:    store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}

	return s.close(ctx)
}
