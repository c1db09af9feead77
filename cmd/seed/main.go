// Command seed replaces the catalog with a fixed set of demo products.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var demoProducts = []models.CreateProductRequest{
	{
		Name:        "Aurora Wireless Headphones",
		Description: "Over-ear, ANC, 30h battery",
		Price:       3499,
		Category:    "audio",
		Image:       "https://tse1.mm.bing.net/th/id/OIP.xnv7XQBqwIZcdOsI2LyNEQHaIX?cb=ucfimgc2&rs=1&pid=ImgDetMain&o=7&rm=3",
	},
	{
		Name:        "Nimbus Smartwatch",
		Description: "Health tracking, 7-day battery",
		Price:       4999,
		Category:    "wearables",
		Image:       "https://img.freepik.com/premium-photo/black-smartwatch-with-analog-clock-display-black-background-3d-illustration_1046390-25056.jpg",
	},
	{
		Name:        "Pulse Bluetooth Speaker",
		Description: "Portable, stereo sound",
		Price:       1999,
		Category:    "audio",
		Image:       "https://images.kabum.com.br/produtos/fotos/sync_mirakl/192566/Bluetooth-Speaker-Splash-Pulse-SP354_1670868515_gg.jpg",
	},
	{
		Name:        "Zenphone XR",
		Description: `6.5" display, 128GB`,
		Price:       15999,
		Category:    "phones",
		Image:       "https://th.bing.com/th/id/OIP.Aoa0ccQs_1Dev8k1YH6r0QHaE-?o=7&cb=ucfimgc2rm=3&rs=1&pid=ImgDetMain&o=7&rm=3",
	},
	{
		Name:        "Orbit Laptop Stand",
		Description: "Ergonomic aluminum stand",
		Price:       899,
		Category:    "accessories",
		Image:       "https://tse2.mm.bing.net/th/id/OIP.r2ZgdSEKMfp4hqhtUA9cHAHaHa?cb=ucfimgc2&w=1400&h=1400&rs=1&pid=ImgDetMain&o=7&rm=3",
	},
	{
		Name:        "Lumen Desk Lamp",
		Description: "Dimmable LED lamp with USB",
		Price:       1299,
		Category:    "home",
		Image:       "https://m.media-amazon.com/images/I/5194mBw5LAL.jpg",
	},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("⚠️ Could not read .env file", slog.String("error", err.Error()))
	}

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("❌ Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close(context.Background())

	return seed(ctx, stores.Products)
}

func seed(ctx context.Context, repo repository.ProductRepository) error {
	deleted, err := repo.DeleteAll(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cleared catalog", slog.Int64("deleted", deleted))

	for _, req := range demoProducts {
		now := time.Now().UTC()

		product := &models.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Image:       req.Image,
			Category:    req.Category,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := repo.CreateProduct(ctx, product); err != nil {
			return err
		}
	}

	slog.Info("✅ Seeded products", slog.Int("count", len(demoProducts)))

	return nil
}
