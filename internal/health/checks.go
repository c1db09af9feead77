package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "vibecommerce"
	componentVersion = "1.0.0"
)

// Checks builds the probes for the backends cfg enables. Redis is optional,
// so its failure only degrades the report.
func Checks(cfg *config.Config) []health.Config {
	var checks []health.Config

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	default:
		checks = append(checks, health.Config{
			Name:      "mongo",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthMongo.New(healthMongo.Config{
				DSN: cfg.Mongo.URI,
			}),
		})
	}

	if cfg.RedisConnect.Enabled() {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	if cfg.Uploads.Driver == config.UploadsDriverLocal {
		checks = append(checks, health.Config{
			Name:      "uploads",
			Timeout:   time.Second,
			SkipOnErr: true,
			Check:     DirCheck(cfg.Uploads.Dir),
		})
	}

	return checks
}

// DirCheck fails when dir is missing or not a directory.
func DirCheck(dir string) health.CheckFunc {
	return func(context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("uploads directory: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("uploads path %s is not a directory", dir)
		}

		return nil
	}
}

func NewHealthHandler(checks ...health.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
