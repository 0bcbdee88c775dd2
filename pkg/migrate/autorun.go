package migrate

import (
	"context"
	"fmt"

	"github.com/svalverde/stockroom-backend/pkg/config"
	"github.com/svalverde/stockroom-backend/pkg/db"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"github.com/svalverde/stockroom-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	// The goose SQL targets postgres; sqlite dev databases are built from the
	// gorm models directly, the same way the test suites do.
	if cfg.DB.IsSQLite() {
		logg.Info(ctx, "auto-migrating sqlite schema from models (dev auto-run)")
		return client.DB().AutoMigrate(
			&models.Product{},
			&models.Customer{},
			&models.Supplier{},
			&models.Purchase{},
			&models.Sale{},
		)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DialectFor(cfg.DB), DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
