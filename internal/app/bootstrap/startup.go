// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/auraclub/aurahub/internal/app/resources"
	adminstore "github.com/auraclub/aurahub/internal/app/store/admins"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	return seedAdmin(ctx, appCfg, deps, logger)
}

// seedAdmin creates the initial admin account when the collection is empty
// and seed credentials are configured. An existing admin always wins; the
// seed never overwrites.
func seedAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminSeedEmail == "" || appCfg.AdminSeedPassword == "" {
		logger.Info("no admin seed configured, skipping")
		return nil
	}

	admins := adminstore.New(deps.MongoDatabase)
	if err := admins.EnsureSeed(ctx, appCfg.AdminSeedEmail, appCfg.AdminSeedPassword, appCfg.AdminSeedName); err != nil {
		logger.Error("admin seed failed", zap.Error(err))
		return err
	}
	logger.Info("admin seed ensured", zap.String("email", appCfg.AdminSeedEmail))
	return nil
}
