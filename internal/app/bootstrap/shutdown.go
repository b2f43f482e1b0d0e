// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down background workers and DB connections.
// Projectors close first so no SSE subscriber touches the database after
// the client disconnects.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if eventsProjector != nil {
		eventsProjector.Close()
	}
	if countsProjector != nil {
		countsProjector.Close()
	}
	if flagsProjector != nil {
		flagsProjector.Close()
	}
	if appMirror != nil {
		appMirror.Stop()
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
