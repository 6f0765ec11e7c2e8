// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ChapterHub uses it to promote the configured admin account so a fresh
// deployment has a working admin without touching the database by hand.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	promoted, err := users.PromoteAdmin(ctx, appCfg.AdminEmail)
	if err != nil {
		logger.Error("admin bootstrap failed", zap.Error(err))
		return err
	}
	if promoted {
		logger.Info("promoted admin account", zap.String("email", appCfg.AdminEmail))
	} else {
		// The account registers itself later and gets promoted on the
		// next restart; not an error on a fresh database.
		logger.Info("admin account not found; will promote once it registers",
			zap.String("email", appCfg.AdminEmail))
	}
	return nil
}
