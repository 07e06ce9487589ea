package migration

import (
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module applies embedded migrations on startup. Only postgres is
// migrated automatically; other dialects manage schema externally.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
			log.Info("migrations applied")
		} else {
			log.Info("skipping automatic migrations", zap.String("db_type", cfg.DBType))
		}

		if cfg.SeedDemo && !cfg.IsProduction() {
			if err := seed.EnsureDemoBusiness(conn); err != nil {
				return err
			}
			log.Info("demo business ensured")
		}
		return nil
	}),
)
