package migration

import (
	"context"

	"github.com/smallbiznis/accountresolver/internal/cache"
	"github.com/smallbiznis/accountresolver/internal/clock"
	"github.com/smallbiznis/accountresolver/internal/config"
	"github.com/smallbiznis/accountresolver/internal/seed"
	"github.com/smallbiznis/accountresolver/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, dbCfg db.Config, cfg config.Config, tier cache.Writer, locker *cache.Locker, c clock.Clock, log *zap.Logger) error {
		if dbCfg.Type == db.TypePostgres {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := AutoMigrate(conn); err != nil {
			return err
		}

		if !cfg.SeedDemoData {
			return nil
		}
		return seed.EnsureDemoAccounts(context.Background(), conn, tier, locker, c, log)
	}),
)
