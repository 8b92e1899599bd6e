package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"questflow/internal/config"
	"questflow/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.DatabaseURL, log.Named("db"))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log.Named("db"))
			return nil
		},
	})
	return db, nil
}
