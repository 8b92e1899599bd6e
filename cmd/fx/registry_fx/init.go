package registry_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"questflow/internal/config"
	"questflow/internal/registry"
)

var Module = fx.Options(
	fx.Provide(provideHolder),
	fx.Invoke(startWatcher),
)

// provideHolder loads every definition once at start. A broken definition
// stops the service from starting.
func provideHolder(cfg config.Config, log *zap.Logger) (*registry.Holder, error) {
	reg, err := registry.Discover(context.Background(), cfg.DataDir, registry.Options{
		Sheet:  cfg.SheetName,
		Logger: log.Named("registry"),
	})
	if err != nil {
		return nil, err
	}
	log.Info("surveys loaded", zap.String("dir", cfg.DataDir), zap.Int("count", reg.Len()))
	return registry.NewHolder(reg), nil
}

func startWatcher(lc fx.Lifecycle, cfg config.Config, holder *registry.Holder, log *zap.Logger) error {
	if !cfg.WatchDefinitions {
		return nil
	}
	w, err := registry.NewWatcher(cfg.DataDir, registry.Options{
		Sheet:  cfg.SheetName,
		Logger: log.Named("registry"),
	}, holder)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			return w.Stop()
		},
	})
	return nil
}
