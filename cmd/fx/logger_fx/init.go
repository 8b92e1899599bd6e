package logger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"questflow/internal/config"
	"questflow/internal/logging"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
