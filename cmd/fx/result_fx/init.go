package result_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"questflow/internal/repositories"
	"questflow/internal/services"
)

var Module = fx.Provide(
	provideResultRepo, provideResultService,
)

// provideResultRepo yields a nil repository when no database is configured.
func provideResultRepo(db *gorm.DB) repositories.ResultRepositoryInterface {
	if db == nil {
		return nil
	}
	return repositories.NewResultRepository(db)
}

func provideResultService(resultRepo repositories.ResultRepositoryInterface, log *zap.Logger) services.ResultServiceInterface {
	svc := services.NewResultService(resultRepo)
	log.Info("result archive", zap.Bool("enabled", svc.Enabled()))
	return svc
}
