package survey_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"questflow/internal/registry"
	"questflow/internal/services"
)

var Module = fx.Provide(
	provideSurveyService)

func provideSurveyService(holder *registry.Holder, resultService services.ResultServiceInterface, log *zap.Logger) services.SurveyServiceInterface {
	return services.NewSurveyService(holder, resultService, log.Named("survey"))
}
