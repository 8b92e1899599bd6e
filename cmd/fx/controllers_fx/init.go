package controllers_fx

import (
	"go.uber.org/fx"
	"questflow/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSurveyController),
	fx.Provide(controllers.NewPageController))
