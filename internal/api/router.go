package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"questflow/internal/api/controllers"
	"questflow/internal/logging"
	"questflow/pkg/middleware"
	"questflow/web"
)

func NewRouter(
	log *zap.Logger,
	surveyController *controllers.SurveyController,
	pageController *controllers.PageController) (*gin.Engine, error) {

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(logging.GinLogger(log))
	r.Use(middleware.CORSMiddleware())
	r.SetHTMLTemplate(tmpl)

	RegisterRoutes(r, surveyController, pageController)

	return r, nil
}

func RegisterRoutes(r *gin.Engine,
	surveyController *controllers.SurveyController,
	pageController *controllers.PageController) {

	r.GET("/", pageController.Index)
	r.GET("/s/:surveyKey", pageController.Survey)
	r.GET("/result", pageController.Result)
	r.GET("/healthz", pageController.Health)
	r.StaticFS("/static", http.FS(web.Static()))

	apiGroup := r.Group("/api/s/:surveyKey")
	apiGroup.GET("/q/:questionId", surveyController.GetQuestion)
	apiGroup.POST("/answer", surveyController.SubmitAnswer)
}
