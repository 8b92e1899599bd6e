package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"questflow/internal/services"
)

type PageController struct {
	surveyService services.SurveyServiceInterface
}

func NewPageController(surveyService services.SurveyServiceInterface) *PageController {
	return &PageController{
		surveyService: surveyService,
	}
}

func (pc *PageController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Surveys": pc.surveyService.ListSurveys(),
	})
}

func (pc *PageController) Survey(c *gin.Context) {
	key := c.Param("surveyKey")
	survey, err := pc.surveyService.GetSurvey(key)
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Key": key})
		return
	}

	c.HTML(http.StatusOK, "survey.html", gin.H{"Survey": survey})
}

// Result is rendered in the browser from the last answer response.
func (pc *PageController) Result(c *gin.Context) {
	c.HTML(http.StatusOK, "result.html", nil)
}

func (pc *PageController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
