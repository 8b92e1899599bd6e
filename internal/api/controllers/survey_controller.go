package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"questflow/internal/models/request_models"
	"questflow/internal/services"
	"questflow/pkg/utils"
)

type SurveyController struct {
	surveyService services.SurveyServiceInterface
}

func NewSurveyController(surveyService services.SurveyServiceInterface) *SurveyController {
	return &SurveyController{
		surveyService: surveyService,
	}
}

// GetQuestion godoc
// @Summary Get a question
// @Description Fetch one question of a survey with its options
// @Tags Survey
// @Produce json
// @Param surveyKey path string true "Survey key"
// @Param questionId path string true "Question ID"
// @Success 200 {object} response_models.QuestionResponse
// @Failure 404 {object} utils.APIError
// @Router /api/s/{surveyKey}/q/{questionId} [get]
func (sc *SurveyController) GetQuestion(c *gin.Context) {
	question, err := sc.surveyService.GetQuestion(c.Param("surveyKey"), c.Param("questionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, question)
}

// SubmitAnswer godoc
// @Summary Answer a question
// @Description Evaluate one answer and return the next question id or the final screen.
// @Description The client sends back every answer it received so far.
// @Tags Survey
// @Accept json
// @Produce json
// @Param surveyKey path string true "Survey key"
// @Param request body request_models.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} response_models.AnswerResponse
// @Failure 400 {object} utils.APIError
// @Failure 404 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Example {json} Request Body Example:
//
//	{
//	  "qid": "Q1",
//	  "answers": [],
//	  "option_idx": 2
//	}
//
// @Router /api/s/{surveyKey}/answer [post]
func (sc *SurveyController) SubmitAnswer(c *gin.Context) {
	if _, err := sc.surveyService.GetSurvey(c.Param("surveyKey")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrBadRequest)
		return
	}

	res, err := sc.surveyService.SubmitAnswer(c.Request.Context(), c.Param("surveyKey"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res)
}
