package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"questflow/internal/engine"
	"questflow/internal/models/request_models"
	"questflow/internal/models/response_models"
	"questflow/internal/models/survey_models"
	"questflow/internal/registry"
	"questflow/pkg/utils"
)

type SurveyServiceInterface interface {
	ListSurveys() []response_models.SurveyCard
	GetSurvey(key string) (*survey_models.Survey, error)
	GetQuestion(key, qid string) (response_models.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, key string, req request_models.SubmitAnswerRequest) (response_models.AnswerResponse, error)
}

type SurveyService struct {
	surveys       *registry.Holder
	resultService ResultServiceInterface
	log           *zap.Logger
}

func NewSurveyService(surveys *registry.Holder, resultService ResultServiceInterface, log *zap.Logger) SurveyServiceInterface {
	return &SurveyService{
		surveys:       surveys,
		resultService: resultService,
		log:           log,
	}
}

func (s *SurveyService) ListSurveys() []response_models.SurveyCard {
	list := s.surveys.Current().List()
	cards := make([]response_models.SurveyCard, 0, len(list))
	for _, sv := range list {
		cards = append(cards, response_models.SurveyCard{
			Key:         sv.Key,
			Title:       sv.Title,
			Description: sv.Description,
			FileName:    sv.FileName,
			Questions:   len(sv.Questions),
		})
	}
	return cards
}

func (s *SurveyService) GetSurvey(key string) (*survey_models.Survey, error) {
	sv, ok := s.surveys.Current().Get(key)
	if !ok {
		return nil, utils.ErrSurveyNotFound
	}
	return sv, nil
}

func (s *SurveyService) GetQuestion(key, qid string) (response_models.QuestionResponse, error) {
	sv, err := s.GetSurvey(key)
	if err != nil {
		return response_models.QuestionResponse{}, err
	}
	q, ok := sv.Question(qid)
	if !ok {
		return response_models.QuestionResponse{}, utils.ErrQuestionNotFound
	}

	options := make([]response_models.OptionResponse, 0, len(q.Options))
	for _, o := range q.Options {
		options = append(options, response_models.OptionResponse{Idx: o.Idx, Text: o.Text})
	}
	return response_models.QuestionResponse{
		OK:        true,
		SurveyKey: sv.Key,
		QID:       q.ID,
		Type:      string(q.Type),
		Title:     q.Title,
		Text:      q.Text,
		LongText:  q.LongText,
		Hints:     q.Hints,
		Options:   options,
	}, nil
}

func (s *SurveyService) SubmitAnswer(ctx context.Context, key string, req request_models.SubmitAnswerRequest) (response_models.AnswerResponse, error) {
	sv, err := s.GetSurvey(key)
	if err != nil {
		return response_models.AnswerResponse{}, err
	}

	qid := strings.TrimSpace(req.QID)
	if qid == "" {
		return response_models.AnswerResponse{}, utils.ErrBadRequest
	}
	q, ok := sv.Question(qid)
	if !ok {
		return response_models.AnswerResponse{}, utils.ErrQuestionNotFound
	}

	res, err := engine.Submit(sv, q, req.Answers, engine.Payload{
		OptionIdx:  req.OptionIdx,
		OptionIdxs: req.OptionIdxs,
		Value:      req.Value,
	})
	if err != nil {
		return response_models.AnswerResponse{}, err
	}

	if !res.Finished {
		return response_models.AnswerResponse{
			OK:      true,
			NextQID: res.NextQID,
			Answers: res.Answers,
		}, nil
	}

	// The client already holds every answer, so a failed archive write is
	// logged and the respondent still gets the final screen.
	if err := s.resultService.RecordResult(ctx, sv.Key, res.FinalTitle, res.FinalText, res.Answers); err != nil {
		s.log.Error("archiving survey result", zap.String("survey", sv.Key), zap.Error(err))
	}

	return response_models.AnswerResponse{
		OK:         true,
		Finished:   true,
		FinalTitle: res.FinalTitle,
		FinalText:  res.FinalText,
		Answers:    res.Answers,
	}, nil
}
