package services

import (
	"context"
	"fmt"

	"questflow/internal/engine"
	"questflow/internal/models/db_models"
	"questflow/internal/models/survey_models"
	"questflow/internal/repositories"
	"questflow/pkg/utils"
)

type ResultServiceInterface interface {
	// Enabled reports whether finished surveys are actually stored.
	Enabled() bool
	RecordResult(ctx context.Context, surveyKey, finalTitle, finalText string, answers []survey_models.Answer) error
	CountsBySurvey(ctx context.Context) ([]db_models.ResultCount, error)
}

type ResultService struct {
	resultRepo repositories.ResultRepositoryInterface
}

// NewResultService returns an archive backed by resultRepo. A nil repository
// gives an archive that accepts and drops every result.
func NewResultService(resultRepo repositories.ResultRepositoryInterface) ResultServiceInterface {
	return &ResultService{resultRepo: resultRepo}
}

func (r *ResultService) Enabled() bool { return r.resultRepo != nil }

func (r *ResultService) RecordResult(ctx context.Context, surveyKey, finalTitle, finalText string, answers []survey_models.Answer) error {
	if r.resultRepo == nil {
		return nil
	}

	result := &db_models.SurveyResult{
		SurveyKey:   surveyKey,
		FinalTitle:  finalTitle,
		FinalText:   finalText,
		Lines:       engine.AnswerLines(answers),
		AnswerCount: len(answers),
	}
	if err := r.resultRepo.CreateResult(ctx, result); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (r *ResultService) CountsBySurvey(ctx context.Context) ([]db_models.ResultCount, error) {
	if r.resultRepo == nil {
		return nil, nil
	}
	counts, err := r.resultRepo.CountBySurvey(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return counts, nil
}
